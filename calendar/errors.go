package calendar

import (
	"fmt"
)

// CalendarError is returned by the Raise roll policy when the starting date
// of an offset is not a business day.
type CalendarError struct {
	Date int32
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("date %s is not a business date, cannot advance; set a valid `roll` strategy",
		FormatOrdinal(e.Date))
}

// ConfigurationError reports a parameter that cannot configure a calendar
// evaluation: an unknown roll token, an all-weekend mask, a malformed
// interval and so on.
type ConfigurationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Param, e.Value, e.Reason)
}

// TypeError reports an operand whose column type the operation cannot take.
// Want defaults to Date/Datetime.
type TypeError struct {
	Op   string
	Got  string
	Want string
}

func (e *TypeError) Error() string {
	want := e.Want
	if want == "" {
		want = "Date/Datetime"
	}
	return fmt.Sprintf("%s only works on %s type, got: %s", e.Op, want, e.Got)
}

// TimeZoneError reports a local wall-clock time that does not map to exactly
// one instant in its zone.
type TimeZoneError struct {
	Datetime  string
	Zone      string
	Ambiguous bool
}

func (e *TimeZoneError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("datetime '%s' is ambiguous in time zone '%s'", e.Datetime, e.Zone)
	}
	return fmt.Sprintf("datetime '%s' is non-existent in time zone '%s'", e.Datetime, e.Zone)
}

// RangeError reports a result that cannot be represented in its column type.
type RangeError struct {
	Value string
	Type  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s is outside the range of the %s type", e.Value, e.Type)
}
