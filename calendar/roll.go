package calendar

import (
	"strings"
)

// RollPolicy decides what happens when the starting date of an offset is
// not a business day.
type RollPolicy int8

const (
	Raise RollPolicy = iota
	Forward
	Backward
)

var rollNames = map[RollPolicy]string{
	Raise:    "raise",
	Forward:  "forward",
	Backward: "backward",
}

// ParseRoll maps "raise", "forward" or "backward" to a RollPolicy.
func ParseRoll(token string) (RollPolicy, error) {
	switch strings.ToLower(token) {
	case "raise":
		return Raise, nil
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Raise, &ConfigurationError{
		Param:  "roll",
		Value:  token,
		Reason: "`roll` must be one of 'raise', 'forward' or 'backward'",
	}
}

func (r RollPolicy) String() string {
	if name, ok := rollNames[r]; ok {
		return name
	}
	return "unknown"
}

// rollDate moves d onto a business day according to the calendar's policy and
// returns the rolled date with its weekday. The roll may leave the int32
// range at its ends, so the date is widened.
func (c *BusinessCalendar) rollDate(d int32) (int64, Weekday, error) {
	w := WeekdayOf(d)
	day := int64(d)
	if c.isWorkday(d, w) {
		return day, w, nil
	}
	switch c.policy {
	case Forward:
		for !c.isWorkdayAt(day, w) {
			day++
			w = w.next()
		}
	case Backward:
		for !c.isWorkdayAt(day, w) {
			day--
			w = w.prev()
		}
	default:
		return day, w, &CalendarError{Date: d}
	}
	return day, w, nil
}
