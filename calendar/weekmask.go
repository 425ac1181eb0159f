package calendar

import (
	"strings"
)

// WeekendMask flags the non-business days of the week: index 0 is Monday,
// index 6 is Sunday, and true means the day is part of the weekend.
type WeekendMask [7]bool

// DefaultWeekend is the Saturday/Sunday weekend. BusinessCalendar
// specializes it with closed-form arithmetic.
var DefaultWeekend = WeekendMask{false, false, false, false, false, true, true}

// NewWeekendMask builds a mask from weekend days. It fails when a day is
// out of range or when no business day would remain.
func NewWeekendMask(days ...Weekday) (WeekendMask, error) {
	var m WeekendMask
	for _, d := range days {
		if !d.Valid() {
			return m, &ConfigurationError{
				Param:  "weekend",
				Value:  d.String(),
				Reason: "weekday must be in 1 (Mon) .. 7 (Sun)",
			}
		}
		m[d-1] = true
	}
	return m, m.Validate()
}

// ParseWeekend builds a mask from weekday names such as ["Fri", "Sat"].
func ParseWeekend(names []string) (WeekendMask, error) {
	days := make([]Weekday, 0, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return WeekendMask{}, err
		}
		days = append(days, d)
	}
	return NewWeekendMask(days...)
}

// Validate reports a ConfigurationError when every day is a weekend day.
func (m WeekendMask) Validate() error {
	if m.NumWeekdays() == 0 {
		return &ConfigurationError{
			Param:  "weekend",
			Value:  m.String(),
			Reason: "at least one day of the week must be a business day",
		}
	}
	return nil
}

// IsWeekend reports whether w is a non-business weekday. w must be valid.
func (m WeekendMask) IsWeekend(w Weekday) bool {
	return m[w-1]
}

// NumWeekdays is the number of business days in one calendar week.
func (m WeekendMask) NumWeekdays() int32 {
	var n int32
	for _, weekend := range m {
		if !weekend {
			n++
		}
	}
	return n
}

func (m WeekendMask) IsDefault() bool {
	return m == DefaultWeekend
}

// Days lists the weekend days in Monday..Sunday order.
func (m WeekendMask) Days() []Weekday {
	var days []Weekday
	for i, weekend := range m {
		if weekend {
			days = append(days, Weekday(i+1))
		}
	}
	return days
}

func (m WeekendMask) String() string {
	days := m.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return "[" + strings.Join(names, ",") + "]"
}
