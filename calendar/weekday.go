package calendar

import (
	"strconv"
	"strings"
	"time"
)

// Weekday is a 1-based day of the week, Monday=1 through Sunday=7, so it
// indexes a WeekendMask directly after subtracting one.
type Weekday int8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// 1970-01-01 (ordinal 0) is a Thursday.
const epochWeekdayShift = 4

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayOf returns the weekday of a day ordinal. It is total and
// periodic: WeekdayOf(d+7) == WeekdayOf(d) for every d, including
// pre-epoch ordinals.
func WeekdayOf(d int32) Weekday {
	// the first modulo is negative for ordinals before the epoch shift,
	// so add 7 and take the modulo again
	return Weekday(((int64(d)-epochWeekdayShift)%7+7)%7 + 1)
}

// FromTimeWeekday converts a time.Weekday (Sunday=0) to a Weekday.
func FromTimeWeekday(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd)
}

// ParseWeekday accepts short ("Sat") or long ("Saturday") English names,
// case-insensitively.
func ParseWeekday(name string) (Weekday, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if len(lower) >= 3 {
		for i, short := range weekdayNames {
			if strings.HasPrefix(strings.ToLower(time.Weekday((i+1)%7).String()), lower) &&
				strings.HasPrefix(lower, strings.ToLower(short)) {
				return Weekday(i + 1), nil
			}
		}
	}
	return 0, &ConfigurationError{
		Param:  "weekday",
		Value:  name,
		Reason: "expected one of Mon, Tue, Wed, Thu, Fri, Sat, Sun",
	}
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) next() Weekday {
	if w == Sunday {
		return Monday
	}
	return w + 1
}

func (w Weekday) prev() Weekday {
	if w == Monday {
		return Sunday
	}
	return w - 1
}

func (w Weekday) String() string {
	if !w.Valid() {
		return "Weekday(" + strconv.Itoa(int(w)) + ")"
	}
	return weekdayNames[w-1]
}
