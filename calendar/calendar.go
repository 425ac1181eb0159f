// Package calendar provides business-day arithmetic on day ordinals (days
// since 1970-01-01): advancing a date by a number of business days,
// counting business days between two dates and testing whether a date is a
// business day, under a weekend mask and an explicit holiday list.
//
// A BusinessCalendar is immutable once built, so a single instance can be
// shared by any number of goroutines evaluating different dates.
package calendar

// BusinessCalendar holds the configuration of one evaluation: the weekend
// mask, the weekend-filtered holiday set, the roll policy and, for
// non-default weekends, the precomputed offset cache.
type BusinessCalendar struct {
	weekend   WeekendMask
	nWeekdays int32
	holidays  HolidaySet
	policy    RollPolicy
	// nil for DefaultWeekend, which uses closed-form offsets
	cache *OffsetCache
}

// New validates the configuration and builds a BusinessCalendar.
func New(weekend WeekendMask, holidays []int32, roll RollPolicy) (*BusinessCalendar, error) {
	if err := weekend.Validate(); err != nil {
		return nil, err
	}
	if _, ok := rollNames[roll]; !ok {
		return nil, &ConfigurationError{Param: "roll", Value: roll.String(), Reason: "unknown roll policy"}
	}
	c := &BusinessCalendar{
		weekend:   weekend,
		nWeekdays: weekend.NumWeekdays(),
		holidays:  NewHolidaySet(holidays, weekend),
		policy:    roll,
	}
	if !weekend.IsDefault() {
		c.cache = NewOffsetCache(weekend)
	}
	return c, nil
}

func (c *BusinessCalendar) Weekend() WeekendMask { return c.weekend }
func (c *BusinessCalendar) Holidays() HolidaySet { return c.holidays }
func (c *BusinessCalendar) Roll() RollPolicy     { return c.policy }
func (c *BusinessCalendar) NumWeekdays() int32   { return c.nWeekdays }

// IsWorkday reports whether d is neither a weekend day nor a holiday.
func (c *BusinessCalendar) IsWorkday(d int32) bool {
	return c.isWorkday(d, WeekdayOf(d))
}

func (c *BusinessCalendar) isWorkday(d int32, w Weekday) bool {
	return !c.weekend.IsWeekend(w) && !c.holidays.Contains(d)
}

// isWorkdayAt is isWorkday for a widened date; no holiday lies outside the
// int32 range.
func (c *BusinessCalendar) isWorkdayAt(d int64, w Weekday) bool {
	if c.weekend.IsWeekend(w) {
		return false
	}
	return d != int64(clampDay(d)) || !c.holidays.Contains(int32(d))
}

// offsetDays is the calendar-day span of n business days from a date on
// weekday w when no holiday intervenes.
func (c *BusinessCalendar) offsetDays(w Weekday, n int64) int64 {
	if c.cache == nil {
		return defaultWeekendOffset(w, n)
	}
	return c.cache.Offset(w, n)
}
