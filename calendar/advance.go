package calendar

import (
	"fmt"
	"math"
)

// Advance moves d by n business days. A non-business starting date is first
// rolled according to the roll policy; Raise fails with a *CalendarError.
// n may be zero or negative. A result before 1970-01-01 minus 2^31 days or
// after 1970-01-01 plus 2^31-1 days is a *RangeError.
func (c *BusinessCalendar) Advance(d, n int32) (int32, error) {
	day, w, err := c.rollDate(d)
	if err != nil {
		return 0, err
	}
	var res int64
	switch {
	case c.holidays.Len() == 0:
		res = day + c.offsetDays(w, int64(n))
	case n >= 0:
		res = c.advanceForward(day, w, int64(n))
	default:
		res = c.advanceBackward(day, w, int64(n))
	}
	if res < math.MinInt32 || res > math.MaxInt32 {
		return 0, &RangeError{
			Value: fmt.Sprintf("%s %+d business days", FormatOrdinal(d), n),
			Type:  "date",
		}
	}
	return int32(res), nil
}

// advanceForward walks n > 0 business days forward from the business day d.
//
// The holidays still ahead of d are the index window [begin, end). Whole
// business weeks are jumped at once: a jump of 7*weeks calendar days passes
// weeks*nWeekdays business weekdays, minus the holidays inside it, which are
// added back to n and dropped from the window. The remainder is walked day
// by day, consuming window holidays as they are passed. Once the window is
// empty the rest is a closed-form or cached offset.
//
// Days are int64 so a walk may run past the int32 range; Advance rejects
// such results.
func (c *BusinessCalendar) advanceForward(d int64, w Weekday, n int64) int64 {
	hols := c.holidays
	end := hols.Len()
	nWeekdays := int64(c.nWeekdays)
	// every holiday before begin is on or before d
	begin := hols.UpperBound(clampDay(d), 0, end)
	for n > 0 {
		if begin == end && !c.weekend.IsWeekend(w) {
			return d + c.offsetDays(w, n)
		}
		if weeks := n / nWeekdays; weeks > 0 {
			next := d + weeks*7
			passed := hols.UpperBound(clampDay(next), begin, end)
			n += int64(passed-begin) - weeks*nWeekdays
			d, begin = next, passed
			continue
		}
		d++
		w = w.next()
		if begin < end && int64(hols.At(begin)) == d {
			begin++
			continue
		}
		if !c.weekend.IsWeekend(w) {
			n--
		}
	}
	return d
}

// advanceBackward mirrors advanceForward for n < 0 with the window
// [begin, end) holding the holidays still behind d.
func (c *BusinessCalendar) advanceBackward(d int64, w Weekday, n int64) int64 {
	hols := c.holidays
	begin := 0
	nWeekdays := int64(c.nWeekdays)
	// every holiday from end on is on or after d
	end := hols.LowerBound(clampDay(d), 0, hols.Len())
	for n < 0 {
		if begin == end && !c.weekend.IsWeekend(w) {
			return d + c.offsetDays(w, n)
		}
		if weeks := n / nWeekdays; weeks < 0 {
			prev := d + weeks*7
			passed := hols.LowerBound(clampDay(prev), begin, end)
			n -= int64(end-passed) + weeks*nWeekdays
			d, end = prev, passed
			continue
		}
		d--
		w = w.prev()
		if end > begin && int64(hols.At(end-1)) == d {
			end--
			continue
		}
		if !c.weekend.IsWeekend(w) {
			n++
		}
	}
	return d
}

// clampDay saturates d to the int32 range. Holidays are int32, so a clamped
// bound orders the same way against every holiday as d itself.
func clampDay(d int64) int32 {
	switch {
	case d > math.MaxInt32:
		return math.MaxInt32
	case d < math.MinInt32:
		return math.MinInt32
	}
	return int32(d)
}
