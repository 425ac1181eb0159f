package calendar

// OffsetCache maps a starting weekday and a business-day offset within one
// business week to the number of calendar days the offset spans. It is
// built once per weekend mask, turning a day-by-day walk into a lookup.
type OffsetCache struct {
	nWeekdays int32
	// deltas[w-1][k+nWeekdays] for k in [-nWeekdays, nWeekdays]
	deltas [7][]int32
}

// NewOffsetCache simulates every (weekday, offset) pair under the mask.
// Rows exist for all seven starting weekdays; the ones for weekend days are
// only reached when the caller starts from a weekend date.
func NewOffsetCache(weekend WeekendMask) *OffsetCache {
	n := weekend.NumWeekdays()
	c := &OffsetCache{nWeekdays: n}
	for w := Monday; w <= Sunday; w++ {
		row := make([]int32, 2*n+1)
		for k := -n; k <= n; k++ {
			row[k+n] = walkDays(weekend, w, k)
		}
		c.deltas[w-1] = row
	}
	return c
}

// walkDays steps one calendar day at a time from weekday w, consuming one
// unit of k on each business weekday landed on.
func walkDays(weekend WeekendMask, w Weekday, k int32) int32 {
	var days int32
	for k > 0 {
		days++
		w = w.next()
		if !weekend.IsWeekend(w) {
			k--
		}
	}
	for k < 0 {
		days--
		w = w.prev()
		if !weekend.IsWeekend(w) {
			k++
		}
	}
	return days
}

// Offset returns the calendar-day delta of n business days from weekday w.
func (c *OffsetCache) Offset(w Weekday, n int64) int64 {
	nWeekdays := int64(c.nWeekdays)
	weeks, rem := splitWeeks(n, nWeekdays)
	return weeks*7 + int64(c.deltas[w-1][rem+nWeekdays])
}

// splitWeeks splits n into whole business weeks and a remainder in
// [-nWeekdays, nWeekdays]. A zero remainder borrows one full week so that a
// walk from a weekend day stops on the last business day instead of landing
// back on the weekend day seven calendar days later.
func splitWeeks(n, nWeekdays int64) (weeks, rem int64) {
	weeks, rem = n/nWeekdays, n%nWeekdays
	switch {
	case rem == 0 && weeks > 0:
		weeks--
		rem = nWeekdays
	case rem == 0 && weeks < 0:
		weeks++
		rem = -nWeekdays
	}
	return weeks, rem
}

// defaultWeekendOffset is the closed form of Offset for the Saturday/Sunday
// weekend. w must be a business weekday.
func defaultWeekendOffset(w Weekday, n int64) int64 {
	x := int64(w) - 1
	if n >= 0 {
		return n + (n+x)/5*2
	}
	return -(-n + (-n+4-x)/5*2)
}
