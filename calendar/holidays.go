package calendar

import (
	"sort"
)

// HolidaySet is a sorted, deduplicated list of holiday ordinals that all
// fall on business weekdays. Holidays on weekend days are dropped at
// construction since the weekend mask already excludes them.
type HolidaySet struct {
	days []int32
}

func NewHolidaySet(raw []int32, weekend WeekendMask) HolidaySet {
	days := make([]int32, 0, len(raw))
	for _, d := range raw {
		if !weekend.IsWeekend(WeekdayOf(d)) {
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	// dedup in place
	n := 0
	for i, d := range days {
		if i == 0 || d != days[n-1] {
			days[n] = d
			n++
		}
	}
	return HolidaySet{days: days[:n]}
}

func (h HolidaySet) Len() int {
	return len(h.days)
}

// At returns the i-th holiday in ascending order.
func (h HolidaySet) At(i int) int32 {
	return h.days[i]
}

// Days returns a copy of the holiday ordinals.
func (h HolidaySet) Days() []int32 {
	out := make([]int32, len(h.days))
	copy(out, h.days)
	return out
}

// LowerBound returns the first index in the window [lo, hi) whose holiday is
// not before d, or hi when there is none.
func (h HolidaySet) LowerBound(d int32, lo, hi int) int {
	return lo + sort.Search(hi-lo, func(i int) bool { return h.days[lo+i] >= d })
}

// UpperBound returns the first index in the window [lo, hi) whose holiday is
// after d, or hi when there is none.
func (h HolidaySet) UpperBound(d int32, lo, hi int) int {
	return lo + sort.Search(hi-lo, func(i int) bool { return h.days[lo+i] > d })
}

// Contains reports whether d is a holiday.
func (h HolidaySet) Contains(d int32) bool {
	i := h.LowerBound(d, 0, len(h.days))
	return i < len(h.days) && h.days[i] == d
}

// Count returns the number of holidays in the closed interval between start
// and end, in either order.
func (h HolidaySet) Count(start, end int32) int {
	if start > end {
		start, end = end, start
	}
	return h.UpperBound(end, 0, len(h.days)) - h.LowerBound(start, 0, len(h.days))
}
