package calendar

// Count returns the number of business days in [start, end). When start is
// after end the endpoints are swapped, both shifted one day later so the
// counted range is (end, start], and the result is negated, matching
// numpy.busday_count.
func (c *BusinessCalendar) Count(start, end int32) int32 {
	swapped := start > end
	if swapped {
		start, end = end+1, start+1
	}

	var count int32
	if end > start {
		count -= int32(c.holidays.Count(start, end-1))
	}

	weeks := (end - start) / 7
	count += weeks * c.nWeekdays
	start += weeks * 7

	// holidays are already subtracted, only the weekend matters here
	for w := WeekdayOf(start); start < end; start++ {
		if !c.weekend.IsWeekend(w) {
			count++
		}
		w = w.next()
	}

	if swapped {
		return -count
	}
	return count
}
