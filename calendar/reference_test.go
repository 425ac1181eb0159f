package calendar_test

import (
	"math/rand"
	"time"

	"github.com/alpacahq/bizday/calendar"
)

// 1970-01-01 is a Thursday.
const (
	thu int32 = iota
	fri
	sat
	sun
	mon
	tue
	wed
	thu2
	fri2
	sat2
	sun2
	mon2
)

// naive day-by-day references

func naiveIsWorkday(d int32, weekend calendar.WeekendMask, holidays map[int32]bool) bool {
	wd := calendar.FromTimeWeekday(calendar.Date(d).Weekday())
	return !weekend[wd-1] && !holidays[d]
}

func naiveAdvance(d, n int32, weekend calendar.WeekendMask, holidays map[int32]bool,
	roll calendar.RollPolicy,
) (int32, bool) {
	for !naiveIsWorkday(d, weekend, holidays) {
		switch roll {
		case calendar.Forward:
			d++
		case calendar.Backward:
			d--
		default:
			return 0, false
		}
	}
	for n > 0 {
		d++
		if naiveIsWorkday(d, weekend, holidays) {
			n--
		}
	}
	for n < 0 {
		d--
		if naiveIsWorkday(d, weekend, holidays) {
			n++
		}
	}
	return d, true
}

func naiveCount(a, b int32, weekend calendar.WeekendMask, holidays map[int32]bool) int32 {
	var count int32
	if a <= b {
		for d := a; d < b; d++ {
			if naiveIsWorkday(d, weekend, holidays) {
				count++
			}
		}
		return count
	}
	for d := b + 1; d <= a; d++ {
		if naiveIsWorkday(d, weekend, holidays) {
			count--
		}
	}
	return count
}

func holidayMap(days []int32) map[int32]bool {
	m := make(map[int32]bool, len(days))
	for _, d := range days {
		m[d] = true
	}
	return m
}

func randomWeekend(rng *rand.Rand) calendar.WeekendMask {
	for {
		var m calendar.WeekendMask
		for i := range m {
			m[i] = rng.Intn(3) == 0
		}
		if m.Validate() == nil {
			return m
		}
	}
}

func randomHolidays(rng *rand.Rand, from, to int32, n int) []int32 {
	days := make([]int32, n)
	for i := range days {
		days[i] = from + rng.Int31n(to-from)
	}
	return days
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()))
}
