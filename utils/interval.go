package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alpacahq/bizday/calendar"
)

const businessDaySuffix = "bd"

var (
	intervalPattern = regexp.MustCompile(`^-?(\d+(bd|mo|ns|us|ms|[smhdwqy]))+$`)
	termPattern     = regexp.MustCompile(`(\d+)(bd|mo|ns|us|ms|[smhdwqy])`)
)

var (
	monthTerms = map[string]int64{"y": 12, "q": 3, "mo": 1}
	dayTerms   = map[string]int64{"w": 7, "d": 1}
)

var termDurations = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
}

/*
Interval is a signed offset written as a run of "<count><unit>" terms with an
optional leading minus that negates all of them:

	3bd      three business days
	-1bd     one business day back
	2bd3h    two business days, then three hours
	1mo1bd   one business day, then one calendar month

Exactly one term counts business days (bd). The other units are y, q and mo
(calendar months), w and d (calendar days) and h, m, s, ms, us and ns (fixed
durations). The business days are always applied first.
*/
type Interval struct {
	String string
	Days   int32
	// calendar part; y and q are folded into Months, w into CalendarDays
	Months       int64
	CalendarDays int64
	Duration     time.Duration
}

// IntervalFromString parses an interval. An unknown unit, a missing count,
// a missing or repeated bd term or a count out of range is a
// ConfigurationError.
func IntervalFromString(s string) (*Interval, error) {
	s = strings.TrimSpace(s)
	if !intervalPattern.MatchString(s) {
		return nil, intervalError(s, "only intervals of the form 'nbd' (where n is an integer), "+
			"optionally combined with y, q, mo, w, d, h, m, s, ms, us or ns terms, are supported")
	}
	sign := int64(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
	}

	iv := &Interval{String: s}
	seenDays := false
	for _, term := range termPattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.ParseInt(term[1], 10, 64)
		if err != nil {
			return nil, intervalError(s, "count out of range")
		}
		n *= sign
		switch unit := term[2]; unit {
		case businessDaySuffix:
			if seenDays {
				return nil, intervalError(s, "the business day term may appear only once")
			}
			if n < math.MinInt32 || n > math.MaxInt32 {
				return nil, intervalError(s, "business day count out of range")
			}
			iv.Days, seenDays = int32(n), true
		case "y", "q", "mo":
			var ok bool
			if iv.Months, ok = addTerm(iv.Months, n, monthTerms[unit]); !ok {
				return nil, intervalError(s, "month count out of range")
			}
		case "w", "d":
			var ok bool
			if iv.CalendarDays, ok = addTerm(iv.CalendarDays, n, dayTerms[unit]); !ok {
				return nil, intervalError(s, "calendar day count out of range")
			}
		default:
			d, ok := addTerm(int64(iv.Duration), n, int64(termDurations[unit]))
			if !ok {
				return nil, intervalError(s, "duration out of range")
			}
			iv.Duration = time.Duration(d)
		}
	}
	if !seenDays {
		return nil, intervalError(s, "the interval needs a business day term, e.g. '0bd'")
	}
	return iv, nil
}

// IsBusinessDays reports whether the interval is a plain "nbd".
func (iv *Interval) IsBusinessDays() bool {
	return iv.Months == 0 && iv.CalendarDays == 0 && iv.Duration == 0
}

func intervalError(s, reason string) error {
	return &calendar.ConfigurationError{Param: "interval", Value: s, Reason: reason}
}

// addTerm returns acc + n*scale and false on int64 overflow.
func addTerm(acc, n, scale int64) (int64, bool) {
	if n > math.MaxInt64/scale || n < math.MinInt64/scale {
		return 0, false
	}
	v := n * scale
	if (v > 0 && acc > math.MaxInt64-v) || (v < 0 && acc < math.MinInt64-v) {
		return 0, false
	}
	return acc + v, true
}
