package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	SecondsPerDay = 24 * 60 * 60
	DateLayout    = "2006-01-02"
)

// Ordinal returns the day ordinal (days since 1970-01-01) of the civil date
// of t in t's own location.
func Ordinal(t time.Time) int32 {
	year, month, day := t.Date()
	return int32(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / SecondsPerDay)
}

// Date returns midnight UTC of the day ordinal d.
func Date(d int32) time.Time {
	return time.Unix(int64(d)*SecondsPerDay, 0).UTC()
}

// FormatOrdinal renders d as YYYY-MM-DD.
func FormatOrdinal(d int32) string {
	return Date(d).Format(DateLayout)
}

// ParseOrdinal parses a YYYY-MM-DD date into its day ordinal.
func ParseOrdinal(s string) (int32, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse date %q", s)
	}
	return Ordinal(t), nil
}

// maxMonths bounds month arithmetic a little beyond the int32 day range,
// about 5.9 million years either side of 1970.
const maxMonths = 12 * 6_000_000

// AddCalendar moves d by months and then by days calendar days. The day of
// month is kept unless the target month is shorter, in which case its last
// day is used: 2024-01-31 plus one month is 2024-02-29. A result outside the
// int32 range is a *RangeError.
func AddCalendar(d int32, months, days int64) (int32, error) {
	rangeErr := &RangeError{
		Value: fmt.Sprintf("%s %+d months %+d days", FormatOrdinal(d), months, days),
		Type:  "date",
	}
	res := int64(d)
	if months != 0 {
		year, month, day := Date(d).Date()
		total := int64(year)*12 + int64(month-1)
		if months > maxMonths-total || months < -maxMonths-total {
			return 0, rangeErr
		}
		total += months
		y, m := total/12, total%12
		if m < 0 {
			y, m = y-1, m+12
		}
		// day 0 of the following month is the last day of this one
		if last := time.Date(int(y), time.Month(m+2), 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
			day = last
		}
		res = time.Date(int(y), time.Month(m+1), day, 0, 0, 0, 0, time.UTC).Unix() / SecondsPerDay
	}
	if days > math.MaxInt32-res || days < math.MinInt32-res {
		return 0, rangeErr
	}
	return int32(res + days), nil
}
