package udf

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

// DateRange lists the business days among start, start+N, start+2N, ...
// up to end, where interval is "Nbd" and N counts calendar days. closed
// decides whether start and end themselves may be included.
func DateRange(start, end int32, interval string, closed Closed, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(DateRangeName, time.Now(), &rows, &err)

	iv, err := utils.IntervalFromString(interval)
	if err != nil {
		return nil, errors.Wrap(err, DateRangeName)
	}
	if !iv.IsBusinessDays() {
		return nil, &calendar.ConfigurationError{
			Param:  "interval",
			Value:  interval,
			Reason: "the range step takes business days only",
		}
	}
	if iv.Days <= 0 {
		return nil, &calendar.ConfigurationError{
			Param:  "interval",
			Value:  interval,
			Reason: "the interval must be positive",
		}
	}
	if _, ok := closedNames[closed.String()]; !ok {
		return nil, &calendar.ConfigurationError{Param: "closed", Value: closed.String(), Reason: "unknown closed interval"}
	}
	cal, err := p.Calendar()
	if err != nil {
		return nil, errors.Wrap(err, DateRangeName)
	}

	includeStart := closed == ClosedBoth || closed == ClosedLeft
	includeEnd := closed == ClosedBoth || closed == ClosedRight

	var days []int32
	// int64 so the last step cannot overflow past end
	for d := int64(start); d <= int64(end); d += int64(iv.Days) {
		day := int32(d)
		if (day == start && !includeStart) || (day == end && !includeEnd) {
			continue
		}
		if cal.IsWorkday(day) {
			days = append(days, day)
		}
	}
	log.Debug("%s: %s..%s every %s (%s) -> %d business days",
		DateRangeName, calendar.FormatOrdinal(start), calendar.FormatOrdinal(end), iv.String, closed, len(days))

	if days == nil {
		days = []int32{}
	}
	rows = len(days)
	return io.NewDateColumn(days, nil), nil
}
