/*
Package udf evaluates business-day functions over whole columns.

Every function takes io.Column operands and a Params value, builds one
immutable calendar.BusinessCalendar for the call and streams the elements
through it:

	AdvanceNDays   date + n business days
	OffsetBy       date + "Nbd"
	WorkdayCount   business days in [start, end)
	IsWorkday      business day test
	DateRange      business days between two dates

Nulls in any operand produce a null output element. The first failing
element aborts the whole call; no partial output is returned.
*/
package udf

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/metrics"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/log"
)

const (
	AdvanceNDaysName = "advance_n_days"
	OffsetByName     = "offset_by"
	WorkdayCountName = "workday_count"
	IsWorkdayName    = "is_workday"
	DateRangeName    = "date_range"
)

const defaultPartitionSize = 1 << 16

// Params configures one evaluation. Use DefaultParams or FromConfig; the
// zero value has no weekend at all.
type Params struct {
	Weekend  calendar.WeekendMask
	Holidays []int32
	Roll     calendar.RollPolicy
	// Workers > 1 evaluates partitions of PartitionSize rows concurrently.
	Workers       int
	PartitionSize int
}

// DefaultParams is the Saturday/Sunday weekend with no holidays, raising on
// non-business starting dates, evaluated sequentially.
func DefaultParams() Params {
	return Params{
		Weekend:       calendar.DefaultWeekend,
		Roll:          calendar.Raise,
		Workers:       1,
		PartitionSize: defaultPartitionSize,
	}
}

// FromConfig copies the evaluation settings out of a parsed configuration.
// holidays are the already resolved holiday ordinals.
func FromConfig(c *utils.BizdayConfig, holidays []int32) Params {
	return Params{
		Weekend:       c.Weekend,
		Holidays:      holidays,
		Roll:          c.Roll,
		Workers:       c.Workers,
		PartitionSize: c.PartitionSize,
	}
}

// Calendar builds the BusinessCalendar the parameters describe.
func (p Params) Calendar() (*calendar.BusinessCalendar, error) {
	return calendar.New(p.Weekend, p.Holidays, p.Roll)
}

// Closed selects which endpoints of a DateRange are included.
type Closed int8

const (
	ClosedBoth Closed = iota
	ClosedLeft
	ClosedRight
	ClosedNone
)

var closedNames = map[string]Closed{
	"both":  ClosedBoth,
	"left":  ClosedLeft,
	"right": ClosedRight,
	"none":  ClosedNone,
}

func ParseClosed(s string) (Closed, error) {
	if c, ok := closedNames[strings.ToLower(s)]; ok {
		return c, nil
	}
	return ClosedBoth, &calendar.ConfigurationError{
		Param:  "closed",
		Value:  s,
		Reason: "must be one of 'both', 'left', 'right' or 'none'",
	}
}

func (c Closed) String() string {
	for name, v := range closedNames {
		if v == c {
			return name
		}
	}
	return "unknown"
}

// instrument records the metrics of one evaluation. Call it deferred with
// pointers to the named results.
func instrument(function string, start time.Time, n *int, err *error) {
	metrics.EvaluationsTotal.WithLabelValues(function).Inc()
	metrics.EvaluationDuration.WithLabelValues(function).Observe(time.Since(start).Seconds())
	if *err != nil {
		metrics.ErrorsTotal.WithLabelValues(function, errorKind(*err)).Inc()
		log.Debug("%s failed: %v", function, *err)
		return
	}
	metrics.ElementsTotal.WithLabelValues(function).Add(float64(*n))
}

func errorKind(err error) string {
	var (
		calErr  *calendar.CalendarError
		cfgErr  *calendar.ConfigurationError
		typeErr *calendar.TypeError
		tzErr   *calendar.TimeZoneError
		rngErr  *calendar.RangeError
	)
	switch {
	case errors.As(err, &calErr):
		return "calendar"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &typeErr):
		return "type"
	case errors.As(err, &tzErr):
		return "time_zone"
	case errors.As(err, &rngErr):
		return "range"
	}
	return "other"
}
