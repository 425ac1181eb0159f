package udf

import (
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

// AdvanceNDays moves every element of dates by n business days. n is an
// integer column of length 1, broadcast to every date, or of the same
// length as dates. The result has the type of dates.
func AdvanceNDays(dates, n *io.Column, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(AdvanceNDaysName, time.Now(), &rows, &err)

	if out, err = advance(AdvanceNDaysName, dates, n, nil, p); err != nil {
		return nil, err
	}
	rows = out.Len()
	return out, nil
}

// OffsetBy moves every date by an interval such as "3bd", "-1bd" or
// "2bd3h": first by its business days, then by its calendar part. Months
// and days move the local wall clock; fixed durations move the instant. A
// Date column takes no fixed durations.
func OffsetBy(dates *io.Column, by string, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(OffsetByName, time.Now(), &rows, &err)

	iv, err := utils.IntervalFromString(by)
	if err != nil {
		return nil, errors.Wrap(err, OffsetByName)
	}
	if err := checkShift(dates, iv); err != nil {
		return nil, errors.Wrap(err, OffsetByName)
	}
	n := io.NewInt32Column([]int32{iv.Days}, nil)
	if out, err = advance(OffsetByName, dates, n, []calendarShift{shiftOf(iv)}, p); err != nil {
		return nil, err
	}
	rows = out.Len()
	return out, nil
}

// OffsetByColumn is OffsetBy with one interval string per row. A null
// interval yields a null date.
func OffsetByColumn(dates, by *io.Column, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(OffsetByName, time.Now(), &rows, &err)

	if by.DataType().Kind != io.STRING {
		return nil, &calendar.TypeError{Op: OffsetByName, Got: by.DataType().String(), Want: "String"}
	}
	strs := by.Strings()
	days := make([]int32, by.Len())
	shifts := make([]calendarShift, by.Len())
	valid := make([]bool, by.Len())
	for i := range days {
		if by.IsNull(i) {
			continue
		}
		iv, err := utils.IntervalFromString(strs[i])
		if err == nil {
			err = checkShift(dates, iv)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d", OffsetByName, i)
		}
		days[i], shifts[i], valid[i] = iv.Days, shiftOf(iv), true
	}

	if out, err = advance(OffsetByName, dates, io.NewInt32Column(days, validity(valid)), shifts, p); err != nil {
		return nil, err
	}
	rows = out.Len()
	return out, nil
}

// calendarShift is the part of an interval applied after its business days.
type calendarShift struct {
	months, days int64
	dur          time.Duration
}

func shiftOf(iv *utils.Interval) calendarShift {
	return calendarShift{months: iv.Months, days: iv.CalendarDays, dur: iv.Duration}
}

func checkShift(dates *io.Column, iv *utils.Interval) error {
	if iv.Duration != 0 && dates.DataType().Kind == io.DATE {
		return &calendar.ConfigurationError{
			Param:  "interval",
			Value:  iv.String,
			Reason: "a Date column cannot be offset by h, m, s, ms, us or ns",
		}
	}
	return nil
}

// advance moves dates by n business days and then by shifts, which is
// empty, a single shift for every row or one shift per row.
func advance(op string, dates, n *io.Column, shifts []calendarShift, p Params) (*io.Column, error) {
	if !n.DataType().IsInteger() {
		return nil, &calendar.TypeError{Op: op, Got: n.DataType().String(), Want: "Int32/Int64"}
	}
	src, err := newTemporal(op, dates)
	if err != nil {
		return nil, err
	}
	rows := dates.Len()
	if n.Len() != 1 && n.Len() != rows {
		return nil, &calendar.ConfigurationError{
			Param:  "length",
			Value:  strconv.Itoa(n.Len()),
			Reason: "the offset must have length 1 or the length of the dates (" + strconv.Itoa(rows) + ")",
		}
	}
	cal, err := p.Calendar()
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	if n.Len() == 1 && n.IsNull(0) {
		log.Debug("%s: null offset, returning %d nulls", op, rows)
		return io.NullColumn(dates.DataType(), rows), nil
	}

	shiftAt := func(i int) calendarShift {
		switch len(shifts) {
		case 0:
			return calendarShift{}
		case 1:
			return shifts[0]
		}
		return shifts[i]
	}

	out := src.output(rows)
	valid := make([]bool, rows)
	step := func(i int, k int64) error {
		by, err := toOffset(k)
		if err != nil {
			return err
		}
		day, rem := src.split(i)
		res, err := cal.Advance(day, by)
		if err != nil {
			return err
		}
		sh := shiftAt(i)
		if sh.months != 0 || sh.days != 0 {
			if res, err = calendar.AddCalendar(res, sh.months, sh.days); err != nil {
				return err
			}
		}
		if err := out.set(i, res, rem); err != nil {
			return err
		}
		if sh.dur != 0 {
			if err := out.add(i, sh.dur); err != nil {
				return err
			}
		}
		valid[i] = true
		return nil
	}

	if n.Len() == 1 && rows != 1 {
		k := n.Int64At(0)
		log.Debug("%s: broadcasting offset %d over %d rows", op, k, rows)
		err = evaluate(op, rows, p, func(from, to int) error {
			for i := from; i < to; i++ {
				if dates.IsNull(i) {
					continue
				}
				if err := step(i, k); err != nil {
					return errors.Wrapf(err, "%s: row %d", op, i)
				}
			}
			return nil
		})
	} else {
		err = evaluate(op, rows, p, func(from, to int) error {
			for i := from; i < to; i++ {
				if dates.IsNull(i) || n.IsNull(i) {
					continue
				}
				if err := step(i, n.Int64At(i)); err != nil {
					return errors.Wrapf(err, "%s: row %d", op, i)
				}
			}
			return nil
		})
	}
	if err != nil {
		return nil, err
	}
	return out.column(validity(valid)), nil
}

func toOffset(k int64) (int32, error) {
	if k < math.MinInt32 || k > math.MaxInt32 {
		return 0, &calendar.ConfigurationError{
			Param:  "n",
			Value:  strconv.FormatInt(k, 10),
			Reason: "business day offset does not fit in 32 bits",
		}
	}
	return int32(k), nil
}
