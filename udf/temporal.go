package udf

import (
	"fmt"
	"math"
	"time"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/io"
)

// temporal maps the elements of a Date or Datetime column to civil day
// ordinals and back. Zoned datetimes are first shifted to their local wall
// clock; naive datetimes and dates are used as they are.
type temporal struct {
	col    *io.Column
	kind   io.Kind
	unit   io.TimeUnit
	perDay int64
	// nil for dates and naive datetimes
	loc *time.Location
}

func newTemporal(op string, col *io.Column) (*temporal, error) {
	dt := col.DataType()
	if !dt.IsTemporal() {
		return nil, &calendar.TypeError{Op: op, Got: dt.String()}
	}
	t := &temporal{col: col, kind: dt.Kind}
	if dt.Kind == io.DATETIME {
		t.unit = dt.Unit
		t.perDay = dt.Unit.PerDay()
		if dt.Zone != "" {
			loc, err := time.LoadLocation(dt.Zone)
			if err != nil {
				return nil, &calendar.ConfigurationError{Param: "time_zone", Value: dt.Zone, Reason: err.Error()}
			}
			t.loc = loc
		}
	}
	return t, nil
}

// split returns the day ordinal of element i and the time of day as a
// remainder in the column's unit.
func (t *temporal) split(i int) (int32, int64) {
	if t.kind == io.DATE {
		return t.col.Int32s()[i], 0
	}
	v := t.col.Int64s()[i]
	if t.loc != nil {
		_, offset := t.unit.Time(v).In(t.loc).Zone()
		v += int64(offset) * t.unit.PerSecond()
	}
	day := floorDiv(v, t.perDay)
	return int32(day), v - day*t.perDay
}

// join is the inverse of split for a datetime column. A local wall clock
// that is skipped or repeated by a zone transition is a TimeZoneError; one
// beyond the unit's int64 range is a RangeError.
func (t *temporal) join(day int32, rem int64) (int64, error) {
	naive, ok := mulAdd(int64(day), t.perDay, rem)
	if !ok {
		return 0, t.rangeError(day, rem)
	}
	if t.loc == nil {
		return naive, nil
	}

	ups := t.unit.PerSecond()
	wall := t.unit.Time(naive)
	var instants []int64
	// any transition is less than a day away from one of the guesses
	for _, guess := range [...]time.Time{wall.Add(-24 * time.Hour), wall, wall.Add(24 * time.Hour)} {
		_, offset := guess.In(t.loc).Zone()
		candidate, ok := mulAdd(-int64(offset), ups, naive)
		if !ok {
			return 0, t.rangeError(day, rem)
		}
		if _, actual := t.unit.Time(candidate).In(t.loc).Zone(); actual != offset {
			continue
		}
		if !containsInt64(instants, candidate) {
			instants = append(instants, candidate)
		}
	}

	switch len(instants) {
	case 1:
		return instants[0], nil
	case 0:
		return 0, &calendar.TimeZoneError{Datetime: wall.Format(wallClockLayout), Zone: t.loc.String()}
	}
	return 0, &calendar.TimeZoneError{Datetime: wall.Format(wallClockLayout), Zone: t.loc.String(), Ambiguous: true}
}

const wallClockLayout = "2006-01-02 15:04:05.999999999"

func (t *temporal) rangeError(day int32, rem int64) error {
	return &calendar.RangeError{
		Value: fmt.Sprintf("%s plus %d%s", calendar.FormatOrdinal(day), rem, t.unit),
		Type:  t.col.DataType().String(),
	}
}

// mulAdd returns a*b+c and false when it overflows int64. b is positive.
func mulAdd(a, b, c int64) (int64, bool) {
	if a > math.MaxInt64/b || a < math.MinInt64/b {
		return 0, false
	}
	p := a * b
	if (c > 0 && p > math.MaxInt64-c) || (c < 0 && p < math.MinInt64-c) {
		return 0, false
	}
	return p + c, true
}

// output allocates the backing slice of a result column of this type.
type temporalOutput struct {
	src    *temporal
	days   []int32
	values []int64
}

func (t *temporal) output(n int) *temporalOutput {
	out := &temporalOutput{src: t}
	if t.kind == io.DATE {
		out.days = make([]int32, n)
	} else {
		out.values = make([]int64, n)
	}
	return out
}

func (o *temporalOutput) set(i int, day int32, rem int64) error {
	if o.days != nil {
		o.days[i] = day
		return nil
	}
	v, err := o.src.join(day, rem)
	if err != nil {
		return err
	}
	o.values[i] = v
	return nil
}

// add moves datetime element i by d, truncated to the column's unit.
func (o *temporalOutput) add(i int, d time.Duration) error {
	units := int64(d) / (int64(time.Second) / o.src.unit.PerSecond())
	v, ok := mulAdd(units, 1, o.values[i])
	if !ok {
		return &calendar.RangeError{
			Value: fmt.Sprintf("%s plus %s", o.src.unit.Time(o.values[i]).UTC().Format(wallClockLayout), d),
			Type:  o.src.col.DataType().String(),
		}
	}
	o.values[i] = v
	return nil
}

func (o *temporalOutput) column(valid []bool) *io.Column {
	if o.days != nil {
		return io.NewDateColumn(o.days, valid)
	}
	dt := o.src.col.DataType()
	return io.NewDatetimeColumn(o.values, dt.Unit, dt.Zone, valid)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func containsInt64(vs []int64, v int64) bool {
	for _, x := range vs {
		if x == v {
			return true
		}
	}
	return false
}
