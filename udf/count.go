package udf

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/utils/io"
)

// WorkdayCount counts the business days in [start, end) row by row, with
// numpy.busday_count semantics for reversed ranges. Either operand may be
// of length 1 and is then broadcast. Datetimes count by their local civil
// date.
func WorkdayCount(starts, ends *io.Column, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(WorkdayCountName, time.Now(), &rows, &err)

	from, err := newTemporal(WorkdayCountName, starts)
	if err != nil {
		return nil, err
	}
	to, err := newTemporal(WorkdayCountName, ends)
	if err != nil {
		return nil, err
	}
	if rows, err = broadcastLen(WorkdayCountName, starts.Len(), ends.Len()); err != nil {
		return nil, err
	}
	cal, err := p.Calendar()
	if err != nil {
		return nil, errors.Wrap(err, WorkdayCountName)
	}

	counts := make([]int32, rows)
	valid := make([]bool, rows)
	ss, es := stride(starts.Len()), stride(ends.Len())
	err = evaluate(WorkdayCountName, rows, p, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			si, ei := i*ss, i*es
			if starts.IsNull(si) || ends.IsNull(ei) {
				continue
			}
			a, _ := from.split(si)
			b, _ := to.split(ei)
			counts[i], valid[i] = cal.Count(a, b), true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return io.NewInt32Column(counts, validity(valid)), nil
}
