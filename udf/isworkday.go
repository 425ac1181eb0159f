package udf

import (
	"time"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/utils/io"
)

// IsWorkday reports, row by row, whether the date is a business day.
func IsWorkday(dates *io.Column, p Params) (out *io.Column, err error) {
	var rows int
	defer instrument(IsWorkdayName, time.Now(), &rows, &err)

	src, err := newTemporal(IsWorkdayName, dates)
	if err != nil {
		return nil, err
	}
	cal, err := p.Calendar()
	if err != nil {
		return nil, errors.Wrap(err, IsWorkdayName)
	}

	rows = dates.Len()
	flags := make([]bool, rows)
	valid := make([]bool, rows)
	err = evaluate(IsWorkdayName, rows, p, func(from, to int) error {
		for i := from; i < to; i++ {
			if dates.IsNull(i) {
				continue
			}
			day, _ := src.split(i)
			flags[i], valid[i] = cal.IsWorkday(day), true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return io.NewBoolColumn(flags, validity(valid)), nil
}
