package udf

import (
	"strconv"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/log"
	"github.com/alpacahq/bizday/utils/pool"
)

// broadcastLen resolves the output length of two operands: equal lengths
// evaluate elementwise, a length-1 operand is broadcast against the other.
func broadcastLen(op string, a, b int) (int, error) {
	switch {
	case a == b:
		return a, nil
	case b == 1:
		return a, nil
	case a == 1:
		return b, nil
	}
	return 0, &calendar.ConfigurationError{
		Param:  "length",
		Value:  strconv.Itoa(a) + " vs " + strconv.Itoa(b),
		Reason: op + " operands must have equal lengths or one of them length 1",
	}
}

// stride is the operand step per output row: 0 for a broadcast operand of
// length 1, 1 otherwise. Row i reads operand element i*stride.
func stride(n int) int {
	if n == 1 {
		return 0
	}
	return 1
}

// evaluate runs eval over [0, n) either in one piece or, when parallelism
// is configured and worthwhile, as partitions on a worker pool. Either way
// the returned error is the one sequential evaluation would hit first.
func evaluate(op string, n int, p Params, eval func(from, to int) error) error {
	size := p.PartitionSize
	if size <= 0 {
		size = defaultPartitionSize
	}
	if p.Workers <= 1 || n <= size {
		return eval(0, n)
	}

	parts := (n + size - 1) / size
	log.Debug("%s: evaluating %d rows in %d partitions on %d workers", op, n, parts, p.Workers)
	return pool.Run(parts, p.Workers, func(part int) error {
		from := part * size
		to := from + size
		if to > n {
			to = n
		}
		return eval(from, to)
	})
}

// validity returns nil when every element is valid so that output columns
// without nulls carry no validity slice.
func validity(valid []bool) []bool {
	for _, ok := range valid {
		if !ok {
			return valid
		}
	}
	return nil
}
