package io

import (
	"github.com/pkg/errors"
)

/*
Column is a typed, nullable vector. Values live in the backing slice that
matches the DataType kind:

	DATE, INT32      -> int32s
	DATETIME, INT64  -> int64s
	BOOL             -> bools
	STRING           -> strs

A nil validity slice means every element is valid. The value stored under a
null element is unspecified.
*/
type Column struct {
	dtype  DataType
	length int
	int32s []int32
	int64s []int64
	bools  []bool
	strs   []string
	valid  []bool
}

func NewDateColumn(days []int32, valid []bool) *Column {
	return newColumn(Date, len(days), valid, func(c *Column) { c.int32s = days })
}

func NewDatetimeColumn(values []int64, unit TimeUnit, zone string, valid []bool) *Column {
	return newColumn(Datetime(unit, zone), len(values), valid, func(c *Column) { c.int64s = values })
}

func NewInt32Column(values []int32, valid []bool) *Column {
	return newColumn(Int32, len(values), valid, func(c *Column) { c.int32s = values })
}

func NewInt64Column(values []int64, valid []bool) *Column {
	return newColumn(Int64, len(values), valid, func(c *Column) { c.int64s = values })
}

func NewBoolColumn(values []bool, valid []bool) *Column {
	return newColumn(Bool, len(values), valid, func(c *Column) { c.bools = values })
}

func NewStringColumn(values []string, valid []bool) *Column {
	return newColumn(String, len(values), valid, func(c *Column) { c.strs = values })
}

func newColumn(dt DataType, n int, valid []bool, set func(*Column)) *Column {
	if valid != nil && len(valid) != n {
		panic(errors.Errorf("validity length %d does not match column length %d", len(valid), n))
	}
	c := &Column{dtype: dt, length: n, valid: valid}
	set(c)
	return c
}

// MakeColumn allocates a zeroed column of n elements, all valid.
func MakeColumn(dt DataType, n int) *Column {
	c := &Column{dtype: dt, length: n}
	switch dt.Kind {
	case DATE, INT32:
		c.int32s = make([]int32, n)
	case DATETIME, INT64:
		c.int64s = make([]int64, n)
	case BOOL:
		c.bools = make([]bool, n)
	case STRING:
		c.strs = make([]string, n)
	}
	return c
}

// NullColumn returns a column of n null elements.
func NullColumn(dt DataType, n int) *Column {
	c := MakeColumn(dt, n)
	c.valid = make([]bool, n)
	return c
}

func (c *Column) DataType() DataType { return c.dtype }
func (c *Column) Len() int           { return c.length }

// IsNull reports whether element i is null.
func (c *Column) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}

// Validity returns the validity slice, nil when nothing is null.
func (c *Column) Validity() []bool { return c.valid }

// Int32s backs DATE and INT32 columns.
func (c *Column) Int32s() []int32 { return c.int32s }

// Int64s backs DATETIME and INT64 columns.
func (c *Column) Int64s() []int64 { return c.int64s }

func (c *Column) Bools() []bool     { return c.bools }
func (c *Column) Strings() []string { return c.strs }

// Int64At reads element i of an integer column widened to int64.
func (c *Column) Int64At(i int) int64 {
	if c.int32s != nil {
		return int64(c.int32s[i])
	}
	return c.int64s[i]
}

// Value returns element i as an interface value, nil when null.
func (c *Column) Value(i int) interface{} {
	if c.IsNull(i) {
		return nil
	}
	switch c.dtype.Kind {
	case DATE, INT32:
		return c.int32s[i]
	case DATETIME, INT64:
		return c.int64s[i]
	case BOOL:
		return c.bools[i]
	case STRING:
		return c.strs[i]
	}
	return nil
}
