package io

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Kind is the element type of a Column.
type Kind int8

const (
	DATE Kind = iota
	DATETIME
	INT32
	INT64
	BOOL
	STRING
)

var kindNames = map[Kind]string{
	DATE:     "date",
	DATETIME: "datetime",
	INT32:    "int32",
	INT64:    "int64",
	BOOL:     "bool",
	STRING:   "string",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TimeUnit is the resolution of a DATETIME column.
type TimeUnit int8

const (
	Milliseconds TimeUnit = iota
	Microseconds
	Nanoseconds
)

var unitsPerSecond = map[TimeUnit]int64{
	Milliseconds: 1_000,
	Microseconds: 1_000_000,
	Nanoseconds:  1_000_000_000,
}

// ParseTimeUnit accepts "ms", "us" or "ns".
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(s) {
	case "ms":
		return Milliseconds, nil
	case "us", "μs":
		return Microseconds, nil
	case "ns":
		return Nanoseconds, nil
	}
	return Microseconds, errors.Errorf("unknown time unit %q, expected ms, us or ns", s)
}

// PerSecond is the number of units in one second.
func (u TimeUnit) PerSecond() int64 {
	return unitsPerSecond[u]
}

// PerDay is the number of units in one 86400-second day.
func (u TimeUnit) PerDay() int64 {
	return unitsPerSecond[u] * 86400
}

// Time converts a value in this unit since the epoch to a UTC time.
func (u TimeUnit) Time(v int64) time.Time {
	switch u {
	case Milliseconds:
		return time.UnixMilli(v).UTC()
	case Microseconds:
		return time.UnixMicro(v).UTC()
	default:
		return time.Unix(0, v).UTC()
	}
}

// FromTime is the inverse of Time.
func (u TimeUnit) FromTime(t time.Time) int64 {
	switch u {
	case Milliseconds:
		return t.UnixMilli()
	case Microseconds:
		return t.UnixMicro()
	default:
		return t.UnixNano()
	}
}

func (u TimeUnit) String() string {
	switch u {
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "us"
	case Nanoseconds:
		return "ns"
	}
	return "unknown"
}

// DataType is a Kind plus, for DATETIME, its unit and time zone. An empty
// Zone means naive wall-clock values.
type DataType struct {
	Kind Kind
	Unit TimeUnit
	Zone string
}

var (
	Date   = DataType{Kind: DATE}
	Int32  = DataType{Kind: INT32}
	Int64  = DataType{Kind: INT64}
	Bool   = DataType{Kind: BOOL}
	String = DataType{Kind: STRING}
)

func Datetime(unit TimeUnit, zone string) DataType {
	return DataType{Kind: DATETIME, Unit: unit, Zone: zone}
}

// IsTemporal reports whether the type holds dates or datetimes.
func (dt DataType) IsTemporal() bool {
	return dt.Kind == DATE || dt.Kind == DATETIME
}

// IsInteger reports whether the type holds int32 or int64 values.
func (dt DataType) IsInteger() bool {
	return dt.Kind == INT32 || dt.Kind == INT64
}

func (dt DataType) String() string {
	if dt.Kind != DATETIME {
		return dt.Kind.String()
	}
	if dt.Zone == "" {
		return fmt.Sprintf("datetime[%s]", dt.Unit)
	}
	return fmt.Sprintf("datetime[%s, %s]", dt.Unit, dt.Zone)
}
