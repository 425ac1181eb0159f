package io

import (
	"strconv"

	"github.com/pkg/errors"
)

/*
ColumnSeries is an ordered set of equal-length named columns, the tabular
unit the CLI reads and writes:

	cs.GetByName("date") -> *Column of DATE
	cs.GetByName("n")    -> *Column of INT64
*/
type ColumnSeries struct {
	columns       map[string]*Column
	orderedNames  []string
	nameIncrement map[string]int
}

func NewColumnSeries() *ColumnSeries {
	return &ColumnSeries{
		columns:       make(map[string]*Column),
		nameIncrement: make(map[string]int),
	}
}

func (cs *ColumnSeries) Len() int {
	if len(cs.orderedNames) == 0 {
		return 0
	}
	return cs.columns[cs.orderedNames[0]].Len()
}

func (cs *ColumnSeries) GetColumnNames() []string {
	return cs.orderedNames
}

func (cs *ColumnSeries) GetNumColumns() int {
	return len(cs.orderedNames)
}

// AddColumn appends a column and returns the name it was stored under. A
// name collision is resolved by appending an increasing suffix.
func (cs *ColumnSeries) AddColumn(name string, col *Column) (outname string) {
	if _, ok := cs.columns[name]; ok {
		if _, ok := cs.nameIncrement[name]; !ok {
			cs.nameIncrement[name] = 0
		} else {
			cs.nameIncrement[name]++
		}
		name += strconv.Itoa(cs.nameIncrement[name])
	}
	cs.orderedNames = append(cs.orderedNames, name)
	cs.columns[name] = col
	return name
}

// GetByName returns nil when no column has that name.
func (cs *ColumnSeries) GetByName(name string) *Column {
	return cs.columns[name]
}

// Validate checks that every column has the same length.
func (cs *ColumnSeries) Validate() error {
	n := cs.Len()
	for _, name := range cs.orderedNames {
		if l := cs.columns[name].Len(); l != n {
			return errors.Errorf("column %s has %d rows, expected %d", name, l, n)
		}
	}
	return nil
}
