package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestSeries() *ColumnSeries {
	cs := NewColumnSeries()
	cs.AddColumn("date", NewDateColumn([]int32{0, 1, 4}, nil))
	cs.AddColumn("n", NewInt64Column([]int64{1, 2, 3}, nil))
	return cs
}

func TestColumnSeries_AddColumn(t *testing.T) {
	t.Parallel()

	cs := makeTestSeries()
	assert.Equal(t, 3, cs.Len())
	assert.Equal(t, 2, cs.GetNumColumns())

	// --- when a name collides ---
	name := cs.AddColumn("date", NewDateColumn([]int32{7, 8, 9}, nil))
	name2 := cs.AddColumn("date", NewDateColumn([]int32{7, 8, 9}, nil))

	// --- then ---
	assert.Equal(t, "date0", name)
	assert.Equal(t, "date1", name2)
	assert.Equal(t, []string{"date", "n", "date0", "date1"}, cs.GetColumnNames())
}

func TestColumnSeries_Validate(t *testing.T) {
	t.Parallel()

	cs := makeTestSeries()
	require.NoError(t, cs.Validate())

	cs.AddColumn("short", NewInt32Column([]int32{1}, nil))
	assert.Error(t, cs.Validate())
	assert.Equal(t, 0, NewColumnSeries().Len())
	assert.Nil(t, cs.GetByName("missing"))
}
