package io

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Nulls(t *testing.T) {
	t.Parallel()

	// --- when ---
	col := NewDateColumn([]int32{1, 2, 3}, []bool{true, false, true})

	// --- then ---
	assert.Equal(t, 3, col.Len())
	assert.Equal(t, Date, col.DataType())
	assert.False(t, col.IsNull(0))
	assert.True(t, col.IsNull(1))
	assert.Equal(t, []bool{true, false, true}, col.Validity())
	assert.Nil(t, col.Value(1))
	assert.Equal(t, int32(3), col.Value(2))
}

func TestColumn_NullColumn(t *testing.T) {
	t.Parallel()

	col := NullColumn(Datetime(Milliseconds, "UTC"), 3)
	assert.Equal(t, []bool{false, false, false}, col.Validity())
	assert.Len(t, col.Int64s(), 3)
}

func TestColumn_Int64At(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(20), NewInt32Column([]int32{10, 20}, nil).Int64At(1))
	assert.Equal(t, int64(-7), NewInt64Column([]int64{-7}, nil).Int64At(0))
}

func TestColumn_LengthMismatchPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewBoolColumn([]bool{true}, []bool{true, true}) })
}

func TestTimeUnit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		unit   TimeUnit
		perDay int64
	}{
		"ms": {unit: Milliseconds, perDay: 86_400_000},
		"us": {unit: Microseconds, perDay: 86_400_000_000},
		"ns": {unit: Nanoseconds, perDay: 86_400_000_000_000},
	}
	for name, tt := range tests {
		name, tt := name, tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			unit, err := ParseTimeUnit(name)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, unit)
			assert.Equal(t, name, unit.String())
			assert.Equal(t, tt.perDay, unit.PerDay())

			ts := time.Date(1969, 7, 20, 20, 17, 40, 0, time.UTC)
			assert.True(t, ts.Equal(unit.Time(unit.FromTime(ts))))
		})
	}

	_, err := ParseTimeUnit("s")
	assert.Error(t, err)
}

func TestDataType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "date", Date.String())
	assert.Equal(t, "datetime[us]", Datetime(Microseconds, "").String())
	assert.Equal(t, "datetime[ns, Europe/London]", Datetime(Nanoseconds, "Europe/London").String())
	assert.True(t, Date.IsTemporal())
	assert.False(t, Int32.IsTemporal())
	assert.True(t, Int64.IsInteger())
	assert.False(t, String.IsInteger())
}
