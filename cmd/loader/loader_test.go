package loader_test

import (
	"bytes"
	goio "io"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/utils/io"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "date, n ,label\n2024-01-05,1,a\n,2,\n2024-01-08,,c\n"
	cs, err := loader.ReadCSV(strings.NewReader(input), loader.Schema{
		Temporal: []string{"date"},
		Integer:  []string{"n"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "n", "label"}, cs.GetColumnNames())
	assert.Equal(t, 3, cs.Len())

	dates := cs.GetByName("date")
	assert.Equal(t, io.Date, dates.DataType())
	assert.Equal(t, "2024-01-05", calendar.FormatOrdinal(dates.Int32s()[0]))
	assert.True(t, dates.IsNull(1))

	n := cs.GetByName("n")
	assert.Equal(t, io.Int64, n.DataType())
	assert.Equal(t, []int64{1, 2, 0}, n.Int64s())
	assert.Equal(t, []bool{true, true, false}, n.Validity())

	label := cs.GetByName("label")
	assert.Equal(t, io.String, label.DataType())
	assert.True(t, label.IsNull(1))
	assert.Equal(t, "c", label.Strings()[2])
}

func TestReadCSV_Datetimes(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	input := "ts\n2024-01-05 10:30:00\n2024-01-05T11:00:00.5\n2024-01-05T15:00:00Z\n"
	cs, err := loader.ReadCSV(strings.NewReader(input), loader.Schema{
		Temporal: []string{"ts"},
		Unit:     io.Milliseconds,
		Zone:     "America/New_York",
	})
	require.NoError(t, err)

	ts := cs.GetByName("ts")
	assert.Equal(t, io.Datetime(io.Milliseconds, "America/New_York"), ts.DataType())
	assert.Equal(t, []int64{
		time.Date(2024, 1, 5, 10, 30, 0, 0, ny).UnixMilli(),
		time.Date(2024, 1, 5, 11, 0, 0, 500000000, ny).UnixMilli(),
		time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC).UnixMilli(),
	}, ts.Int64s())
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input  string
		schema loader.Schema
	}{
		"empty input":    {input: "", schema: loader.Schema{}},
		"missing column": {input: "day\n2024-01-05\n", schema: loader.Schema{Temporal: []string{"date"}}},
		"bad date":       {input: "date\n2024-13-05\n", schema: loader.Schema{Temporal: []string{"date"}}},
		"bad datetime":   {input: "date\n2024-01-05 nonsense\n", schema: loader.Schema{Temporal: []string{"date"}}},
		"bad integer":    {input: "n\n1.5\n", schema: loader.Schema{Integer: []string{"n"}}},
		"bad zone": {
			input:  "date\n2024-01-05 10:00:00\n",
			schema: loader.Schema{Temporal: []string{"date"}, Zone: "Mars/Olympus"},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := loader.ReadCSV(strings.NewReader(tt.input), tt.schema)
			assert.Error(t, err)
		})
	}
}

func sampleSeries() *io.ColumnSeries {
	cs := io.NewColumnSeries()
	cs.AddColumn("date", io.NewDateColumn([]int32{19727, 0}, []bool{true, false}))
	cs.AddColumn("n", io.NewInt32Column([]int32{4, -2}, nil))
	cs.AddColumn("ok", io.NewBoolColumn([]bool{true, false}, nil))
	return cs
}

func TestWrite_CSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, loader.Write(&buf, sampleSeries(), loader.CSV, false))
	assert.Equal(t, "date,n,ok\n2024-01-05,4,true\n,-2,false\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, loader.Write(&buf, sampleSeries(), loader.JSON, false))
	assert.JSONEq(t, `{"columns":["date","n","ok"],"rows":[["2024-01-05",4,true],[null,-2,false]]}`, buf.String())
}

func TestWrite_MsgPack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, loader.Write(&buf, sampleSeries(), loader.MsgPack, false))

	var table loader.Table
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &table))
	assert.Equal(t, []string{"date", "n", "ok"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "2024-01-05", table.Rows[0][0])
	assert.Nil(t, table.Rows[1][0])
	assert.Equal(t, true, table.Rows[0][2])
}

func TestWrite_Gzip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, loader.Write(&buf, sampleSeries(), loader.CSV, true))

	r, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	plain, err := goio.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "date,n,ok\n2024-01-05,4,true\n,-2,false\n", string(plain))
}

func TestWrite_Datetimes(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	v := time.Date(2024, 1, 5, 10, 30, 0, 0, ny).UnixMicro()

	cs := io.NewColumnSeries()
	cs.AddColumn("zoned", io.NewDatetimeColumn([]int64{v}, io.Microseconds, "America/New_York", nil))
	cs.AddColumn("naive", io.NewDatetimeColumn([]int64{v}, io.Microseconds, "", nil))

	var buf bytes.Buffer
	require.NoError(t, loader.Write(&buf, cs, loader.CSV, false))
	assert.Equal(t, "zoned,naive\n2024-01-05T10:30:00-05:00,2024-01-05 15:30:00\n", buf.String())
}

func TestWrite_LengthMismatch(t *testing.T) {
	t.Parallel()

	cs := io.NewColumnSeries()
	cs.AddColumn("a", io.NewInt32Column([]int32{1, 2}, nil))
	cs.AddColumn("b", io.NewInt32Column([]int32{1}, nil))
	assert.Error(t, loader.Write(&bytes.Buffer{}, cs, loader.CSV, false))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    loader.Format
		wantErr bool
	}{
		"default": {in: "", want: loader.CSV},
		"json":    {in: "JSON", want: loader.JSON},
		"msgpack": {in: " msgpack ", want: loader.MsgPack},
		"parquet": {in: "parquet", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := loader.ParseFormat(tt.in)
			if tt.wantErr {
				var cfgErr *calendar.ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
