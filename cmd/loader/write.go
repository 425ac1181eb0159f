package loader

import (
	goio "io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/io"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	CSV     Format = "csv"
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, MsgPack:
		return f, nil
	case "":
		return CSV, nil
	}
	return "", &calendar.ConfigurationError{Param: "format", Value: s, Reason: "expected csv, json or msgpack"}
}

const naiveLayout = "2006-01-02 15:04:05.999999999"

// Table is the row-major form of a ColumnSeries used by the json and
// msgpack encodings. Dates and datetimes are rendered as text.
type Table struct {
	Columns []string        `json:"columns" msgpack:"columns"`
	Rows    [][]interface{} `json:"rows" msgpack:"rows"`
}

func NewTable(cs *io.ColumnSeries) (*Table, error) {
	names := cs.GetColumnNames()
	cols := make([]*io.Column, len(names))
	locs := make([]*time.Location, len(names))
	for i, name := range names {
		cols[i] = cs.GetByName(name)
		if zone := cols[i].DataType().Zone; zone != "" {
			loc, err := time.LoadLocation(zone)
			if err != nil {
				return nil, &calendar.ConfigurationError{Param: "time_zone", Value: zone, Reason: err.Error()}
			}
			locs[i] = loc
		}
	}

	t := &Table{Columns: names, Rows: make([][]interface{}, cs.Len())}
	for r := range t.Rows {
		row := make([]interface{}, len(cols))
		for i, col := range cols {
			row[i] = cell(col, locs[i], r)
		}
		t.Rows[r] = row
	}
	return t, nil
}

func cell(col *io.Column, loc *time.Location, i int) interface{} {
	v := col.Value(i)
	if v == nil {
		return nil
	}
	dt := col.DataType()
	switch dt.Kind {
	case io.DATE:
		return calendar.FormatOrdinal(v.(int32))
	case io.DATETIME:
		t := dt.Unit.Time(v.(int64))
		if loc == nil {
			return t.Format(naiveLayout)
		}
		return t.In(loc).Format(time.RFC3339Nano)
	}
	return v
}

// Write encodes cs to w, gzip compressed when compress is set.
func Write(w goio.Writer, cs *io.ColumnSeries, format Format, compress bool) (err error) {
	if err = cs.Validate(); err != nil {
		return err
	}
	t, err := NewTable(cs)
	if err != nil {
		return err
	}

	if compress {
		gz := gzip.NewWriter(w)
		defer func() {
			if cerr := gz.Close(); err == nil {
				err = errors.Wrap(cerr, "failed to flush gzip output")
			}
		}()
		w = gz
	}

	switch format {
	case JSON:
		err = json.NewEncoder(w).Encode(t)
	case MsgPack:
		err = msgpack.NewEncoder(w).Encode(t)
	default:
		err = writeCSV(w, t)
	}
	return errors.Wrapf(err, "failed to write %s output", format)
}

func writeCSV(w goio.Writer, t *Table) error {
	cw := gocsv.DefaultCSVWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = text(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func text(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}
