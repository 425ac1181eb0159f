package loader

import (
	goio "io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

// Schema types the columns of a CSV file. Columns not named stay strings.
type Schema struct {
	// parsed as dates, or as datetimes when any cell has a time of day
	Temporal []string
	Integer  []string
	// unit and zone of datetime columns
	Unit io.TimeUnit
	Zone string
}

// ReadCSV reads a CSV file with a header row. Empty cells are null.
func ReadCSV(r goio.Reader, s Schema) (*io.ColumnSeries, error) {
	records, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv input")
	}
	if len(records) == 0 {
		return nil, errors.New("csv input has no header row")
	}
	header, rows := records[0], records[1:]

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range append(append([]string(nil), s.Temporal...), s.Integer...) {
		if _, ok := index[name]; !ok {
			return nil, errors.Errorf("column %q not found in csv header %v", name, header)
		}
	}

	cs := io.NewColumnSeries()
	for i, name := range header {
		name = strings.TrimSpace(name)
		cells := make([]string, len(rows))
		for j, row := range rows {
			if i < len(row) {
				cells[j] = strings.TrimSpace(row[i])
			}
		}
		var col *io.Column
		switch {
		case contains(s.Temporal, name):
			col, err = parseTemporal(cells, s.Unit, s.Zone)
		case contains(s.Integer, name):
			col, err = parseIntegers(cells)
		default:
			col = parseStrings(cells)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", name)
		}
		cs.AddColumn(name, col)
	}
	log.Debug("read %d rows of %d columns", cs.Len(), cs.GetNumColumns())
	return cs, nil
}

func parseTemporal(cells []string, unit io.TimeUnit, zone string) (*io.Column, error) {
	valid := make([]bool, len(cells))
	datetime := false
	for i, c := range cells {
		valid[i] = c != ""
		if len(c) > len(calendar.DateLayout) {
			datetime = true
		}
	}

	if !datetime {
		days := make([]int32, len(cells))
		for i, c := range cells {
			if !valid[i] {
				continue
			}
			d, err := calendar.ParseOrdinal(c)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d", i)
			}
			days[i] = d
		}
		return io.NewDateColumn(days, nullable(valid)), nil
	}

	loc := time.UTC
	if zone != "" {
		var err error
		if loc, err = time.LoadLocation(zone); err != nil {
			return nil, &calendar.ConfigurationError{Param: "time_zone", Value: zone, Reason: err.Error()}
		}
	}
	values := make([]int64, len(cells))
	for i, c := range cells {
		if !valid[i] {
			continue
		}
		t, err := parseDatetime(c, loc)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		values[i] = unit.FromTime(t)
	}
	return io.NewDatetimeColumn(values, unit, zone, nullable(valid)), nil
}

// naive layouts are read as wall clock in loc; fractional seconds are
// accepted after the seconds field
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

func parseDatetime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("failed to parse datetime %q", s)
}

func parseIntegers(cells []string) (*io.Column, error) {
	values := make([]int64, len(cells))
	valid := make([]bool, len(cells))
	for i, c := range cells {
		if c == "" {
			continue
		}
		v, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		values[i], valid[i] = v, true
	}
	return io.NewInt64Column(values, nullable(valid)), nil
}

func parseStrings(cells []string) *io.Column {
	valid := make([]bool, len(cells))
	for i, c := range cells {
		valid[i] = c != ""
	}
	return io.NewStringColumn(cells, nullable(valid))
}

func nullable(valid []bool) []bool {
	for _, ok := range valid {
		if !ok {
			return valid
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
