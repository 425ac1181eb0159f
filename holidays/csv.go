package holidays

import (
	"bytes"
	goio "io"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
)

// Record is one row of a holiday CSV file. Only the date column is
// required:
//
//	date,name
//	2024-12-25,Christmas Day
type Record struct {
	Date string `csv:"date"`
	Name string `csv:"name"`
}

// SessionRecord is a Record with the trading session of a market calendar
// day. Rows whose session is early_close are trading days and are skipped
// when the file is read back as holidays.
type SessionRecord struct {
	Record
	Session string `csv:"session"`
	Open    string `csv:"open"`
	Close   string `csv:"close"`
}

const (
	SessionClosed     = "closed"
	SessionEarlyClose = "early_close"
)

// ParseCSV reads holiday records and returns their ordinals in file order.
func ParseCSV(data []byte) ([]int32, error) {
	var records []*SessionRecord
	if err := gocsv.Unmarshal(bytes.NewReader(data), &records); err != nil {
		return nil, errors.Wrap(err, "failed to read holiday csv")
	}
	days := make([]int32, 0, len(records))
	for i, r := range records {
		if r.Session == SessionEarlyClose {
			continue
		}
		d, err := calendar.ParseOrdinal(r.Date)
		if err != nil {
			return nil, errors.Wrapf(err, "holiday csv row %d", i+1)
		}
		days = append(days, d)
	}
	return days, nil
}

// MarshalCSV writes a []*Record or []*SessionRecord with its header row.
func MarshalCSV(w goio.Writer, records interface{}) error {
	return errors.Wrap(gocsv.Marshal(records, w), "failed to write holiday csv")
}
