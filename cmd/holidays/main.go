package holidays

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/cmd/options"
	hd "github.com/alpacahq/bizday/holidays"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

const (
	usage   = "holidays"
	short   = "List the holidays a calendar observes"
	long    = "This command expands rule based calendars and merges holiday files and dates into the list of holidays that fall on a business weekday. With --market the early closes of a market calendar are listed too, with the session times of every row. The csv output can be read back with --holiday-file."
	example = "bizday holidays --calendar us --from 2024 --to 2025\n  bizday holidays --market nyse.json"
)

var (
	// Cmd is the holidays command.
	Cmd = &cobra.Command{
		Use:     usage,
		Short:   short,
		Long:    long,
		Example: example,
		RunE:    executeHolidays,
	}
	calendars []string
	from      int
	to        int
	list      bool
	market    string
)

// nolint:gochecknoinits // cobra's standard way to initialize flags
func init() {
	Cmd.Flags().StringSliceVar(&calendars, "calendar", nil, "rule based calendars to expand")
	Cmd.Flags().IntVar(&from, "from", 0, "first year expanded for --calendar, defaults to the configured holiday years")
	Cmd.Flags().IntVar(&to, "to", 0, "last year expanded for --calendar, defaults to the configured holiday years")
	Cmd.Flags().BoolVar(&list, "list", false, "print the names of the known calendars and exit")
	Cmd.Flags().StringVar(&market, "market", "", "market calendar .json whose holidays, early closes and session times are listed")
}

// row is one output line; rec.Date is filled in on output.
type row struct {
	day int32
	rec hd.SessionRecord
}

func executeHolidays(cmd *cobra.Command, _ []string) error {
	if list {
		for _, name := range hd.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}
	cmd.SilenceUsage = true

	env, err := options.Global.Load()
	if err != nil {
		return err
	}
	format, err := loader.ParseFormat(options.Global.Format)
	if err != nil {
		return err
	}
	years := env.Config.HolidayYears
	if from != 0 {
		years.From = from
	}
	if to != 0 {
		years.To = to
	}

	days := append([]int32(nil), env.Holidays...)
	names := make(map[int32]string)
	expand := func(name string, y utils.HolidayYears) error {
		expanded, named, err := hd.Expand(name, y.From, y.To)
		if err != nil {
			return err
		}
		days = append(days, expanded...)
		for d, n := range named {
			names[d] = n
		}
		return nil
	}
	// configured calendars are already in env.Holidays; expanded again for their names
	for _, name := range env.Config.HolidayCalendars {
		if err := expand(name, env.Config.HolidayYears); err != nil {
			return err
		}
	}
	for _, name := range calendars {
		if err := expand(name, years); err != nil {
			return err
		}
	}

	var mc *hd.MarketCalendar
	if market != "" {
		if mc, err = loadMarket(market, env.Config.Weekend); err != nil {
			return err
		}
		days = append(days, mc.Holidays()...)
	}

	// only holidays on a business weekday change any result
	set := calendar.NewHolidaySet(days, env.Config.Weekend)
	rows := make([]row, 0, set.Len())
	for _, d := range set.Days() {
		r := row{day: d}
		r.rec.Name = names[d]
		if mc != nil {
			r.rec.Session = hd.SessionClosed
		}
		rows = append(rows, r)
	}
	if mc != nil {
		rows = append(rows, sessions(mc, set)...)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].day < rows[j].day })
	}
	log.Debug("listing %d holidays", len(rows))

	if format == loader.CSV {
		return writeCSV(cmd, rows, mc != nil)
	}
	return options.Global.WriteOutput(cmd, series(rows, mc != nil))
}

func loadMarket(path string, weekend calendar.WeekendMask) (*hd.MarketCalendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read market calendar %s", path)
	}
	mc, err := hd.ParseMarketCalendar(data)
	if err != nil {
		return nil, errors.Wrapf(err, "market calendar %s", path)
	}
	return mc.WithWeekend(weekend), nil
}

// sessions lists the early closes of mc that fall on a market day with their
// open and close times. Early closes that another source makes a holiday are
// left out.
func sessions(mc *hd.MarketCalendar, holidays calendar.HolidaySet) []row {
	var rows []row
	for _, d := range mc.EarlyCloses() {
		if holidays.Contains(d) {
			continue
		}
		year, month, day := calendar.Date(d).Date()
		noon := time.Date(year, month, day, 12, 0, 0, 0, mc.Tz())
		open, clos := mc.MarketOpen(noon), mc.MarketClose(noon)
		if open == nil || clos == nil {
			continue
		}
		r := row{day: d}
		r.rec.Session = hd.SessionEarlyClose
		r.rec.Open = open.Format(time.RFC3339)
		r.rec.Close = clos.Format(time.RFC3339)
		rows = append(rows, r)
	}
	return rows
}

// writeCSV writes a holiday file --holiday-file can read back.
func writeCSV(cmd *cobra.Command, rows []row, withSessions bool) (err error) {
	w, err := options.Global.Create(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if !withSessions {
		records := make([]*hd.Record, len(rows))
		for i := range rows {
			rows[i].rec.Date = calendar.FormatOrdinal(rows[i].day)
			records[i] = &rows[i].rec.Record
		}
		return hd.MarshalCSV(w, records)
	}
	records := make([]*hd.SessionRecord, len(rows))
	for i := range rows {
		rows[i].rec.Date = calendar.FormatOrdinal(rows[i].day)
		records[i] = &rows[i].rec
	}
	return hd.MarshalCSV(w, records)
}

func series(rows []row, withSessions bool) *io.ColumnSeries {
	dates := make([]int32, len(rows))
	for i, r := range rows {
		dates[i] = r.day
	}
	cs := io.NewColumnSeries()
	cs.AddColumn("date", io.NewDateColumn(dates, nil))
	cs.AddColumn("name", stringColumn(rows, func(r *hd.SessionRecord) string { return r.Name }))
	if withSessions {
		cs.AddColumn("session", stringColumn(rows, func(r *hd.SessionRecord) string { return r.Session }))
		cs.AddColumn("open", stringColumn(rows, func(r *hd.SessionRecord) string { return r.Open }))
		cs.AddColumn("close", stringColumn(rows, func(r *hd.SessionRecord) string { return r.Close }))
	}
	return cs
}

// stringColumn is null where field is empty.
func stringColumn(rows []row, field func(*hd.SessionRecord) string) *io.Column {
	values := make([]string, len(rows))
	valid := make([]bool, len(rows))
	allValid := true
	for i := range rows {
		values[i] = field(&rows[i].rec)
		valid[i] = values[i] != ""
		allValid = allValid && valid[i]
	}
	if allValid {
		valid = nil
	}
	return io.NewStringColumn(values, valid)
}
