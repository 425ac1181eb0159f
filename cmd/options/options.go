package options

import (
	goio "io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/cmd/loader"
	"github.com/alpacahq/bizday/holidays"
	"github.com/alpacahq/bizday/udf"
	"github.com/alpacahq/bizday/utils"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

// Options are the flags shared by every bizday command. Set flags override
// the configuration file.
type Options struct {
	ConfigFile       string
	LogLevel         string
	Weekend          []string
	Holidays         []string
	HolidayCalendars []string
	HolidayFiles     []string
	Roll             string
	Workers          int
	TimeUnit         string
	TimeZone         string
	Input            string
	Output           string
	Format           string
	Gzip             bool
	MetricsFile      string
}

// Global is bound to the root command's persistent flags.
var Global = &Options{}

// Register binds o to the persistent flags of c. Registering resets o to
// the flag defaults.
func (o *Options) Register(c *cobra.Command) {
	pf := c.PersistentFlags()
	pf.StringVarP(&o.ConfigFile, "config", "c", "", "bizday YAML configuration file")
	pf.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn, error or fatal")
	pf.StringSliceVar(&o.Weekend, "weekend", nil, "weekend days, e.g. Sat,Sun")
	pf.StringArrayVar(&o.Holidays, "holiday", nil, "holiday date YYYY-MM-DD (repeatable)")
	pf.StringSliceVar(&o.HolidayCalendars, "holiday-calendar", nil, "rule based holiday calendar: "+strings.Join(holidays.Names(), ", "))
	pf.StringSliceVar(&o.HolidayFiles, "holiday-file", nil, "market calendar .json or holiday list .csv")
	pf.StringVar(&o.Roll, "roll", "", "raise, forward or backward")
	pf.IntVar(&o.Workers, "workers", 0, "number of goroutines evaluating partitions")
	pf.StringVar(&o.TimeUnit, "time-unit", "", "datetime unit: ms, us or ns")
	pf.StringVar(&o.TimeZone, "time-zone", "", "time zone of datetime input, e.g. America/New_York")
	pf.StringVarP(&o.Input, "input", "i", "", "csv input file, stdin when empty or -")
	pf.StringVarP(&o.Output, "output", "o", "", "output file, stdout when empty or -")
	pf.StringVarP(&o.Format, "format", "f", "csv", "output format: csv, json or msgpack")
	pf.BoolVar(&o.Gzip, "gzip", false, "gzip the output")
	pf.StringVar(&o.MetricsFile, "metrics-file", "", "write evaluation metrics to this file in prometheus text format")
}

// Env is the resolved evaluation environment of one command.
type Env struct {
	Config   *utils.BizdayConfig
	Holidays []int32
	Params   udf.Params
}

// Load reads the configuration file, applies the flag overrides and
// resolves every holiday source.
func (o *Options) Load() (*Env, error) {
	c := utils.NewDefaultConfig()
	if o.ConfigFile != "" {
		var err error
		if c, err = utils.LoadConfig(o.ConfigFile); err != nil {
			return nil, err
		}
		log.Info("using %s for configuration", o.ConfigFile)
	}
	if err := o.override(c); err != nil {
		return nil, err
	}

	days, err := holidays.Resolve(holidays.Sources{
		Dates:     c.Holidays,
		Calendars: c.HolidayCalendars,
		Files:     c.HolidayFiles,
		From:      c.HolidayYears.From,
		To:        c.HolidayYears.To,
	})
	if err != nil {
		return nil, err
	}
	return &Env{Config: c, Holidays: days, Params: udf.FromConfig(c, days)}, nil
}

func (o *Options) override(c *utils.BizdayConfig) error {
	if o.LogLevel != "" {
		level, err := log.ParseLevel(o.LogLevel)
		if err != nil {
			return &calendar.ConfigurationError{Param: "log_level", Value: o.LogLevel, Reason: err.Error()}
		}
		c.LogLevel = level
		log.SetLevel(level)
	}
	if len(o.Weekend) > 0 {
		mask, err := calendar.ParseWeekend(o.Weekend)
		if err != nil {
			return err
		}
		c.Weekend = mask
	}
	for _, s := range o.Holidays {
		d, err := calendar.ParseOrdinal(s)
		if err != nil {
			return &calendar.ConfigurationError{Param: "holiday", Value: s, Reason: "expected YYYY-MM-DD"}
		}
		c.Holidays = append(c.Holidays, d)
	}
	c.HolidayCalendars = append(c.HolidayCalendars, o.HolidayCalendars...)
	c.HolidayFiles = append(c.HolidayFiles, o.HolidayFiles...)
	if o.Roll != "" {
		roll, err := calendar.ParseRoll(o.Roll)
		if err != nil {
			return err
		}
		c.Roll = roll
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.TimeUnit != "" {
		unit, err := io.ParseTimeUnit(o.TimeUnit)
		if err != nil {
			return &calendar.ConfigurationError{Param: "time_unit", Value: o.TimeUnit, Reason: err.Error()}
		}
		c.TimeUnit = unit
	}
	if o.TimeZone != "" {
		if _, err := time.LoadLocation(o.TimeZone); err != nil {
			return &calendar.ConfigurationError{Param: "time_zone", Value: o.TimeZone, Reason: err.Error()}
		}
		c.TimeZone = o.TimeZone
	}
	return nil
}

// ReadInput reads the csv input typed by schema; the datetime unit and zone
// come from env.
func (o *Options) ReadInput(c *cobra.Command, env *Env, schema loader.Schema) (*io.ColumnSeries, error) {
	schema.Unit, schema.Zone = env.Config.TimeUnit, env.Config.TimeZone

	var r goio.Reader = c.InOrStdin()
	if o.Input != "" && o.Input != "-" {
		f, err := os.Open(o.Input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open input %s", o.Input)
		}
		defer f.Close()
		r = f
	}
	return loader.ReadCSV(r, schema)
}

// WriteOutput writes cs in the selected format.
func (o *Options) WriteOutput(c *cobra.Command, cs *io.ColumnSeries) (err error) {
	format, err := loader.ParseFormat(o.Format)
	if err != nil {
		return err
	}

	var w goio.Writer = c.OutOrStdout()
	if o.Output != "" && o.Output != "-" {
		var f *os.File
		if f, err = os.Create(o.Output); err != nil {
			return errors.Wrapf(err, "failed to create output %s", o.Output)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return loader.Write(w, cs, format, o.Gzip)
}

// Create opens the output destination for an encoder other than
// loader.Write, gzip compressed when --gzip is set. Close flushes the
// compressed stream and then closes the file.
func (o *Options) Create(c *cobra.Command) (goio.WriteCloser, error) {
	out := &output{Writer: c.OutOrStdout()}
	if o.Output != "" && o.Output != "-" {
		f, err := os.Create(o.Output)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create output %s", o.Output)
		}
		out.Writer = f
		out.closers = append(out.closers, f)
	}
	if o.Gzip {
		gz := gzip.NewWriter(out.Writer)
		out.Writer = gz
		out.closers = append(out.closers, gz)
	}
	return out, nil
}

type output struct {
	goio.Writer
	// innermost first
	closers []goio.Closer
}

func (o *output) Close() error {
	var err error
	for i := len(o.closers) - 1; i >= 0; i-- {
		if cerr := o.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return errors.Wrap(err, "failed to close output")
}
