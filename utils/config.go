package utils

import (
	"fmt"
	"os"
	"time"
	// zone database for hosts without one
	_ "time/tzdata"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/io"
	"github.com/alpacahq/bizday/utils/log"
)

const (
	defaultPartitionSize = 1 << 16
	defaultHolidayFrom   = 1990
	defaultHolidayTo     = 2050
)

// HolidayYears bounds the years for which rule-based holiday calendars
// are expanded into dates, inclusive on both ends.
type HolidayYears struct {
	From int
	To   int
}

type BizdayConfig struct {
	LogLevel         log.Level
	Weekend          calendar.WeekendMask
	Roll             calendar.RollPolicy
	Holidays         []int32
	HolidayCalendars []string
	HolidayFiles     []string
	HolidayYears     HolidayYears
	Workers          int
	PartitionSize    int
	TimeUnit         io.TimeUnit
	TimeZone         string
}

// NewDefaultConfig is the configuration used when no file is given.
func NewDefaultConfig() *BizdayConfig {
	return &BizdayConfig{
		LogLevel:      log.INFO,
		Weekend:       calendar.DefaultWeekend,
		Roll:          calendar.Raise,
		HolidayYears:  HolidayYears{From: defaultHolidayFrom, To: defaultHolidayTo},
		Workers:       1,
		PartitionSize: defaultPartitionSize,
		TimeUnit:      io.Microseconds,
	}
}

// LoadConfig reads and parses a YAML file on top of the defaults.
func LoadConfig(path string) (*BizdayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	c := NewDefaultConfig()
	if err := c.Parse(data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return c, nil
}

// Parse overlays the keys present in data onto c. Keys that are absent keep
// their current value.
func (c *BizdayConfig) Parse(data []byte) error {
	var aux struct {
		LogLevel         string   `yaml:"log_level"`
		Weekend          []string `yaml:"weekend"`
		Roll             string   `yaml:"roll"`
		Holidays         []string `yaml:"holidays"`
		HolidayCalendars []string `yaml:"holiday_calendars"`
		HolidayFiles     []string `yaml:"holiday_files"`
		HolidayYears     *struct {
			From int `yaml:"from"`
			To   int `yaml:"to"`
		} `yaml:"holiday_years"`
		Workers       int    `yaml:"workers"`
		PartitionSize int    `yaml:"partition_size"`
		TimeUnit      string `yaml:"time_unit"`
		TimeZone      string `yaml:"time_zone"`
	}

	if err := yaml.UnmarshalStrict(data, &aux); err != nil {
		return errors.Wrap(err, "invalid yaml")
	}

	if aux.LogLevel != "" {
		level, err := log.ParseLevel(aux.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
		log.SetLevel(level)
	}

	if aux.Weekend != nil {
		weekend, err := calendar.ParseWeekend(aux.Weekend)
		if err != nil {
			return err
		}
		c.Weekend = weekend
	}

	if aux.Roll != "" {
		roll, err := calendar.ParseRoll(aux.Roll)
		if err != nil {
			return err
		}
		c.Roll = roll
	}

	for _, s := range aux.Holidays {
		d, err := calendar.ParseOrdinal(s)
		if err != nil {
			return errors.Wrap(err, "invalid holidays entry")
		}
		c.Holidays = append(c.Holidays, d)
	}
	c.HolidayCalendars = append(c.HolidayCalendars, aux.HolidayCalendars...)
	c.HolidayFiles = append(c.HolidayFiles, aux.HolidayFiles...)

	if aux.HolidayYears != nil {
		if aux.HolidayYears.From > aux.HolidayYears.To {
			return &calendar.ConfigurationError{
				Param:  "holiday_years",
				Value:  yearRange(aux.HolidayYears.From, aux.HolidayYears.To),
				Reason: "from must not be after to",
			}
		}
		c.HolidayYears = HolidayYears{From: aux.HolidayYears.From, To: aux.HolidayYears.To}
	}

	if aux.Workers < 0 {
		log.Warn("Invalid value: %d for workers. Running sequentially...", aux.Workers)
	} else if aux.Workers > 0 {
		c.Workers = aux.Workers
	}

	if aux.PartitionSize > 0 {
		c.PartitionSize = aux.PartitionSize
	}

	if aux.TimeUnit != "" {
		unit, err := io.ParseTimeUnit(aux.TimeUnit)
		if err != nil {
			return &calendar.ConfigurationError{Param: "time_unit", Value: aux.TimeUnit, Reason: err.Error()}
		}
		c.TimeUnit = unit
	}

	if aux.TimeZone != "" {
		if _, err := time.LoadLocation(aux.TimeZone); err != nil {
			return &calendar.ConfigurationError{Param: "time_zone", Value: aux.TimeZone, Reason: err.Error()}
		}
		c.TimeZone = aux.TimeZone
	}

	log.Debug("parsed config: weekend=%s roll=%s holidays=%d calendars=%v files=%v workers=%d",
		c.Weekend, c.Roll, len(c.Holidays), c.HolidayCalendars, c.HolidayFiles, c.Workers)
	return nil
}

func yearRange(from, to int) string {
	return fmt.Sprintf("%d..%d", from, to)
}
