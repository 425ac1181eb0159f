// Package holidays turns holiday sources (market calendar JSON files, CSV
// date lists and rule-based country calendars) into the sorted list of day
// ordinals a calendar.BusinessCalendar is built from.
package holidays

import (
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MarketState int

const (
	Open MarketState = iota
	Closed
	EarlyClose
)

type Time struct {
	hour, minute, second int
}

func (t Time) String() string {
	return time.Date(0, 1, 1, t.hour, t.minute, t.second, 0, time.UTC).Format("15:04:05")
}

// MarketCalendar is an exchange calendar read from JSON:
//
//	{
//	  "non_trading_days": ["2024-01-01", ...],
//	  "early_closes": ["2024-07-03", ...],
//	  "timezone": "America/New_York",
//	  "open_time": "09:30:00",
//	  "close_time": "16:00:00",
//	  "early_close_time": "13:00:00"
//	}
//
// Non-trading days are the holidays; early closes are still business days.
type MarketCalendar struct {
	days           map[int32]MarketState
	weekend        calendar.WeekendMask
	tz             *time.Location
	openTime       Time
	closeTime      Time
	earlyCloseTime Time
}

type marketCalendarJSON struct {
	NonTradingDays []string `json:"non_trading_days"`
	EarlyCloses    []string `json:"early_closes"`
	Timezone       string   `json:"timezone"`
	OpenTime       string   `json:"open_time"`
	CloseTime      string   `json:"close_time"`
	EarlyCloseTime string   `json:"early_close_time"`
}

// ParseTime reads "HH:MM[:SS]".
func ParseTime(tstr string) (Time, error) {
	seps := strings.Split(tstr, ":")
	if len(seps) < 2 || len(seps) > 3 {
		return Time{}, errors.Errorf("invalid time of day %q", tstr)
	}
	var parts [3]int
	for i, s := range seps {
		v, err := strconv.Atoi(s)
		if err != nil {
			return Time{}, errors.Wrapf(err, "invalid time of day %q", tstr)
		}
		parts[i] = v
	}
	return Time{parts[0], parts[1], parts[2]}, nil
}

// ParseMarketCalendar decodes a market calendar. Missing times of day
// default to midnight and a missing timezone to UTC.
func ParseMarketCalendar(data []byte) (*MarketCalendar, error) {
	var cmap marketCalendarJSON
	if err := json.Unmarshal(data, &cmap); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal market calendar")
	}

	mc := &MarketCalendar{
		days:    make(map[int32]MarketState, len(cmap.NonTradingDays)+len(cmap.EarlyCloses)),
		weekend: calendar.DefaultWeekend,
	}
	for _, s := range cmap.EarlyCloses {
		d, err := calendar.ParseOrdinal(s)
		if err != nil {
			return nil, errors.Wrap(err, "invalid early_closes entry")
		}
		mc.days[d] = EarlyClose
	}
	// a date listed as both is closed
	for _, s := range cmap.NonTradingDays {
		d, err := calendar.ParseOrdinal(s)
		if err != nil {
			return nil, errors.Wrap(err, "invalid non_trading_days entry")
		}
		mc.days[d] = Closed
	}

	var err error
	if mc.tz, err = time.LoadLocation(cmap.Timezone); err != nil {
		return nil, &calendar.ConfigurationError{Param: "timezone", Value: cmap.Timezone, Reason: err.Error()}
	}
	for _, f := range []struct {
		dst *Time
		src string
	}{
		{&mc.openTime, cmap.OpenTime},
		{&mc.closeTime, cmap.CloseTime},
		{&mc.earlyCloseTime, cmap.EarlyCloseTime},
	} {
		if f.src == "" {
			continue
		}
		if *f.dst, err = ParseTime(f.src); err != nil {
			return nil, err
		}
	}

	log.Debug("loaded market calendar: %d non-trading days, %d early closes, tz=%s",
		len(cmap.NonTradingDays), len(cmap.EarlyCloses), mc.tz)
	return mc, nil
}

// Holidays returns the non-trading days in ascending order.
func (mc *MarketCalendar) Holidays() []int32 {
	return mc.daysIn(Closed)
}

// EarlyCloses returns the early-close days in ascending order.
func (mc *MarketCalendar) EarlyCloses() []int32 {
	return mc.daysIn(EarlyClose)
}

func (mc *MarketCalendar) daysIn(state MarketState) []int32 {
	var out []int32
	for d, s := range mc.days {
		if s == state {
			out = append(out, d)
		}
	}
	return sortUnique(out)
}

// WithWeekend returns a copy of mc whose market days exclude the weekend
// days of mask instead of Saturday and Sunday.
func (mc *MarketCalendar) WithWeekend(mask calendar.WeekendMask) *MarketCalendar {
	cp := *mc
	cp.weekend = mask
	return &cp
}

// IsMarketDay reports whether the civil date of t in the calendar's zone
// is neither a weekend day nor a non-trading day.
func (mc *MarketCalendar) IsMarketDay(t time.Time) bool {
	t = t.In(mc.tz)
	if mc.weekend.IsWeekend(calendar.FromTimeWeekday(t.Weekday())) {
		return false
	}
	return mc.days[calendar.Ordinal(t)] != Closed
}

// MarketOpen returns the open time of t's trading day, or nil when the
// market does not trade that day.
func (mc *MarketCalendar) MarketOpen(t time.Time) *time.Time {
	return mc.session(t, mc.openTime)
}

// MarketClose returns the close time of t's trading day, or nil when the
// market does not trade that day. Early-close days close at the early close
// time.
func (mc *MarketCalendar) MarketClose(t time.Time) *time.Time {
	ct := mc.closeTime
	if mc.days[calendar.Ordinal(t.In(mc.tz))] == EarlyClose {
		ct = mc.earlyCloseTime
	}
	return mc.session(t, ct)
}

func (mc *MarketCalendar) session(t time.Time, at Time) *time.Time {
	if !mc.IsMarketDay(t) {
		return nil
	}
	year, month, day := t.In(mc.tz).Date()
	st := time.Date(year, month, day, at.hour, at.minute, at.second, 0, mc.tz)
	return &st
}

func (mc *MarketCalendar) Tz() *time.Location {
	return mc.tz
}
