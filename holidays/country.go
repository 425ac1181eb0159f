package holidays

import (
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/log"
)

// marketNewYear is New Year's Day as US exchanges observe it: a Sunday
// moves to Monday, a Saturday is not made up on the Friday before.
var marketNewYear = &cal.Holiday{
	Name:     "New Year's Day",
	Type:     cal.ObservancePublic,
	Month:    time.January,
	Day:      1,
	Observed: []cal.AltDay{{Day: time.Sunday, Offset: 1}},
	Func:     cal.CalcDayOfMonth,
}

// rule sets addressable by name from configuration and the CLI
var ruleSets = map[string][]*cal.Holiday{
	// US federal holidays
	"us": {
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
	// US equity exchanges
	"us-market": {
		marketNewYear,
		us.MlkDay,
		us.PresidentsDay,
		aa.GoodFriday,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	},
	// England and Wales bank holidays
	"gb": {
		gb.NewYear,
		gb.GoodFriday,
		gb.EasterMonday,
		gb.EarlyMay,
		gb.SpringHoliday,
		gb.SummerHoliday,
		gb.ChristmasDay,
		gb.BoxingDay,
	},
}

// Names lists the rule-based calendars in sorted order.
func Names() []string {
	names := make([]string, 0, len(ruleSets))
	for name := range ruleSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand returns the observed dates of a named rule set for the years
// [from, to], with the holiday name of each date.
func Expand(name string, from, to int) ([]int32, map[int32]string, error) {
	rules, ok := ruleSets[strings.ToLower(name)]
	if !ok {
		return nil, nil, &calendar.ConfigurationError{
			Param:  "holiday_calendar",
			Value:  name,
			Reason: "expected one of " + strings.Join(Names(), ", "),
		}
	}
	if from > to {
		return nil, nil, &calendar.ConfigurationError{
			Param:  "holiday_years",
			Value:  name,
			Reason: "from must not be after to",
		}
	}

	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(rules...)

	var days []int32
	names := make(map[int32]string)
	end := time.Date(to+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	for t := time.Date(from, time.January, 1, 0, 0, 0, 0, time.UTC); t.Before(end); t = t.AddDate(0, 0, 1) {
		_, observed, h := bc.IsHoliday(t)
		if !observed {
			continue
		}
		d := calendar.Ordinal(t)
		days = append(days, d)
		names[d] = h.Name
	}
	log.Debug("expanded holiday calendar %s for %d-%d: %d dates", name, from, to, len(days))
	return days, names, nil
}
