package holidays

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/utils/log"
)

// Sources are the holiday inputs of one evaluation.
type Sources struct {
	// explicit day ordinals
	Dates []int32
	// rule-based calendars, see Names
	Calendars []string
	// .json market calendars or .csv date lists
	Files []string
	// year range used to expand Calendars
	From, To int
}

// Resolve merges every source into one sorted, deduplicated list.
func Resolve(src Sources) ([]int32, error) {
	days := append([]int32(nil), src.Dates...)

	for _, name := range src.Calendars {
		expanded, _, err := Expand(name, src.From, src.To)
		if err != nil {
			return nil, err
		}
		days = append(days, expanded...)
	}

	for _, path := range src.Files {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		days = append(days, loaded...)
	}

	out := sortUnique(days)
	log.Info("resolved %d holidays from %d dates, %d calendars, %d files",
		len(out), len(src.Dates), len(src.Calendars), len(src.Files))
	return out, nil
}

// LoadFile reads a holiday file, choosing the format by extension.
func LoadFile(path string) ([]int32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read holiday file %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		mc, err := ParseMarketCalendar(data)
		if err != nil {
			return nil, errors.Wrapf(err, "holiday file %s", path)
		}
		return mc.Holidays(), nil
	case ".csv":
		days, err := ParseCSV(data)
		if err != nil {
			return nil, errors.Wrapf(err, "holiday file %s", path)
		}
		return days, nil
	}
	return nil, &calendar.ConfigurationError{
		Param:  "holiday_file",
		Value:  path,
		Reason: "expected a .json market calendar or a .csv date list",
	}
}

func sortUnique(days []int32) []int32 {
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	n := 0
	for i, d := range days {
		if i == 0 || d != days[n-1] {
			days[n] = d
			n++
		}
	}
	return days[:n]
}
