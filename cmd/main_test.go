package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizday/calendar"
	"github.com/alpacahq/bizday/cmd"
	holidayscmd "github.com/alpacahq/bizday/cmd/holidays"
)

// run executes one command line. Not parallel: the subcommand flags are
// package state.
func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestOffset(t *testing.T) {
	tests := map[string]struct {
		input string
		args  []string
		want  string
	}{
		"fixed interval": {
			input: "date\n2024-01-05\n2024-01-06\n",
			args:  []string{"offset", "--by", "1bd", "--by-column", "", "--roll", "forward"},
			want:  "date,offset\n2024-01-05,2024-01-08\n2024-01-06,2024-01-09\n",
		},
		"integer column": {
			input: "date,n\n2024-01-05,1\n2024-01-05,\n2024-01-08,-1\n",
			args:  []string{"offset", "--by", "", "--by-column", "n", "--as", "next"},
			want:  "date,n,next\n2024-01-05,1,2024-01-08\n2024-01-05,,\n2024-01-08,-1,2024-01-05\n",
		},
		"month after business day": {
			input: "date\n2024-01-30\n",
			args:  []string{"offset", "--by", "1mo1bd", "--by-column", "", "--as", "offset"},
			want:  "date,offset\n2024-01-30,2024-02-29\n",
		},
		"interval column with holiday": {
			input: "date,by\n2024-01-05,2bd\n",
			args:  []string{"offset", "--by", "", "--by-column", "by", "--as", "offset", "--holiday", "2024-01-08"},
			want:  "date,by,offset\n2024-01-05,2bd,2024-01-10\n",
		},
	}
	for name, tt := range tests {
		out, err := run(t, tt.input, tt.args...)
		require.NoError(t, err, name)
		assert.Equal(t, tt.want, out, name)
	}
}

func TestOffset_Errors(t *testing.T) {
	_, err := run(t, "date\n2024-01-06\n", "offset", "--by", "1bd", "--by-column", "", "--as", "offset")
	var calErr *calendar.CalendarError
	require.True(t, errors.As(err, &calErr), "got %v", err)
	assert.Equal(t, "2024-01-06", calendar.FormatOrdinal(calErr.Date))

	_, err = run(t, "date\n2024-01-05\n", "offset", "--by", "", "--by-column", "")
	assert.EqualError(t, err, "exactly one of --by and --by-column is required")

	_, err = run(t, "date\n2024-01-05\n", "offset", "--by", "1bd", "--roll", "sideways")
	var cfgErr *calendar.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "roll", cfgErr.Param)
}

func TestCount(t *testing.T) {
	out, err := run(t, "start,end\n2024-01-08,2024-01-15\n2024-01-15,2024-01-08\n",
		"count", "--holiday", "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "start,end,workdays\n2024-01-08,2024-01-15,4\n2024-01-15,2024-01-08,-4\n", out)
}

func TestIsWorkday(t *testing.T) {
	out, err := run(t, "date\n2024-01-05\n2024-01-06\n2024-01-07\n", "isworkday", "--weekend", "Fri,Sat")
	require.NoError(t, err)
	assert.Equal(t, "date,is_workday\n2024-01-05,false\n2024-01-06,false\n2024-01-07,true\n", out)
}

func TestRange(t *testing.T) {
	out, err := run(t, "", "range", "--start", "2023-01-01", "--end", "2023-01-10", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["date"],"rows":[
		["2023-01-02"],["2023-01-03"],["2023-01-04"],["2023-01-05"],["2023-01-06"],["2023-01-09"],["2023-01-10"]]}`, out)

	_, err = run(t, "", "range", "--start", "2023-01-01", "--end", "2023-01-10", "--closed", "open")
	assert.Error(t, err)
}

func TestHolidays(t *testing.T) {
	out, err := run(t, "", "holidays", "--list")
	require.NoError(t, err)
	assert.Equal(t, "gb\nus\nus-market\n", out)

	out, err = run(t, "", "holidays", "--list=false", "--calendar", "us-market", "--from", "2024", "--to", "2024")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "date,name", lines[0])
	assert.Len(t, lines, 11)
	assert.Contains(t, out, "\n2024-07-04,")
	assert.Contains(t, out, "\n2024-03-29,")
}

func TestHolidays_Market(t *testing.T) {
	// --calendar keeps the value of earlier command lines
	require.NoError(t, holidayscmd.Cmd.Flags().Lookup("calendar").Value.(pflag.SliceValue).Replace(nil))

	market := filepath.Join("..", "holidays", "testdata", "market.json")
	out, err := run(t, "", "holidays", "--market", market, "--holiday", "2024-11-29")
	require.NoError(t, err)
	assert.Equal(t, "date,name,session,open,close\n"+
		"2024-01-01,,closed,,\n"+
		"2024-01-15,,closed,,\n"+
		"2024-03-29,,closed,,\n"+
		"2024-07-03,,early_close,2024-07-03T09:30:00-04:00,2024-07-03T13:00:00-04:00\n"+
		"2024-07-04,,closed,,\n"+
		"2024-11-29,,closed,,\n"+
		"2024-12-24,,early_close,2024-12-24T09:30:00-05:00,2024-12-24T13:00:00-05:00\n"+
		"2024-12-25,,closed,,\n", out)

	// the csv reads back as the same holidays
	dir := t.TempDir()
	saved := filepath.Join(dir, "holidays.csv")
	require.NoError(t, os.WriteFile(saved, []byte(out), 0o600))
	out, err = run(t, "date\n2024-07-02\n2024-12-23\n",
		"offset", "--by", "2bd", "--by-column", "", "--as", "offset", "--holiday-file", saved)
	require.NoError(t, err)
	assert.Equal(t, "date,offset\n2024-07-02,2024-07-05\n2024-12-23,2024-12-26\n", out)

	out, err = run(t, "", "holidays", "--market", market, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `["2024-07-03",null,"early_close","2024-07-03T09:30:00-04:00","2024-07-03T13:00:00-04:00"]`)
	assert.Contains(t, out, `["2024-12-25",null,"closed",null,null]`)
}

func TestConfigFileAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "bizday.yaml")
	require.NoError(t, os.WriteFile(config, []byte("roll: backward\nholidays: ['2024-01-05']\n"), 0o600))
	output := filepath.Join(dir, "out.csv")

	_, err := run(t, "date\n2024-01-06\n",
		"offset", "--by", "0bd", "--by-column", "", "--as", "offset", "--config", config, "--output", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "date,offset\n2024-01-06,2024-01-04\n", string(data))
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizday.prom")
	_, err := run(t, "date\n2024-01-05\n", "isworkday", "--metrics-file", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bizday_udf_evaluations_total{function="is_workday"}`)
}
