package utils

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpacahq/bizday/calendar"
)

func TestIntervalFromString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    int32
		wantErr bool
	}{
		"positive":       {in: "3bd", want: 3},
		"negative":       {in: "-12bd", want: -12},
		"zero":           {in: "0bd", want: 0},
		"padded":         {in: " 5bd ", want: 5},
		"calendar days":  {in: "3d", wantErr: true},
		"missing count":  {in: "bd", wantErr: true},
		"plus sign":      {in: "+3bd", wantErr: true},
		"upper case":     {in: "3BD", wantErr: true},
		"out of range":   {in: "9999999999bd", wantErr: true},
		"trailing space": {in: "3bd x", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			iv, err := IntervalFromString(tt.in)
			if tt.wantErr {
				var cfgErr *calendar.ConfigurationError
				require.True(t, errors.As(err, &cfgErr))
				assert.Equal(t, "interval", cfgErr.Param)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, iv.Days)
		})
	}
}

func TestIntervalFromString_Compound(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in      string
		want    Interval
		wantErr bool
	}{
		"hours":             {in: "2bd3h", want: Interval{String: "2bd3h", Days: 2, Duration: 3 * time.Hour}},
		"month first":       {in: "1mo1bd", want: Interval{String: "1mo1bd", Days: 1, Months: 1}},
		"negated":           {in: "-1y2q1bd", want: Interval{String: "-1y2q1bd", Days: -1, Months: -18}},
		"weeks and days":    {in: "1w2d0bd", want: Interval{String: "1w2d0bd", CalendarDays: 9}},
		"minutes vs months": {in: "1bd1m1mo", want: Interval{String: "1bd1m1mo", Days: 1, Months: 1, Duration: time.Minute}},
		"sub-second": {
			in:   "1bd1ms2us3ns1s",
			want: Interval{String: "1bd1ms2us3ns1s", Days: 1, Duration: time.Second + time.Millisecond + 2*time.Microsecond + 3},
		},
		"no business days":    {in: "3h", wantErr: true},
		"repeated bd":         {in: "1bd2bd", wantErr: true},
		"unknown unit":        {in: "1x1bd", wantErr: true},
		"inner minus":         {in: "1bd-3h", wantErr: true},
		"duration overflow":   {in: "1bd9999999999h", wantErr: true},
		"huge calendar count": {in: "1bd99999999999999999999d", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			iv, err := IntervalFromString(tt.in)
			if tt.wantErr {
				var cfgErr *calendar.ConfigurationError
				require.True(t, errors.As(err, &cfgErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *iv)
		})
	}

	iv, err := IntervalFromString("-4bd")
	require.NoError(t, err)
	assert.True(t, iv.IsBusinessDays())
}
