package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		want    Level
		wantErr bool
	}{
		"debug":         {name: "debug", want: DEBUG},
		"upper case":    {name: "ERROR", want: ERROR},
		"warn alias":    {name: "warn", want: WARNING},
		"empty is info": {name: "", want: INFO},
		"unknown":       {name: "verbose", wantErr: true},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, name string) Level {
	t.Helper()
	l, err := ParseLevel(name)
	require.NoError(t, err)
	return l
}
