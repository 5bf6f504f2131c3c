package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", input: `"24h"`, want: 24 * time.Hour},
		{name: "minutes string", input: `"90m"`, want: 90 * time.Minute},
		{name: "nanoseconds number", input: `3600000000000`, want: time.Hour},
		{name: "bad string", input: `"yesterday"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Std())
		})
	}
}

func TestDuration_MarshalJSON_RoundTrip(t *testing.T) {
	in := Duration(8 * 24 * time.Hour)
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Duration
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
