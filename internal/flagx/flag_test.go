package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value kept",
			args:    []string{"-d", "postgres://x", "-q", "other"},
			allowed: []string{"-d"},
			want:    []string{"-d", "postgres://x"},
		},
		{
			name:    "equals form kept",
			args:    []string{"--config=conf.json", "--verbose"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "disallowed equals dropped",
			args:    []string{"--other=1", "-d", "dsn"},
			allowed: []string{"-d"},
			want:    []string{"-d", "dsn"},
		},
		{
			name:    "value resembling flag not swallowed",
			args:    []string{"-d", "-t", "5"},
			allowed: []string{"-d", "-t"},
			want:    []string{"-d", "-t", "5"},
		},
		{
			name:    "positional args dropped",
			args:    []string{"add", "-d", "dsn"},
			allowed: []string{"-d"},
			want:    []string{"-d", "dsn"},
		},
		{
			name:    "empty input",
			args:    nil,
			allowed: []string{"-d"},
			want:    []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterArgs(tc.args, tc.allowed))
		})
	}
}
