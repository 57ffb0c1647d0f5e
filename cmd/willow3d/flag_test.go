package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevelFlag(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var f logLevelFlag
			if assert.NoError(t, f.Set(tc.in)) {
				assert.Equal(t, tc.want, f.value)
				assert.Equal(t, tc.want.String(), f.String())
			}
		})
	}
	var f logLevelFlag
	assert.Error(t, f.Set("verbose"))
}
