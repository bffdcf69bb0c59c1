package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "Zero duration",
			duration: 0,
			expected: "0m",
		},
		{
			name:     "Under an hour",
			duration: 45 * time.Minute,
			expected: "45m",
		},
		{
			name:     "Hours and minutes",
			duration: 3*time.Hour + 25*time.Minute,
			expected: "3h 25m",
		},
		{
			name:     "Exact hours",
			duration: 2 * time.Hour,
			expected: "2h 0m",
		},
		{
			name:     "Seconds are dropped",
			duration: 61*time.Minute + 59*time.Second,
			expected: "1h 1m",
		},
		{
			name:     "Negative clamps to zero",
			duration: -10 * time.Minute,
			expected: "0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}
