package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaySession_IsOpen(t *testing.T) {
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(90 * time.Minute)

	open := &PlaySession{StartTime: start}
	assert.True(t, open.IsOpen())

	closed := &PlaySession{StartTime: start, EndTime: &end}
	assert.False(t, closed.IsOpen())
}

func TestPlaySession_Duration(t *testing.T) {
	start := time.Now().UTC().Add(-2 * time.Hour)
	end := start.Add(90 * time.Minute)

	open := &PlaySession{StartTime: start}
	assert.Equal(t, time.Duration(0), open.Duration())

	closed := &PlaySession{StartTime: start, EndTime: &end}
	assert.Equal(t, 90*time.Minute, closed.Duration())
}
