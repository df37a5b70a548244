package config

import (
	"testing"
	"time"

	"github.com/jxs13/timespan/internal/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimestamps(t *testing.T) {
	c := New()
	c.Start = "2019-05-10T21:59:12"
	c.End = "2023-01-03 14:32:18"

	require.NoError(t, c.Validate())
	assert.True(t, time.Date(2019, 5, 10, 21, 59, 12, 0, time.UTC).Equal(c.StartTime))
	assert.Equal(t, duration.FromTimeDuration(115_230_786*time.Second), c.Duration)
	assert.False(t, c.HistoryEnabled())
}

func TestValidateDefaultEnd(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 1, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return now }
	c.Start = "2020-01-01"

	require.NoError(t, c.Validate())
	assert.True(t, now.Equal(c.EndTime))
	assert.Equal(t, duration.FromTimeDuration(time.Second), c.Duration)
}

func TestValidateNanoseconds(t *testing.T) {
	c := New()
	c.Nanoseconds = "-1500"
	require.NoError(t, c.Validate())
	assert.Equal(t, duration.FromNanoseconds(-1500), c.Duration)
	assert.True(t, c.StartTime.IsZero())

	c = New()
	c.Nanoseconds = "1"
	c.Start = "2020-01-01"
	assert.Error(t, c.Validate())

	c = New()
	c.Nanoseconds = "1"
	c.End = "2020-01-01"
	assert.Error(t, c.Validate())
}

func TestValidateDuration(t *testing.T) {
	c := New()
	c.DurationString = "-1h30m"
	require.NoError(t, c.Validate())
	assert.Equal(t, duration.FromTimeDuration(-90*time.Minute), c.Duration)
	assert.True(t, c.StartTime.IsZero())

	c = New()
	c.DurationString = "3 years"
	assert.Error(t, c.Validate())

	c = New()
	c.DurationString = "1h"
	c.End = "2020-01-01"
	assert.Error(t, c.Validate())
}

func TestValidateExclusiveInputs(t *testing.T) {
	inputs := []func(c *Config){
		func(c *Config) { c.Start = "2020-01-01" },
		func(c *Config) { c.Nanoseconds = "1" },
		func(c *Config) { c.DurationString = "1h" },
	}

	for i := range inputs {
		for j := i + 1; j < len(inputs); j++ {
			c := New()
			inputs[i](c)
			inputs[j](c)
			assert.Error(t, c.Validate(), "inputs %d and %d", i, j)
		}
	}

	c := New()
	for _, set := range inputs {
		set(c)
	}
	assert.Error(t, c.Validate())
}

func TestValidateErrors(t *testing.T) {
	assert.Error(t, New().Validate())

	c := New()
	c.Start = "yesterday"
	assert.Error(t, c.Validate())

	c = New()
	c.Start = "2020-01-01"
	c.Location = "Nowhere/Atlantis"
	assert.Error(t, c.Validate())
}

func TestHistoryConfig(t *testing.T) {
	c := NewHistory()
	assert.Error(t, c.Validate())

	c.DSN = "history.db"
	assert.NoError(t, c.Validate())

	c.Limit = -1
	assert.Error(t, c.Validate())
}
