package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jxs13/timespan/internal/duration"
	"github.com/jxs13/timespan/internal/parse"
)

func New() *Config {
	return &Config{
		Location: "UTC",
		now:      time.Now,
	}
}

type Config struct {
	Start       string `koanf:"start" description:"start timestamp, e.g. 2019-05-10T21:59:12, 2019-05-10 21:59, 2019-05-10T21:59:12+02:00"`
	End         string `koanf:"end" description:"end timestamp, same formats as start (default: now)"`
	Location    string `koanf:"location" description:"time zone location for timestamps without offset, e.g. UTC, Europe/Berlin"`
	Nanoseconds string `koanf:"nanoseconds" description:"signed amount of nanoseconds to decompose instead of start and end, e.g. -50491123200000000000"`

	DurationString string `koanf:"duration" description:"duration to decompose instead of start and end, e.g. 1h30m, -24h, 90s"`
	DSN         string `koanf:"dsn" description:"sqlite database file path (DSN) of the decomposition history, empty disables the history"`
	Verify      bool   `koanf:"verify" description:"print the amount of nanoseconds the decomposition adds up to"`

	// set in Validate
	StartTime time.Time         `koanf:"-"`
	EndTime   time.Time         `koanf:"-"`
	Duration  duration.Duration `koanf:"-"`

	now func() time.Time
}

func (c *Config) Validate() error {
	inputs := 0
	for _, s := range []string{c.Start, c.Nanoseconds, c.DurationString} {
		if s != "" {
			inputs++
		}
	}
	switch {
	case inputs == 0:
		return errors.New("one of start, nanoseconds or duration is required")
	case inputs > 1:
		return errors.New("start, nanoseconds and duration are mutually exclusive")
	case c.Start == "" && c.End != "":
		return errors.New("end can only be used together with start")
	}

	switch {
	case c.Nanoseconds != "":
		d, err := parse.Nanoseconds(c.Nanoseconds)
		if err != nil {
			return err
		}
		c.Duration = d
		return nil
	case c.DurationString != "":
		d, err := parse.Duration(c.DurationString)
		if err != nil {
			return err
		}
		c.Duration = d
		return nil
	}

	loc, err := parse.Location(c.Location)
	if err != nil {
		return err
	}

	c.StartTime, err = parse.TimeInLocation(c.Start, loc)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}

	if c.End == "" {
		now := time.Now
		if c.now != nil {
			now = c.now
		}
		c.EndTime = now().In(loc)
	} else {
		c.EndTime, err = parse.TimeInLocation(c.End, loc)
		if err != nil {
			return fmt.Errorf("invalid end: %w", err)
		}
	}

	c.Duration = duration.Between(c.StartTime, c.EndTime)
	return nil
}

// HistoryEnabled reports whether decompositions are journaled.
func (c *Config) HistoryEnabled() bool {
	return c.DSN != ""
}

// HistoryConfig is used by the history sub command, which only needs the database.
type HistoryConfig struct {
	DSN   string `koanf:"dsn" description:"sqlite database file path (DSN) of the decomposition history"`
	Limit int    `koanf:"limit" description:"maximum number of entries to show, 0 shows all"`
	Clear bool   `koanf:"clear" description:"delete all entries"`
}

func NewHistory() *HistoryConfig {
	return &HistoryConfig{
		Limit: 20,
	}
}

func (c *HistoryConfig) Validate() error {
	if c.DSN == "" {
		return errors.New("database DSN is missing")
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be greater or equal to 0: %d", c.Limit)
	}
	return nil
}
