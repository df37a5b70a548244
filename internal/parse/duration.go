package parse

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jxs13/timespan/internal/duration"
)

// Duration parses the Go duration format, e.g. "24h30m3s", "-1h" or "15m".
func Duration(input string) (duration.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil {
		return duration.Duration{}, fmt.Errorf("invalid duration value %q: %w (allowed format: 24h30m3s, 1h, -15m, 10m30s, 20s, 1s)", input, err)
	}
	return duration.FromTimeDuration(d), nil
}

// Nanoseconds parses a signed decimal amount of nanoseconds, e.g. "-50491123200000000000" or "1_000_000".
// The absolute value must fit into 128 bits.
func Nanoseconds(input string) (duration.Duration, error) {
	s := strings.ReplaceAll(strings.TrimSpace(input), "_", "")
	if s == "" {
		return duration.Duration{}, fmt.Errorf("empty nanoseconds string")
	}

	ns, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return duration.Duration{}, fmt.Errorf("invalid nanoseconds value %q: expected a signed decimal integer, e.g. 1500, -86400000000000", input)
	}

	d, err := duration.FromBig(ns)
	if err != nil {
		return duration.Duration{}, fmt.Errorf("invalid nanoseconds value %q: %w", input, err)
	}
	return d, nil
}
