package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/jxs13/timespan/internal/decompose"
	"github.com/jxs13/timespan/internal/duration"
)

var (
	day   = time.Duration(decompose.NanosecondsPerDay)
	week  = time.Duration(decompose.NanosecondsPerWeek)
	month = time.Duration(decompose.NanosecondsPerMonth)
	year  = time.Duration(decompose.NanosecondsPerYear)

	// average month and year lengths, same as the decomposition
	relTimeMagnitudes = []humanize.RelTimeMagnitude{
		{D: time.Second, Format: "now", DivBy: time.Second},
		{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
		{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
		{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
		{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
		{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
		{D: day, Format: "%d hours %s", DivBy: time.Hour},
		{D: 2 * day, Format: "1 day %s", DivBy: 1},
		{D: week, Format: "%d days %s", DivBy: day},
		{D: 2 * week, Format: "1 week %s", DivBy: 1},
		{D: month, Format: "%d weeks %s", DivBy: week},
		{D: 2 * month, Format: "1 month %s", DivBy: 1},
		{D: year, Format: "%d months %s", DivBy: month},
		{D: 2 * year, Format: "1 year %s", DivBy: 1},
		{D: 100 * year, Format: "%d years %s", DivBy: year},
		{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
	}

	abbreviations = []string{"ms", "us", "ns"}
)

const (
	// index of the day unit in decompose.Units
	dayIndex = 3

	// float64 values below 2^53 convert to int without loss
	maxExactInt = 1 << 53
)

// Relative describes how long before now then was, e.g. "3 years ago" or "2 days from now".
func Relative(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "ago", "from now", relTimeMagnitudes)
}

// Decomposition lists every unit with a leading sign, e.g.
// "+3 years, 7 months, 3 weeks, 3 days, 21 hours, 41 minutes, 48 seconds, 0 ms, 0 us, 0 ns"
func Decomposition(d decompose.Decomposition) string {
	return list(d, 0)
}

// Days is Decomposition without years, months and weeks, meant for decompose.DecomposeDays, e.g.
// "+1333 days, 16 hours, 33 minutes, 6 seconds, 0 ms, 0 us, 0 ns"
func Days(d decompose.Decomposition) string {
	return list(d, dayIndex)
}

func list(d decompose.Decomposition, from int) string {
	var (
		values = d.Values()
		parts  = make([]string, 0, len(values)-from)
		sign   = "+"
	)
	if d.Negative() {
		sign = "-"
	}

	// sub-second units are abbreviated
	full := len(values) - len(abbreviations)
	for i := from; i < len(values); i++ {
		unit := abbreviations[max(0, i-full)]
		if i < full {
			unit = decompose.Units[i].Plural
		}
		parts = append(parts, fmt.Sprintf("%s %s", number(values[i]), unit))
	}

	return sign + strings.Join(parts, ", ")
}

// Precise spells out every non-zero unit without a sign, e.g.
// "3 years, 7 months, 3 weeks, 3 days, 21 hours, 41 minutes and 48 seconds"
func Precise(d decompose.Decomposition) string {
	if d.IsZero() {
		return "now"
	}

	values := d.Values()
	words := make([]string, 0, len(values))
	for i, v := range values {
		if v == 0 {
			continue
		}
		singular, plural := "nanosecond", "nanoseconds"
		if i < len(decompose.Units) {
			singular, plural = decompose.Units[i].Singular, decompose.Units[i].Plural
		}
		words = append(words, quantity(v, singular, plural))
	}
	return english.WordSeries(words, "and")
}

// Largest only shows the largest non-zero unit, e.g. "3 years" or "1 hour".
func Largest(d decompose.Decomposition) string {
	if d.IsZero() {
		return "now"
	}

	values := d.Values()
	for i, u := range decompose.Units {
		if values[i] > 0 {
			return fmt.Sprintf("%s %s", number(values[i]), u.Name(values[i]))
		}
	}

	ns := values[len(decompose.Units)]
	unit := "nanoseconds"
	if ns == 1 {
		unit = "nanosecond"
	}
	return fmt.Sprintf("%s %s", number(ns), unit)
}

// Nanoseconds groups the exact nanosecond count in thousands, e.g. "115,230,786,000,000,000 ns".
func Nanoseconds(d duration.Duration) string {
	return humanize.BigComma(d.Nanoseconds()) + " ns"
}

// Reconstruction renders the exact amount of nanoseconds the decomposition adds up to.
func Reconstruction(d decompose.Decomposition) string {
	sum := decompose.Reconstruct(d)
	if d.Negative() {
		sum = new(big.Int).Neg(sum)
	}
	return humanize.BigComma(sum) + " ns"
}

func quantity(v float64, singular, plural string) string {
	if v < maxExactInt {
		return english.Plural(int(v), singular, plural)
	}
	return fmt.Sprintf("%s %s", number(v), plural)
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
