package decompose

import (
	"math"
	"math/big"

	"github.com/jxs13/timespan/internal/duration"
	"lukechampine.com/uint128"
)

// Path names the arithmetic used to decompose a duration.
type Path string

const (
	// PathFloat is used for durations whose nanoseconds fit into an int64.
	PathFloat Path = "float"
	// PathExact uses 128 bit integer division for everything else.
	PathExact Path = "exact"
)

// index of the day unit in Units
const dayIndex = 3

// Decomposition holds the magnitude of a duration broken down into units.
// The sign is carried separately: 0 for zero and positive durations, 1 for negative ones.
type Decomposition struct {
	Sign         int8
	Years        float64
	Months       float64
	Weeks        float64
	Days         float64
	Hours        float64
	Minutes      float64
	Seconds      float64
	Milliseconds float64
	Microseconds float64
	Nanoseconds  float64
}

// Values returns the magnitudes in the order of Units followed by the nanosecond remainder.
func (d Decomposition) Values() []float64 {
	return []float64{
		d.Years,
		d.Months,
		d.Weeks,
		d.Days,
		d.Hours,
		d.Minutes,
		d.Seconds,
		d.Milliseconds,
		d.Microseconds,
		d.Nanoseconds,
	}
}

// IsZero reports whether all magnitudes are zero.
func (d Decomposition) IsZero() bool {
	for _, v := range d.Values() {
		if v != 0 {
			return false
		}
	}
	return true
}

// Negative reports whether the decomposed duration was negative.
func (d Decomposition) Negative() bool {
	return d.Sign == 1
}

// PathOf reports which arithmetic Decompose uses for d.
func PathOf(d duration.Duration) Path {
	if _, err := d.TruncatedNanoseconds(); err != nil {
		return PathExact
	}
	return PathFloat
}

// Decompose breaks d down into years, months, weeks, days, hours, minutes, seconds,
// milliseconds, microseconds and a nanosecond remainder using average unit lengths.
// Durations that do not fit into 64 bit nanoseconds are divided with exact
// 128 bit integer arithmetic instead of floating point arithmetic.
func Decompose(d duration.Duration) Decomposition {
	return decompose(d, 0)
}

// DecomposeDays is like Decompose but stops at days, so years, months and
// weeks are always zero and Days holds the whole number of days.
func DecomposeDays(d duration.Duration) Decomposition {
	return decompose(d, dayIndex)
}

func decompose(d duration.Duration, from int) Decomposition {
	var sign int8
	if d.Signum() < 0 {
		sign = 1
	}

	var values [10]float64
	if _, err := d.TruncatedNanoseconds(); err == nil {
		// Magnitude fits into uint64 here, even for math.MinInt64.
		values = decomposeFloat(float64(d.Magnitude().Lo), from)
	} else {
		values = decomposeExact(d.Magnitude(), from)
	}

	return Decomposition{
		Sign:         sign,
		Years:        values[0],
		Months:       values[1],
		Weeks:        values[2],
		Days:         values[3],
		Hours:        values[4],
		Minutes:      values[5],
		Seconds:      values[6],
		Milliseconds: values[7],
		Microseconds: values[8],
		Nanoseconds:  values[9],
	}
}

// from skips the units before Units[from].
func decomposeFloat(nsLeft float64, from int) (values [10]float64) {
	for i := from; i < len(Units); i++ {
		values[i], nsLeft = divRemFloat(nsLeft, Units[i].Nanoseconds)
	}
	values[len(Units)] = nsLeft
	return values
}

func decomposeExact(nsLeft uint128.Uint128, from int) (values [10]float64) {
	var q uint128.Uint128
	for i := from; i < len(Units); i++ {
		q, nsLeft = divRemExact(nsLeft, Units[i].IntNanoseconds)
		values[i] = toFloat(q)
	}
	values[len(Units)] = toFloat(nsLeft)
	return values
}

func divRemFloat(n, d float64) (float64, float64) {
	return divEuclid(n, d), remEuclid(n, d)
}

// divEuclid rounds the quotient towards negative infinity for positive divisors.
func divEuclid(n, d float64) float64 {
	q := math.Trunc(n / d)
	if math.Mod(n, d) < 0 {
		if d > 0 {
			return q - 1
		}
		return q + 1
	}
	return q
}

// remEuclid is never negative.
func remEuclid(n, d float64) float64 {
	r := math.Mod(n, d)
	if r < 0 {
		return r + math.Abs(d)
	}
	return r
}

// unsigned division is already euclidean
func divRemExact(n uint128.Uint128, d uint64) (uint128.Uint128, uint128.Uint128) {
	q, r := n.QuoRem64(d)
	return q, uint128.From64(r)
}

func toFloat(u uint128.Uint128) float64 {
	if u.Hi == 0 {
		return float64(u.Lo)
	}
	f, _ := new(big.Float).SetInt(u.Big()).Float64()
	return f
}

// Reconstruct sums up the magnitudes times the integer unit lengths.
// For decompositions of the exact path the result equals the magnitude of the input duration.
func Reconstruct(d Decomposition) *big.Int {
	var (
		values = d.Values()
		sum    = new(big.Int)
		term   = new(big.Int)
	)
	for i, u := range Units {
		term.SetUint64(u.IntNanoseconds)
		term.Mul(term, floatToInt(values[i]))
		sum.Add(sum, term)
	}
	return sum.Add(sum, floatToInt(values[len(Units)]))
}

func floatToInt(f float64) *big.Int {
	i, _ := big.NewFloat(f).Int(nil)
	return i
}
