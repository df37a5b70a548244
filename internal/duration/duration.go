package duration

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"lukechampine.com/uint128"
)

var (
	ErrOverflow = errors.New("duration does not fit into 64 bit nanoseconds")
	ErrTooLarge = errors.New("duration exceeds 128 bit nanoseconds")
)

var bigNanosPerSecond = big.NewInt(int64(time.Second))

// Duration is a signed amount of nanoseconds with a 128 bit magnitude.
// Unlike time.Duration it can represent spans far beyond ±292 years.
// The zero value is a zero duration.
type Duration struct {
	negative  bool
	magnitude uint128.Uint128
}

func FromNanoseconds(ns int64) Duration {
	if ns >= 0 {
		return Duration{magnitude: uint128.From64(uint64(ns))}
	}
	// -MinInt64 overflows int64 but not uint64
	return Duration{negative: true, magnitude: uint128.From64(uint64(-(ns + 1)) + 1)}
}

func FromTimeDuration(d time.Duration) Duration {
	return FromNanoseconds(int64(d))
}

func FromMagnitude(negative bool, magnitude uint128.Uint128) Duration {
	if magnitude.IsZero() {
		return Duration{}
	}
	return Duration{negative: negative, magnitude: magnitude}
}

// FromBig returns an error in case that the absolute value of ns needs more than 128 bits.
func FromBig(ns *big.Int) (Duration, error) {
	if ns == nil {
		return Duration{}, nil
	}
	abs := new(big.Int).Abs(ns)
	if abs.BitLen() > 128 {
		return Duration{}, fmt.Errorf("%w: %s ns", ErrTooLarge, ns.String())
	}
	return FromMagnitude(ns.Sign() < 0, uint128.FromBig(abs)), nil
}

// Between returns end - start.
// The result does not saturate the way time.Time.Sub does.
func Between(start, end time.Time) Duration {
	secs := new(big.Int).Sub(big.NewInt(end.Unix()), big.NewInt(start.Unix()))
	ns := secs.Mul(secs, bigNanosPerSecond)
	ns.Add(ns, big.NewInt(int64(end.Nanosecond()-start.Nanosecond())))

	// the difference of two Unix second counts times 1e9 stays well below 2^128
	d, err := FromBig(ns)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Duration) IsZero() bool {
	return d.magnitude.IsZero()
}

// Signum returns -1, 0 or 1.
func (d Duration) Signum() int {
	switch {
	case d.magnitude.IsZero():
		return 0
	case d.negative:
		return -1
	default:
		return 1
	}
}

func (d Duration) Neg() Duration {
	return FromMagnitude(!d.negative, d.magnitude)
}

// Magnitude is the exact absolute amount of nanoseconds.
func (d Duration) Magnitude() uint128.Uint128 {
	return d.magnitude
}

// TruncatedNanoseconds returns ErrOverflow in case that the signed nanosecond count
// does not fit into an int64.
func (d Duration) TruncatedNanoseconds() (int64, error) {
	if d.magnitude.Hi != 0 {
		return 0, ErrOverflow
	}
	lo := d.magnitude.Lo
	switch {
	case lo <= math.MaxInt64 && d.negative:
		return -int64(lo), nil
	case lo <= math.MaxInt64:
		return int64(lo), nil
	case d.negative && lo == 1<<63:
		return math.MinInt64, nil
	default:
		return 0, ErrOverflow
	}
}

// Nanoseconds is the exact signed amount of nanoseconds.
func (d Duration) Nanoseconds() *big.Int {
	ns := d.magnitude.Big()
	if d.negative {
		ns.Neg(ns)
	}
	return ns
}

func (d Duration) String() string {
	return d.Nanoseconds().String() + "ns"
}
