package duration

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestFromNanoseconds(t *testing.T) {
	for _, ns := range []int64{0, 1, -1, 42, math.MaxInt64, math.MinInt64, math.MinInt64 + 1} {
		d := FromNanoseconds(ns)
		got, err := d.TruncatedNanoseconds()
		require.NoError(t, err, ns)
		assert.Equal(t, ns, got)
		assert.Equal(t, big.NewInt(ns).String(), d.Nanoseconds().String())
	}

	assert.Equal(t, uint128.From64(1<<63), FromNanoseconds(math.MinInt64).Magnitude())
}

func TestSignum(t *testing.T) {
	assert.Equal(t, 0, Duration{}.Signum())
	assert.Equal(t, 1, FromNanoseconds(5).Signum())
	assert.Equal(t, -1, FromNanoseconds(-5).Signum())

	// there is no negative zero
	zero := FromMagnitude(true, uint128.Zero)
	assert.Equal(t, 0, zero.Signum())
	assert.Equal(t, Duration{}, zero.Neg())
	assert.True(t, zero.IsZero())
}

func TestTruncatedNanosecondsOverflow(t *testing.T) {
	d := FromMagnitude(false, uint128.From64(1<<63))
	_, err := d.TruncatedNanoseconds()
	assert.ErrorIs(t, err, ErrOverflow)

	ns, err := d.Neg().TruncatedNanoseconds()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), ns)

	_, err = FromMagnitude(true, uint128.New(0, 1)).TruncatedNanoseconds()
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFromBig(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	limit.Sub(limit, big.NewInt(1))

	d, err := FromBig(new(big.Int).Neg(limit))
	require.NoError(t, err)
	assert.Equal(t, -1, d.Signum())
	assert.Equal(t, uint128.Max, d.Magnitude())

	_, err = FromBig(limit.Add(limit, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrTooLarge)

	d, err = FromBig(nil)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestBetween(t *testing.T) {
	start := time.Date(2019, 5, 10, 21, 59, 12, 0, time.UTC)
	end := time.Date(2023, 1, 3, 14, 32, 18, 0, time.UTC)

	d := Between(start, end)
	assert.Equal(t, FromTimeDuration(end.Sub(start)), d)
	assert.Equal(t, d.Neg(), Between(end, start))
	assert.Equal(t, "115230786000000000ns", d.String())

	// time.Time.Sub saturates here
	start = time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(2600, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Duration(math.MaxInt64), end.Sub(start))

	d = Between(start, end)
	expected, ok := new(big.Int).SetString("50491123200000000000", 10)
	require.True(t, ok)
	assert.Zero(t, expected.Cmp(d.Nanoseconds()))
	assert.Equal(t, 1, d.Signum())

	// nanosecond borrows across the second boundary
	start = time.Date(2020, 1, 1, 0, 0, 0, 999_999_999, time.UTC)
	end = time.Date(2020, 1, 1, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, FromNanoseconds(1), Between(start, end))
}

func TestString(t *testing.T) {
	assert.Equal(t, "-10ns", FromNanoseconds(-10).String())
	assert.Equal(t, "0ns", Duration{}.String())
}
