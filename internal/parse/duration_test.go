package parse

import (
	"testing"
	"time"

	"github.com/jxs13/timespan/internal/duration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNanoseconds(t *testing.T) {
	d, err := Nanoseconds("-50_491_123_200_000_000_000")
	require.NoError(t, err)
	assert.Equal(t, -1, d.Signum())
	assert.Equal(t, "-50491123200000000000ns", d.String())

	d, err = Nanoseconds(" 1500 ")
	require.NoError(t, err)
	assert.Equal(t, duration.FromNanoseconds(1500), d)

	_, err = Nanoseconds("")
	assert.Error(t, err)

	_, err = Nanoseconds("12h")
	assert.Error(t, err)

	// 2^128
	_, err = Nanoseconds("340282366920938463463374607431768211456")
	assert.ErrorIs(t, err, duration.ErrTooLarge)
}

func TestDuration(t *testing.T) {
	d, err := Duration("-1h30m")
	require.NoError(t, err)
	assert.Equal(t, duration.FromTimeDuration(-90*time.Minute), d)

	_, err = Duration("3 years")
	assert.Error(t, err)
}
