package parse

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeInLocation(t *testing.T) {
	berlin, err := Location("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		in       string
		loc      *time.Location
		expected time.Time
	}{
		{"2019-05-10T21:59:12Z", berlin, time.Date(2019, 5, 10, 21, 59, 12, 0, time.UTC)},
		{"2019-05-10T21:59:12.5+02:00", time.UTC, time.Date(2019, 5, 10, 19, 59, 12, 500_000_000, time.UTC)},
		{"2019-05-10T21:59:12", time.UTC, time.Date(2019, 5, 10, 21, 59, 12, 0, time.UTC)},
		{"2019-05-10 21:59:12", berlin, time.Date(2019, 5, 10, 21, 59, 12, 0, berlin)},
		{" 2023-01-03 14:32 ", time.UTC, time.Date(2023, 1, 3, 14, 32, 0, 0, time.UTC)},
		{"2023-01-03", berlin, time.Date(2023, 1, 3, 0, 0, 0, 0, berlin)},
	}

	for _, tc := range tests {
		got, err := TimeInLocation(tc.in, tc.loc)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.expected.Equal(got), "%s: expected %s, got %s", tc.in, tc.expected, got)
	}
}

func TestTimeInvalid(t *testing.T) {
	_, err := TimeInLocation("", time.UTC)
	assert.Error(t, err)

	_, err = TimeInLocation("10.05.2019", time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LayoutDateTime)
}

func TestLocation(t *testing.T) {
	loc, err := Location("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = Location("Nowhere/Atlantis")
	assert.Error(t, err)
}
