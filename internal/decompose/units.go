package decompose

const (
	DaysPerYear  = 365.2425
	DaysPerMonth = 30.436875

	NanosecondsPerMicrosecond = 1_000.0
	NanosecondsPerMillisecond = 1_000.0 * NanosecondsPerMicrosecond
	NanosecondsPerSecond      = 1_000.0 * NanosecondsPerMillisecond
	NanosecondsPerMinute      = 60.0 * NanosecondsPerSecond
	NanosecondsPerHour        = 60.0 * NanosecondsPerMinute
	NanosecondsPerDay         = 24.0 * NanosecondsPerHour
	NanosecondsPerWeek        = 7.0 * NanosecondsPerDay
	NanosecondsPerMonth       = DaysPerMonth * NanosecondsPerDay
	NanosecondsPerYear        = DaysPerYear * NanosecondsPerDay
)

// Units is ordered from the largest to the smallest unit.
// Both arithmetic paths derive their divisors from this table.
var Units = []Unit{
	{"year", "years", NanosecondsPerYear, truncate(NanosecondsPerYear)},
	{"month", "months", NanosecondsPerMonth, truncate(NanosecondsPerMonth)},
	{"week", "weeks", NanosecondsPerWeek, truncate(NanosecondsPerWeek)},
	{"day", "days", NanosecondsPerDay, truncate(NanosecondsPerDay)},
	{"hour", "hours", NanosecondsPerHour, truncate(NanosecondsPerHour)},
	{"minute", "minutes", NanosecondsPerMinute, truncate(NanosecondsPerMinute)},
	{"second", "seconds", NanosecondsPerSecond, truncate(NanosecondsPerSecond)},
	{"millisecond", "milliseconds", NanosecondsPerMillisecond, truncate(NanosecondsPerMillisecond)},
	{"microsecond", "microseconds", NanosecondsPerMicrosecond, truncate(NanosecondsPerMicrosecond)},
}

type Unit struct {
	Singular string
	Plural   string

	// Nanoseconds is the average length of the unit.
	Nanoseconds float64
	// IntNanoseconds is Nanoseconds truncated to an integer.
	IntNanoseconds uint64
}

func (u Unit) Name(value float64) string {
	if value == 1 {
		return u.Singular
	}
	return u.Plural
}

func truncate(ns float64) uint64 {
	return uint64(ns)
}
