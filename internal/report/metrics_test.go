package report

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestDistance(t *testing.T) {
	t.Run("normal reading", func(t *testing.T) {
		require.Equal(t, 120, Distance(intPtr(1000), intPtr(1120)))
	})

	t.Run("zero travel", func(t *testing.T) {
		require.Equal(t, 0, Distance(intPtr(500), intPtr(500)))
	})

	t.Run("rollover past the odometer maximum", func(t *testing.T) {
		// 999990 -> 999999 is 9 km, the wrap to 0 is 1 km, 0 -> 5 is 5 km.
		require.Equal(t, 16, Distance(intPtr(999990), intPtr(5)))
	})

	t.Run("missing start yields zero", func(t *testing.T) {
		require.Equal(t, 0, Distance(nil, intPtr(100)))
	})

	t.Run("missing end yields zero", func(t *testing.T) {
		require.Equal(t, 0, Distance(intPtr(100), nil))
	})
}

func TestDistanceProperties(t *testing.T) {
	t.Run("no rollover", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			start := rapid.IntRange(0, OdometerMax).Draw(t, "start")
			end := rapid.IntRange(start, OdometerMax).Draw(t, "end")
			require.Equal(t, end-start, Distance(&start, &end))
		})
	})

	t.Run("rollover", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			start := rapid.IntRange(1, OdometerMax).Draw(t, "start")
			end := rapid.IntRange(0, start-1).Draw(t, "end")
			require.Equal(t, OdometerMax-start+end+1, Distance(&start, &end))
		})
	})

	t.Run("never negative", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			start := rapid.IntRange(0, OdometerMax).Draw(t, "start")
			end := rapid.IntRange(0, OdometerMax).Draw(t, "end")
			require.GreaterOrEqual(t, Distance(&start, &end), 0)
		})
	})
}

func TestWorkingHours(t *testing.T) {
	t.Run("same-day shift", func(t *testing.T) {
		require.Equal(t, 8.5, WorkingHours(strPtr("09:00"), strPtr("17:30")))
	})

	t.Run("midnight crossing", func(t *testing.T) {
		// The duration calculator accepts what the form validator rejects:
		// an end time before the start time is read as the next day.
		require.Equal(t, 2.0, WorkingHours(strPtr("23:00"), strPtr("01:00")))
	})

	t.Run("fractional minutes", func(t *testing.T) {
		require.InDelta(t, 0.75, WorkingHours(strPtr("10:00"), strPtr("10:45")), 1e-9)
	})

	t.Run("missing start yields zero", func(t *testing.T) {
		require.Equal(t, 0.0, WorkingHours(nil, strPtr("17:00")))
	})

	t.Run("missing end yields zero", func(t *testing.T) {
		require.Equal(t, 0.0, WorkingHours(strPtr("09:00"), nil))
	})

	t.Run("unparsable input yields zero", func(t *testing.T) {
		require.Equal(t, 0.0, WorkingHours(strPtr("morning"), strPtr("17:00")))
	})
}

func TestWorkingHoursProperties(t *testing.T) {
	t.Run("always within one day", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			start := drawTime(t, "start")
			end := drawTime(t, "end")
			hours := WorkingHours(&start, &end)
			require.GreaterOrEqual(t, hours, 0.0)
			require.Less(t, hours, 24.0)
		})
	})
}

func drawTime(t *rapid.T, label string) string {
	hour := rapid.IntRange(0, 23).Draw(t, label+"_hour")
	minute := rapid.IntRange(0, 59).Draw(t, label+"_minute")
	return formatTime(hour, minute)
}

func formatTime(hour, minute int) string {
	digits := func(v int) string {
		return string([]byte{byte('0' + v/10), byte('0' + v%10)})
	}
	return digits(hour) + ":" + digits(minute)
}
