package report

import (
	"strconv"
	"strings"
)

// OdometerMax is the largest reading a six-digit odometer can show before
// wrapping back to zero.
const OdometerMax = 999999

// Distance returns the kilometers driven between two odometer readings.
// A missing reading yields 0. When the end reading is below the start
// reading the odometer is assumed to have wrapped past OdometerMax, and the
// distance includes the zero crossing.
func Distance(startOdometer, endOdometer *int) int {
	if startOdometer == nil || endOdometer == nil {
		return 0
	}
	start, end := *startOdometer, *endOdometer
	if end >= start {
		return end - start
	}
	return OdometerMax - start + end + 1
}

// WorkingHours returns the fractional hours between two HH:MM times of day.
// A missing or unparsable time yields 0. An end time earlier than the start
// time is treated as crossing midnight (e.g. 23:00 to 01:00 is 2 hours).
func WorkingHours(startTime, endTime *string) float64 {
	if startTime == nil || endTime == nil {
		return 0
	}
	startMinutes, ok := minutesSinceMidnight(*startTime)
	if !ok {
		return 0
	}
	endMinutes, ok := minutesSinceMidnight(*endTime)
	if !ok {
		return 0
	}
	if endMinutes < startMinutes {
		endMinutes += 24 * 60
	}
	return float64(endMinutes-startMinutes) / 60
}

func minutesSinceMidnight(hhmm string) (int, bool) {
	hh, mm, found := strings.Cut(hhmm, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}
