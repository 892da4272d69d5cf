package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"app/internal/model"
)

var exportHeader = []string{
	"date", "is_worked", "start_time", "end_time", "start_odometer",
	"end_odometer", "distance_km", "deliveries", "highway_fee", "notes",
}

// WriteReportsCSV writes the given reports as CSV, one row per day, in the
// order they were passed. Absent optional fields become empty cells.
func WriteReportsCSV(w io.Writer, reports []model.DailyReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range reports {
		row := []string{
			r.Date,
			strconv.FormatBool(r.IsWorked),
			strValue(r.StartTime),
			strValue(r.EndTime),
			intValue(r.StartOdometer),
			intValue(r.EndOdometer),
			intValue(r.DistanceKm),
			intValue(r.Deliveries),
			intValue(r.HighwayFee),
			strValue(r.Notes),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
