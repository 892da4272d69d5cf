package report

import (
	"strings"
	"testing"

	"app/internal/model"

	"github.com/stretchr/testify/require"
)

func validWorkedForm() *model.DailyReportForm {
	return &model.DailyReportForm{
		Date:          "2025-03-10",
		IsWorked:      true,
		StartTime:     strPtr("09:00"),
		EndTime:       strPtr("18:30"),
		StartOdometer: intPtr(12000),
		EndOdometer:   intPtr(12150),
		Deliveries:    intPtr(42),
		HighwayFee:    intPtr(1200),
		Notes:         strPtr("heavy traffic on the bypass"),
	}
}

func TestValidateAcceptsWellFormedReports(t *testing.T) {
	t.Run("worked day with all fields", func(t *testing.T) {
		require.Nil(t, Validate(validWorkedForm()))
	})

	t.Run("day off needs only a date", func(t *testing.T) {
		require.Nil(t, Validate(&model.DailyReportForm{Date: "2025-03-11", IsWorked: false}))
	})

	t.Run("single-digit hour is allowed", func(t *testing.T) {
		f := validWorkedForm()
		f.StartTime = strPtr("9:00")
		require.Nil(t, Validate(f))
	})
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.DailyReportForm)
		field   string
	}{
		{"empty date", func(f *model.DailyReportForm) { f.Date = "" }, "date"},
		{"malformed start time", func(f *model.DailyReportForm) { f.StartTime = strPtr("25:00") }, "start_time"},
		{"malformed end time", func(f *model.DailyReportForm) { f.EndTime = strPtr("18:60") }, "end_time"},
		{"negative start odometer", func(f *model.DailyReportForm) { f.StartOdometer = intPtr(-1) }, "start_odometer"},
		{"start odometer over maximum", func(f *model.DailyReportForm) { f.StartOdometer = intPtr(1000000) }, "start_odometer"},
		{"end odometer over maximum", func(f *model.DailyReportForm) { f.EndOdometer = intPtr(1000000) }, "end_odometer"},
		{"negative deliveries", func(f *model.DailyReportForm) { f.Deliveries = intPtr(-1) }, "deliveries"},
		{"deliveries over maximum", func(f *model.DailyReportForm) { f.Deliveries = intPtr(1000) }, "deliveries"},
		{"negative highway fee", func(f *model.DailyReportForm) { f.HighwayFee = intPtr(-100) }, "highway_fee"},
		{"notes too long", func(f *model.DailyReportForm) { f.Notes = strPtr(strings.Repeat("x", 501)) }, "notes"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := validWorkedForm()
			tc.mutate(f)
			errs := Validate(f)
			require.NotNil(t, errs)
			require.True(t, errs.Has(tc.field), "expected an error on %q, got %v", tc.field, errs)
		})
	}
}

func TestValidateNotesBoundary(t *testing.T) {
	f := validWorkedForm()
	f.Notes = strPtr(strings.Repeat("x", 500))
	require.Nil(t, Validate(f))
}

func TestValidateWorkedDayCrossFieldRules(t *testing.T) {
	t.Run("missing start time attaches to is_worked", func(t *testing.T) {
		f := validWorkedForm()
		f.StartTime = nil
		errs := Validate(f)
		require.True(t, errs.Has("is_worked"))
	})

	t.Run("missing end odometer attaches to is_worked", func(t *testing.T) {
		f := validWorkedForm()
		f.EndOdometer = nil
		errs := Validate(f)
		require.True(t, errs.Has("is_worked"))
	})

	t.Run("end time before start time attaches to end_time", func(t *testing.T) {
		f := validWorkedForm()
		f.StartTime = strPtr("10:00")
		f.EndTime = strPtr("09:00")
		errs := Validate(f)
		require.True(t, errs.Has("end_time"))
	})

	t.Run("end time equal to start time is rejected", func(t *testing.T) {
		f := validWorkedForm()
		f.StartTime = strPtr("10:00")
		f.EndTime = strPtr("10:00")
		errs := Validate(f)
		require.True(t, errs.Has("end_time"))
	})

	t.Run("multiple violations are all reported", func(t *testing.T) {
		f := &model.DailyReportForm{IsWorked: true, Deliveries: intPtr(-5)}
		errs := Validate(f)
		require.True(t, errs.Has("date"))
		require.True(t, errs.Has("deliveries"))
		require.True(t, errs.Has("is_worked"))
	})
}

// The two tests below pin intentional mismatches between the validator and
// the calculators: the form rules forbid exactly the inputs Distance and
// WorkingHours were built to handle. Changing either side is a behavior
// change, not a bug fix.
func TestValidateKnownGaps(t *testing.T) {
	t.Run("midnight-crossing shift is rejected though WorkingHours supports it", func(t *testing.T) {
		f := validWorkedForm()
		f.StartTime = strPtr("23:00")
		f.EndTime = strPtr("01:00")
		require.Equal(t, 2.0, WorkingHours(f.StartTime, f.EndTime))
		errs := Validate(f)
		require.True(t, errs.Has("end_time"))
	})

	t.Run("odometer rollover is rejected though Distance supports it", func(t *testing.T) {
		f := validWorkedForm()
		f.StartOdometer = intPtr(999990)
		f.EndOdometer = intPtr(5)
		require.Equal(t, 16, Distance(f.StartOdometer, f.EndOdometer))
		errs := Validate(f)
		require.True(t, errs.Has("end_odometer"))
	})
}
