package report

import (
	"regexp"
	"strings"

	"app/internal/model"
)

// timePattern accepts 24-hour HH:MM, with an optional leading zero on the
// hour.
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

const (
	maxDeliveries = 999
	maxNotesLen   = 500
)

// FieldError is a validation failure attached to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every rule violation for one submission. A nil slice
// means the form is valid.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether any error is attached to the given field.
func (e FieldErrors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validate checks a daily report submission against the form rules and
// returns every violation at once. It never rejects a form for a reason the
// caller cannot fix.
//
// Note that the cross-field rules are stricter than the calculators in this
// package: a shift crossing midnight fails the end_time ordering rule even
// though WorkingHours handles it, and an odometer rollover fails the
// end_odometer rule even though Distance handles it. Both rejections are
// intentional current behavior; see the rule tests.
func Validate(f *model.DailyReportForm) FieldErrors {
	var errs FieldErrors

	if f.Date == "" {
		errs = append(errs, FieldError{Field: "date", Message: "date is required"})
	}
	if f.StartTime != nil && !timePattern.MatchString(*f.StartTime) {
		errs = append(errs, FieldError{Field: "start_time", Message: "enter a valid time in HH:MM format"})
	}
	if f.EndTime != nil && !timePattern.MatchString(*f.EndTime) {
		errs = append(errs, FieldError{Field: "end_time", Message: "enter a valid time in HH:MM format"})
	}
	if f.StartOdometer != nil && (*f.StartOdometer < 0 || *f.StartOdometer > OdometerMax) {
		errs = append(errs, FieldError{Field: "start_odometer", Message: "odometer reading must be between 0 and 999999"})
	}
	if f.EndOdometer != nil && (*f.EndOdometer < 0 || *f.EndOdometer > OdometerMax) {
		errs = append(errs, FieldError{Field: "end_odometer", Message: "odometer reading must be between 0 and 999999"})
	}
	if f.Deliveries != nil && (*f.Deliveries < 0 || *f.Deliveries > maxDeliveries) {
		errs = append(errs, FieldError{Field: "deliveries", Message: "deliveries must be between 0 and 999"})
	}
	if f.HighwayFee != nil && *f.HighwayFee < 0 {
		errs = append(errs, FieldError{Field: "highway_fee", Message: "highway fee must be 0 or greater"})
	}
	if f.Notes != nil && len([]rune(*f.Notes)) > maxNotesLen {
		errs = append(errs, FieldError{Field: "notes", Message: "notes must be 500 characters or less"})
	}

	// Worked days require the full time and odometer pairs.
	if f.IsWorked && (f.StartTime == nil || f.EndTime == nil || f.StartOdometer == nil || f.EndOdometer == nil) {
		errs = append(errs, FieldError{
			Field:   "is_worked",
			Message: "working days require start time, end time, start odometer and end odometer",
		})
	}
	// Lexical HH:MM comparison; rejects midnight-crossing shifts.
	if f.StartTime != nil && f.EndTime != nil && *f.EndTime <= *f.StartTime {
		errs = append(errs, FieldError{Field: "end_time", Message: "end time must be later than start time"})
	}
	// Rejects rollover readings.
	if f.StartOdometer != nil && f.EndOdometer != nil && *f.EndOdometer < *f.StartOdometer {
		errs = append(errs, FieldError{Field: "end_odometer", Message: "end odometer must be greater than or equal to start odometer"})
	}

	return errs
}
