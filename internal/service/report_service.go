package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"app/internal/model"
	"app/internal/report"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

var (
	ErrReportNotFound = errors.New("daily report not found")
	ErrReportConflict = errors.New("a report for this date already exists")
)

// SnapshotQueue is the slice of the pgmq client the report service needs to
// request monthly snapshot refreshes. Satisfied by *pgmq.Client.
type SnapshotQueue interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

type ReportService interface {
	// Upsert validates the form and creates or updates the report for
	// (user, form.Date). The bool is true when a new row was created.
	Upsert(ctx context.Context, userID string, form *model.DailyReportForm) (*model.DailyReport, bool, error)
	GetByDate(ctx context.Context, userID, date string) (*model.DailyReport, error)
	List(ctx context.Context, userID string, filter model.ReportFilter) ([]model.DailyReport, error)
	Delete(ctx context.Context, userID string, id int64) error
	LastOdometerReading(ctx context.Context, userID string) (*int, error)
	MonthlyStats(ctx context.Context, userID string, year, month int) (*model.MonthlyStats, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	queue      SnapshotQueue // nil disables snapshot refresh jobs
	queueName  string
	logger     zerolog.Logger
}

func NewReportService(reportRepo repository.ReportRepository, queue SnapshotQueue, queueName string, logger zerolog.Logger) ReportService {
	return &reportService{reportRepo: reportRepo, queue: queue, queueName: queueName, logger: logger}
}

func (s *reportService) Upsert(ctx context.Context, userID string, form *model.DailyReportForm) (*model.DailyReport, bool, error) {
	if errs := report.Validate(form); errs != nil {
		return nil, false, errs
	}

	// Check-then-act: not atomic. A concurrent create for the same date loses
	// against the unique index and surfaces as a conflict.
	existing, err := s.reportRepo.GetByDate(ctx, userID, form.Date)
	if err != nil {
		return nil, false, err
	}

	distance := report.Distance(form.StartOdometer, form.EndOdometer)
	r := &model.DailyReport{
		UserID:        userID,
		Date:          form.Date,
		IsWorked:      form.IsWorked,
		StartTime:     form.StartTime,
		EndTime:       form.EndTime,
		StartOdometer: form.StartOdometer,
		EndOdometer:   form.EndOdometer,
		DistanceKm:    &distance,
		Deliveries:    form.Deliveries,
		HighwayFee:    form.HighwayFee,
		Notes:         form.Notes,
	}

	created := existing == nil
	if created {
		err = s.reportRepo.Create(ctx, r)
	} else {
		r.ID = existing.ID
		err = s.reportRepo.Update(ctx, r)
	}
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, false, ErrReportConflict
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrReportNotFound
		}
		return nil, false, err
	}

	s.enqueueSnapshotRefresh(ctx, userID, r.Date)
	return r, created, nil
}

func (s *reportService) GetByDate(ctx context.Context, userID, date string) (*model.DailyReport, error) {
	r, err := s.reportRepo.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (s *reportService) List(ctx context.Context, userID string, filter model.ReportFilter) ([]model.DailyReport, error) {
	return s.reportRepo.List(ctx, userID, filter)
}

func (s *reportService) Delete(ctx context.Context, userID string, id int64) error {
	date, err := s.reportRepo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	s.enqueueSnapshotRefresh(ctx, userID, date)
	return nil
}

func (s *reportService) LastOdometerReading(ctx context.Context, userID string) (*int, error) {
	return s.reportRepo.LastOdometerReading(ctx, userID)
}

func (s *reportService) MonthlyStats(ctx context.Context, userID string, year, month int) (*model.MonthlyStats, error) {
	startDate, endDate := MonthBounds(year, month)
	reports, err := s.reportRepo.List(ctx, userID, model.ReportFilter{
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, err
	}

	stats := &model.MonthlyStats{}
	for _, r := range reports {
		if !r.IsWorked {
			continue
		}
		stats.WorkingDays++
		if r.DistanceKm != nil {
			stats.TotalDistance += *r.DistanceKm
		}
		if r.Deliveries != nil {
			stats.TotalDeliveries += *r.Deliveries
		}
		if r.HighwayFee != nil {
			stats.TotalHighwayFee += *r.HighwayFee
		}
	}
	// TotalHours stays 0: duration aggregation across the month is a known
	// unimplemented feature, not an oversight.
	return stats, nil
}

// MonthBounds returns the inclusive date range for a calendar month. The
// day-31 upper bound is deliberately naive; dates that don't exist simply
// never match.
func MonthBounds(year, month int) (string, string) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	return prefix + "01", prefix + "31"
}

func (s *reportService) enqueueSnapshotRefresh(ctx context.Context, userID, date string) {
	if s.queue == nil {
		return
	}
	year, month, ok := splitReportDate(date)
	if !ok {
		s.logger.Warn().Str("date", date).Msg("Skipping snapshot refresh for unparsable date")
		return
	}
	payload, err := json.Marshal(model.AggregationJob{UserID: userID, Year: year, Month: month})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to marshal aggregation job")
		return
	}
	// Best effort: a stale snapshot must never fail the submission.
	if err := s.queue.Send(ctx, s.queueName, payload); err != nil {
		s.logger.Warn().Err(err).Str("queue", s.queueName).Msg("Failed to enqueue aggregation job")
	}
}

func splitReportDate(date string) (year, month int, ok bool) {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return 0, 0, false
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errY != nil || errM != nil {
		return 0, 0, false
	}
	return year, month, true
}
