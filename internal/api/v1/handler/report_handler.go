package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/report"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var datePathPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ReportHandler struct {
	reportService service.ReportService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewReportHandler(reportService service.ReportService, v *validator.Validate, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{reportService: reportService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 report routes
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/reports", authMw(http.HandlerFunc(h.handleReports)))
	mux.Handle("/reports/", authMw(http.HandlerFunc(h.handleReportSubpaths)))
	mux.Handle("/stats/monthly", authMw(http.HandlerFunc(h.getMonthlyStats)))
}

func (h *ReportHandler) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.upsertReport(w, r)
	case http.MethodGet:
		h.listReports(w, r)
	default:
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ReportHandler) handleReportSubpaths(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/reports/")
	switch {
	case r.Method == http.MethodGet && path == "odometer/latest":
		h.getLastOdometer(w, r)
	case r.Method == http.MethodGet && path == "export":
		h.exportReports(w, r)
	case r.Method == http.MethodGet && datePathPattern.MatchString(path):
		h.getReportByDate(w, r, path)
	case r.Method == http.MethodDelete:
		h.deleteReport(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *ReportHandler) upsertReport(w http.ResponseWriter, r *http.Request) {
	// 1. Extract UserID from context
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	// 2. Decode request body into DTO
	var req dto.ReportUpsertDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 3. Validate DTO shape
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// 4. Run the form through the report rules and persist
	form := &model.DailyReportForm{
		Date:          req.Date,
		IsWorked:      req.IsWorked,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StartOdometer: req.StartOdometer,
		EndOdometer:   req.EndOdometer,
		Deliveries:    req.Deliveries,
		HighwayFee:    req.HighwayFee,
		Notes:         req.Notes,
	}
	saved, created, err := h.reportService.Upsert(r.Context(), userID, form)
	if err != nil {
		var fieldErrs report.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeJSON(w, http.StatusBadRequest, dto.ValidationErrorResponseDTO{Errors: fieldErrs})
		case errors.Is(err, service.ErrReportConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to save daily report: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toReportResponse(saved))
}

func (h *ReportHandler) listReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	filter := parseReportFilter(r)
	reports, err := h.reportService.List(r.Context(), userID, filter)
	if err != nil {
		http.Error(w, "Failed to list daily reports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]dto.ReportResponseDTO, 0, len(reports))
	for i := range reports {
		resp = append(resp, toReportResponse(&reports[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) getReportByDate(w http.ResponseWriter, r *http.Request, date string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	rep, err := h.reportService.GetByDate(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get daily report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toReportResponse(rep))
}

func (h *ReportHandler) deleteReport(w http.ResponseWriter, r *http.Request, path string) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil {
		http.Error(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	if err := h.reportService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete daily report: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReportHandler) getLastOdometer(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	reading, err := h.reportService.LastOdometerReading(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to get last odometer reading: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.LastOdometerResponseDTO{EndOdometer: reading})
}

func (h *ReportHandler) exportReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	filter := parseReportFilter(r)
	reports, err := h.reportService.List(r.Context(), userID, filter)
	if err != nil {
		http.Error(w, "Failed to export daily reports: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="daily_reports.csv"`)
	if err := service.WriteReportsCSV(w, reports); err != nil {
		h.logger.Error().Err(err).Msg("Failed to stream report CSV")
	}
}

func (h *ReportHandler) getMonthlyStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		http.Error(w, "Unauthorized: user ID not found in context", http.StatusUnauthorized)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "Invalid or missing year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid or missing month", http.StatusBadRequest)
		return
	}

	stats, err := h.reportService.MonthlyStats(r.Context(), userID, year, month)
	if err != nil {
		http.Error(w, "Failed to get monthly stats: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.MonthlyStatsResponseDTO{
		WorkingDays:     stats.WorkingDays,
		TotalDistance:   stats.TotalDistance,
		TotalDeliveries: stats.TotalDeliveries,
		TotalHighwayFee: stats.TotalHighwayFee,
		TotalHours:      stats.TotalHours,
	})
}

func parseReportFilter(r *http.Request) model.ReportFilter {
	q := r.URL.Query()
	var filter model.ReportFilter
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	if v := q.Get("is_worked"); v != "" {
		if worked, err := strconv.ParseBool(v); err == nil {
			filter.IsWorked = &worked
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter
}

func toReportResponse(r *model.DailyReport) dto.ReportResponseDTO {
	return dto.ReportResponseDTO{
		ID:            r.ID,
		Date:          r.Date,
		IsWorked:      r.IsWorked,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		StartOdometer: r.StartOdometer,
		EndOdometer:   r.EndOdometer,
		DistanceKm:    r.DistanceKm,
		Deliveries:    r.Deliveries,
		HighwayFee:    r.HighwayFee,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
