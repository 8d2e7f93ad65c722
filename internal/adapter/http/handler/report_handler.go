package handler

import (
	"net/http"
	"time"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/infrastructure/metrics"
	"github.com/iho/finbook/internal/usecase"
)

// ReportHandler handles report HTTP requests.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	metrics  *metrics.Metrics
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC *usecase.ReportUseCase, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, metrics: m}
}

// Summary returns windowed income/expense totals with a category grouping.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	input := usecase.SummaryInput{OwnerID: owner}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
			return
		}
		input.From = &from
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
			return
		}
		input.To = &to
	}

	report, err := h.reportUC.Summary(r.Context(), input)
	if err != nil {
		writeInternalError(w, "failed to build summary", err)
		return
	}

	h.countQuery("summary")
	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(report))
}

// Monthly returns per-month expense totals for a year, twelve slots.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.MonthlyBreakdown(r.Context(), owner, r.URL.Query().Get("year"))
	if err != nil {
		writeInternalError(w, "failed to build monthly breakdown", err)
		return
	}

	h.countQuery("monthly")
	writeJSON(w, http.StatusOK, dto.MonthlyFromDomain(report))
}

// ByCategory returns the expense grouping for one calendar month, defaulting
// to the current one.
func (h *ReportHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.ByCategoryForMonth(r.Context(), owner,
		r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		writeInternalError(w, "failed to build category report", err)
		return
	}

	h.countQuery("by_category")
	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(report))
}

// ByPeriod returns the expense grouping for a month or a whole year. Year is
// required here.
func (h *ReportHandler) ByPeriod(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.ByPeriod(r.Context(), owner,
		r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, err, "failed to build period report")

		return
	}

	h.countQuery("by_period")
	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(report))
}

func (h *ReportHandler) countQuery(report string) {
	if h.metrics != nil {
		h.metrics.ReportQueries.WithLabelValues(report).Inc()
	}
}
