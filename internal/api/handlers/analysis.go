package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wonny/pulseboard/backend/internal/contracts"
	"github.com/wonny/pulseboard/backend/internal/pipeline"
	"github.com/wonny/pulseboard/backend/internal/source"
	"github.com/wonny/pulseboard/backend/internal/validator"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// ReportObserver is notified of every completed analysis run.
type ReportObserver interface {
	ObserveReport(r *pipeline.Report)
}

// AnalysisHandler handles analysis API endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalysisHandler struct {
	builder  *pipeline.Builder
	latest   *pipeline.Latest
	observer ReportObserver
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler. observer may be nil.
func NewAnalysisHandler(
	builder *pipeline.Builder,
	latest *pipeline.Latest,
	observer ReportObserver,
	log *logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		builder:  builder,
		latest:   latest,
		observer: observer,
		logger:   log,
	}
}

// DatasetPayload is one dataset in an analyze request.
type DatasetPayload struct {
	ID     string             `json:"id"`
	Domain string             `json:"domain"`
	Rows   []contracts.Record `json:"rows"`
	Issues *contracts.Issues  `json:"issues,omitempty"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Datasets []DatasetPayload `json:"datasets"`
	Limit    int              `json:"limit"`
}

// ValidateRequest is the body of POST /api/validate.
type ValidateRequest struct {
	Domain string             `json:"domain"`
	Rows   []contracts.Record `json:"rows"`
}

// ValidateResponse is the validator result plus readiness.
type ValidateResponse struct {
	Domain contracts.Domain `json:"domain"`
	Ready  bool             `json:"ready"`
	validator.Result
}

// Analyze runs the full pipeline over the posted datasets
// POST /api/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if len(req.Datasets) == 0 {
		respondError(w, http.StatusBadRequest, "datasets is required")
		return
	}

	collection := make(contracts.Collection, len(req.Datasets))
	for i, p := range req.Datasets {
		domain, err := source.ParseDomain(p.Domain)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("datasets[%d]: %v", i, err))
			return
		}
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("dataset_%d", i+1)
		}
		if _, dup := collection[id]; dup {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("datasets[%d]: duplicate id %q", i, id))
			return
		}
		collection[id] = &contracts.Dataset{
			ID:     id,
			Domain: domain,
			Rows:   p.Rows,
			Issues: p.Issues,
		}
	}

	report, err := h.builder.WithLimit(req.Limit).Run(r.Context(), collection)
	if err != nil {
		h.logger.WithError(err).Error("Analysis failed")
		respondError(w, http.StatusServiceUnavailable, "Analysis was interrupted")
		return
	}
	if h.observer != nil {
		h.observer.ObserveReport(report)
	}

	respondJSON(w, http.StatusOK, report)
}

// Validate checks one dataset's headers without computing KPIs
// POST /api/validate
func (h *AnalysisHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	domain, err := source.ParseDomain(req.Domain)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := validator.Validate(domain, req.Rows)
	respondJSON(w, http.StatusOK, ValidateResponse{
		Domain: domain,
		Ready:  res.Ready(),
		Result: res,
	})
}

// GetLatest returns the most recent scheduled report
// GET /api/insights/latest
func (h *AnalysisHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	report := h.latest.Load()
	if report == nil {
		respondError(w, http.StatusNotFound, "No report has been generated yet")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

var errBodyTooLarge = errors.New("request body too large")

// decodeJSON decodes the body keeping numbers as json.Number.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func statusFor(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
