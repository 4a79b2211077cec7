package rest

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/dto"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/dataset"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/domain/port"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/csvio"
)

// Response headers set on a scored table.
const (
	HeaderRunID        = "X-Run-Id"
	HeaderTransactions = "X-Total-Transactions"
	HeaderFlagged      = "X-Flagged-Transactions"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AssessmentHandler exposes the scoring pipeline over HTTP.
type AssessmentHandler struct {
	runAssessment *usecase.RunAssessment
	getRun        *usecase.GetRun
	logger        *slog.Logger
	maxBytes      int64
	maxConcurrent int
}

// NewAssessmentHandler creates the handler. getRun may be nil when no run
// repository is configured; the run lookup route is then not registered.
func NewAssessmentHandler(run *usecase.RunAssessment, getRun *usecase.GetRun, maxBytes int64, logger *slog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		runAssessment: run,
		getRun:        getRun,
		maxBytes:      maxBytes,
		logger:        logger,
	}
}

// WithConcurrencyLimit bounds how many assessments are scored at once.
func (h *AssessmentHandler) WithConcurrencyLimit(n int) *AssessmentHandler {
	h.maxConcurrent = n
	return h
}

// RegisterRoutes registers the assessment endpoints on the provided ServeMux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /v1/assessments", ConcurrencyLimit(h.maxConcurrent)(http.HandlerFunc(h.CreateAssessment)))
	if h.getRun != nil {
		mux.HandleFunc("GET /v1/runs/{id}", h.GetRun)
	}
}

// CreateAssessment scores a CSV ledger posted as the request body and answers
// with the annotated table as CSV. Query parameters:
//
//	clean=true    drop incomplete and duplicate rows first
//	flagged=true  return only the suspicious rows
func (h *AssessmentHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	df, err := csvio.Load(body)
	if err == nil && queryBool(r, "clean") {
		df, err = csvio.Clean(df)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.runAssessment.Execute(ctx, df)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	table := res.Table
	if queryBool(r, "flagged") {
		table = table.Filter(dataframe.F{
			Colname:    dataset.ColIsSuspicious,
			Comparator: series.Eq,
			Comparando: true,
		})
	}

	var buf bytes.Buffer
	if err := csvio.Write(&buf, table); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set(HeaderRunID, res.Run.RunID.String())
	w.Header().Set(HeaderTransactions, strconv.Itoa(res.Run.TotalTransactions))
	w.Header().Set(HeaderFlagged, strconv.Itoa(res.Run.FlaggedTransactions))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// GetRun returns a stored run and one page of its account summaries.
func (h *AssessmentHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid run id"})
		return
	}

	req := dto.GetRunRequest{RunID: id}
	req.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	req.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	details, err := h.getRun.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// writeError maps domain errors to HTTP status codes.
func (h *AssessmentHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	} else {
		h.logger.InfoContext(r.Context(), "request rejected", slog.String("path", r.URL.Path), slog.Int("status", status), slog.Any("error", err))
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dataset.ErrEmptyInput),
		errors.Is(err, dataset.ErrMissingColumn),
		errors.Is(err, csvio.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrNonFinite):
		return http.StatusUnprocessableEntity
	case errors.Is(err, port.ErrRunNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
