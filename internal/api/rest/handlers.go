package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	domainanalysis "github.com/clearcomply/contract-compliance-backend/internal/domain/analysis"
	domainerrors "github.com/clearcomply/contract-compliance-backend/internal/domain/errors"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/cache"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/repository"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	maxContractBytes    = 10 << 20 // matches the upload cap of the source system
)

// AnalysisStore is the read side the handlers need from persistence.
type AnalysisStore interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (*domainanalysis.Report, error)
	History(ctx context.Context, limit, offset int) ([]repository.AnalysisSummary, error)
	Search(ctx context.Context, terms string, limit int) ([]repository.AnalysisSummary, error)
	GetStats(ctx context.Context) (*repository.Stats, error)
}

// Handler serves the compliance API.
type Handler struct {
	logger   *zap.Logger
	service  *analysis.Service
	store    AnalysisStore
	reports  *cache.ReportCache
	validate *validator.Validate
	version  string
}

// NewHandler creates the API handler. store and reports may be nil when the
// deployment runs without persistence.
func NewHandler(logger *zap.Logger, service *analysis.Service, store AnalysisStore, reports *cache.ReportCache, version string) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		store:    store,
		reports:  reports,
		validate: validator.New(),
		version:  version,
	}
}

// RegisterRoutes wires the handler's routes onto mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyses", h.analyzeContract)
	mux.HandleFunc("GET /api/v1/analyses/search", h.searchAnalyses)
	mux.HandleFunc("GET /api/v1/analyses/{id}", h.getAnalysis)
	mux.HandleFunc("GET /api/v1/analyses", h.listAnalyses)
	mux.HandleFunc("GET /api/v1/stats", h.getStats)
	mux.HandleFunc("GET /healthz", h.health)
}

func (h *Handler) analyzeContract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContractBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domainerrors.NewValidationError("MALFORMED_BODY", "request body is not valid JSON").WithCause(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, domainerrors.NewValidationError("EMPTY_CONTRACT", "Contract text cannot be empty").WithCause(err))
		return
	}

	report, err := h.service.Analyze(r.Context(), analysis.AnalyzeRequest{
		ContractText: req.ContractText,
		Regulations:  req.Regulations,
		Jurisdiction: req.Jurisdiction,
		Industry:     req.Industry,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.reports != nil {
		h.reports.Put(r.Context(), report)
	}

	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeError(w, domainerrors.NewValidationError("INVALID_ID", "analysis id must be a UUID"))
		return
	}

	if h.reports != nil {
		if report := h.reports.Get(r.Context(), id); report != nil {
			h.writeJSON(w, http.StatusOK, report)
			return
		}
	}

	if h.store == nil {
		h.writeError(w, domainerrors.ErrAnalysisNotFound)
		return
	}

	report, err := h.store.GetAnalysis(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) listAnalyses(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, domainerrors.NewBusinessError("HISTORY_UNAVAILABLE", "analysis history is not configured"))
		return
	}

	limit := queryInt(r, "limit", defaultHistoryLimit, maxHistoryLimit)
	offset := queryInt(r, "offset", 0, 1<<30)

	history, err := h.store.History(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, HistoryResponse{
		History: history,
		Total:   len(history),
		Limit:   limit,
		Offset:  offset,
	})
}

func (h *Handler) searchAnalyses(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, domainerrors.NewBusinessError("SEARCH_UNAVAILABLE", "analysis search is not configured"))
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, domainerrors.NewValidationError("MISSING_QUERY", "query parameter q is required"))
		return
	}
	limit := queryInt(r, "limit", 10, maxHistoryLimit)

	results, err := h.store.Search(r.Context(), query, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, SearchResponse{
		Query:      query,
		Results:    results,
		TotalFound: len(results),
	})
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		h.writeError(w, domainerrors.NewBusinessError("STATS_UNAVAILABLE", "analysis stats are not configured"))
		return
	}

	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"compliance_engine": "healthy",
	}
	if h.store != nil {
		services["storage"] = "configured"
	} else {
		services["storage"] = "disabled"
	}

	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Version:  h.version,
		Services: services,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := domainerrors.GetStatusCode(err)
	resp := ErrorResponse{Error: err.Error()}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		resp.Code = appErr.Code
		resp.Error = appErr.Message
	}

	if status >= 500 {
		h.logger.Error("request failed", zap.Error(err))
	}

	h.writeJSON(w, status, resp)
}

func queryInt(r *http.Request, name string, fallback, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	if v > max {
		return max
	}
	return v
}
