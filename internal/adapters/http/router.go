package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mkraev/smeta-sorter/internal/config"
	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
	"github.com/mkraev/smeta-sorter/internal/observability/metrics"
)

type Router struct {
	cfg            config.Config
	catalog        ports.CatalogService
	runs           ports.RunService
	httpMetrics    *metrics.HTTPServerMetrics
	metricsHandler http.Handler
}

func NewRouter(
	cfg config.Config,
	catalog ports.CatalogService,
	runs ports.RunService,
	httpMetrics *metrics.HTTPServerMetrics,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		cfg:            cfg,
		catalog:        catalog,
		runs:           runs,
		httpMetrics:    httpMetrics,
		metricsHandler: metricsHandler,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/metrics", rt.metricsEndpoint)
	mux.HandleFunc("/v1/types", rt.listTypes)
	mux.HandleFunc("/v1/types/", rt.typeSubtree)
	mux.HandleFunc("/v1/runs", rt.createRun)
	mux.HandleFunc("/v1/runs/", rt.runSubtree)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxInFlight, time.Duration(rt.cfg.APIBackpressureWaitMS)*time.Millisecond)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.httpMetrics != nil {
		handler = rt.httpMetrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) metricsEndpoint(w http.ResponseWriter, r *http.Request) {
	if rt.metricsHandler == nil {
		http.NotFound(w, r)
		return
	}
	rt.metricsHandler.ServeHTTP(w, r)
}

func (rt *Router) listTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	catalog, err := rt.catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (rt *Router) typeSubtree(w http.ResponseWriter, r *http.Request) {
	typeID, action, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/v1/types/"), "/")
	if typeID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type id is required"})
		return
	}

	switch action {
	case "":
		rt.getType(w, r, typeID)
	case "tags":
		rt.typeTags(w, r, typeID)
	case "mask":
		rt.setMask(w, r, typeID)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) getType(w http.ResponseWriter, r *http.Request, typeID string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	docType, err := rt.catalog.Get(r.Context(), typeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docType)
}

func (rt *Router) typeTags(w http.ResponseWriter, r *http.Request, typeID string) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Area string `json:"area"`
			Tag  string `json:"tag"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
		area, ok := domain.ParseTagArea(req.Area)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "area must be 'name' or 'content'"})
			return
		}

		docType, err := rt.catalog.AddTag(r.Context(), typeID, area, req.Tag)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docType)

	case http.MethodDelete:
		area, ok := domain.ParseTagArea(r.URL.Query().Get("area"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "area must be 'name' or 'content'"})
			return
		}

		docType, err := rt.catalog.RemoveTag(r.Context(), typeID, area, r.URL.Query().Get("tag"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, docType)

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) setMask(w http.ResponseWriter, r *http.Request, typeID string) {
	if r.Method != http.MethodPut {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Mask string `json:"mask"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	docType, err := rt.catalog.SetMask(r.Context(), typeID, req.Mask)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docType)
}

func (rt *Router) createRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Directory         string `json:"directory"`
		Recursive         *bool  `json:"recursive"`
		SearchInName      *bool  `json:"search_in_name"`
		SearchInContent   *bool  `json:"search_in_content"`
		AppendOriginal    *bool  `json:"append_original"`
		OriginalPrefixLen *int   `json:"original_prefix_len"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	params := domain.ScanParams{
		Directory:         req.Directory,
		Recursive:         boolOr(req.Recursive, rt.cfg.ScanRecursive),
		SearchInName:      boolOr(req.SearchInName, rt.cfg.ScanSearchInName),
		SearchInContent:   boolOr(req.SearchInContent, rt.cfg.ScanSearchInContent),
		AppendOriginal:    boolOr(req.AppendOriginal, rt.cfg.ScanAppendOriginal),
		OriginalPrefixLen: intOr(req.OriginalPrefixLen, rt.cfg.ScanOriginalPrefixLen),
	}

	run, err := rt.runs.Start(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, run)
}

func (rt *Router) runSubtree(w http.ResponseWriter, r *http.Request) {
	runID, action, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/v1/runs/"), "/")
	if runID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "run id is required"})
		return
	}

	switch action {
	case "":
		rt.getRun(w, r, runID)
	case "cancel":
		rt.cancelRun(w, r, runID)
	case "validate":
		rt.validateName(w, r, runID)
	case "apply":
		rt.applyRun(w, r, runID)
	default:
		http.NotFound(w, r)
	}
}

func (rt *Router) getRun(w http.ResponseWriter, r *http.Request, runID string) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	run, err := rt.runs.Get(r.Context(), runID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (rt *Router) cancelRun(w http.ResponseWriter, r *http.Request, runID string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := rt.runs.Cancel(r.Context(), runID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "canceling"})
}

func (rt *Router) validateName(w http.ResponseWriter, r *http.Request, runID string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		SourcePath string `json:"source_path"`
		Name       string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	check, err := rt.runs.ValidateName(r.Context(), runID, req.SourcePath, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (rt *Router) applyRun(w http.ResponseWriter, r *http.Request, runID string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req domain.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result, err := rt.runs.Apply(r.Context(), runID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
