package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"secondbrain/internal/service"
)

type RAGHandler struct {
	svc        *service.RAGService
	exportPath string
}

func NewRAGHandler(svc *service.RAGService, exportPath string) *RAGHandler {
	return &RAGHandler{svc: svc, exportPath: exportPath}
}

// ServeHTTP routes /api/v1/rag/{documents,context,export,stats}.
func (h *RAGHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/rag/")

	switch path {
	case "documents":
		h.handleDocuments(w, r)
	case "context":
		h.handleContext(w, r)
	case "export":
		h.handleExport(w, r)
	case "stats":
		h.handleStats(w, r)
	default:
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	}
}

// handleDocuments lists the corpus, optionally narrowed by ?tags= (comma
// separated) or ?category=.
func (h *RAGHandler) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	q := r.URL.Query()

	var (
		docs []service.RAGDocument
		err  error
	)
	switch {
	case q.Get("tags") != "":
		docs, err = h.svc.SearchByTags(r.Context(), service.SplitTags(q.Get("tags")))
	case q.Get("category") != "":
		docs, err = h.svc.SearchByCategory(r.Context(), q.Get("category"))
	default:
		docs, err = h.svc.Documents(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, docs)
}

type contextRequest struct {
	Query    string `json:"query"`
	Tags     string `json:"tags,omitempty"`
	Category string `json:"category,omitempty"`
	Max      int    `json:"max,omitempty"`
}

type contextResponse struct {
	Context string `json:"context"`
}

func (h *RAGHandler) handleContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	var req contextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Query == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "query is required")
		return
	}
	if req.Max <= 0 {
		req.Max = 5
	}

	var (
		docs []service.RAGDocument
		err  error
	)
	switch {
	case req.Tags != "":
		docs, err = h.svc.SearchByTags(r.Context(), service.SplitTags(req.Tags))
	case req.Category != "":
		docs, err = h.svc.SearchByCategory(r.Context(), req.Category)
	default:
		docs, err = h.svc.Documents(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, contextResponse{
		Context: service.PromptContext(req.Query, docs, req.Max),
	})
}

type exportRequest struct {
	Path string `json:"path,omitempty"`
}

func (h *RAGHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	var req exportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
			return
		}
	}

	path := req.Path
	if path == "" {
		path = h.exportPath
	}
	if path == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "no export path configured or supplied")
		return
	}

	export, err := h.svc.ExportJSON(r.Context(), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"path":          path,
		"total_records": export.TotalRecords,
		"export_date":   export.ExportDate,
	})
}

func (h *RAGHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	stats, err := h.svc.Statistics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
