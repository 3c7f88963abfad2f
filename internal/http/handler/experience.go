package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"secondbrain/internal/model"
	"secondbrain/internal/service"
)

type ExperienceHandler struct {
	svc *service.ExperienceService
}

func NewExperienceHandler(svc *service.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{svc: svc}
}

// ServeHTTP routes /api/v1/experiences and /api/v1/experiences/{id}.
func (h *ExperienceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/experiences")
	path = strings.TrimPrefix(path, "/")

	if path != "" {
		id, ok := parseID(path)
		if !ok {
			WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	}
}

type createExperienceRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Tags     string `json:"tags"`
	Category string `json:"category"`
	Context  string `json:"context"`
}

func (h *ExperienceHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	exp, err := h.svc.Create(r.Context(), service.CreateExperienceInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Category: model.Category(req.Category),
		Context:  req.Context,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, exp)
}

func (h *ExperienceHandler) handleGet(w http.ResponseWriter, r *http.Request, id uint) {
	exp, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, exp)
}

type updateExperienceRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Tags     *string `json:"tags,omitempty"`
	Category *string `json:"category,omitempty"`
	Context  *string `json:"context,omitempty"`
}

func (h *ExperienceHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id uint) {
	var req updateExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateExperienceInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Context: req.Context,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		input.Category = &category
	}

	exp, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, exp)
}

func (h *ExperienceHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uint) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ExperienceHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.ExperienceFilter{
		DateField: q.Get("date_field"),
	}

	var err error
	if filter.From, err = parseDateParam(q.Get("from_date")); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if filter.To, err = parseDateParam(q.Get("to_date")); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	exps, err := h.svc.List(r.Context(), filter, parseSort(q.Get("sort"), q.Get("order")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, exps)
}
