package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"secondbrain/internal/model"
	"secondbrain/internal/service"
)

const dateLayout = "2006-01-02"

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /api/v1/todos, /api/v1/todos/today and
// /api/v1/todos/{id}[/status]. A UUID path segment resolves the record by
// its unique id instead of the numeric one.
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/todos")
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	key := parts[0]
	subPath := ""
	if len(parts) > 1 {
		subPath = parts[1]
	}

	if key == "today" {
		h.handleToday(w, r)
		return
	}

	if key != "" && subPath == "status" {
		h.handleUpdateStatus(w, r, key)
		return
	}

	if key != "" {
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, key)
		case http.MethodPut:
			h.handleUpdate(w, r, key)
		case http.MethodDelete:
			h.handleDelete(w, r, key)
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

type createTodoRequest struct {
	UniqueID    string  `json:"unique_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	TargetDate  *string `json:"target_date,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	// The form layer owns unique_id generation; fill one in for clients
	// that submit without it.
	if req.UniqueID == "" {
		req.UniqueID = uuid.NewString()
	}

	input := service.CreateTodoInput{
		UniqueID:    req.UniqueID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.Status(req.Status),
		Priority:    model.Priority(req.Priority),
	}

	var err error
	if input.TargetDate, err = parseDate(req.TargetDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if input.StartDate, err = parseDate(req.StartDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if input.EndDate, err = parseDate(req.EndDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	todo, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

func (h *TodoHandler) handleGet(w http.ResponseWriter, r *http.Request, key string) {
	if id, ok := parseID(key); ok {
		todo, err := h.svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, todo)
		return
	}

	if _, err := uuid.Parse(key); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer or a UUID")
		return
	}

	todo, err := h.svc.GetByUniqueID(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, todo)
}

type updateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	TargetDate  *string `json:"target_date,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, key string) {
	id, ok := parseID(key)
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	input := service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.Status(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := model.Priority(*req.Priority)
		input.Priority = &priority
	}

	var err error
	if input.TargetDate, input.ClearTargetDate, err = parseDatePatch(req.TargetDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if input.StartDate, input.ClearStartDate, err = parseDatePatch(req.StartDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if input.EndDate, input.ClearEndDate, err = parseDatePatch(req.EndDate); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	todo, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *TodoHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, key string) {
	if r.Method != http.MethodPatch {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	id, ok := parseID(key)
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	todo, err := h.svc.UpdateStatus(r.Context(), id, model.Status(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, key string) {
	id, ok := parseID(key)
	if !ok {
		WriteError(w, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter model.TodoFilter
	if statusStr := q.Get("status"); statusStr != "" {
		status := model.Status(statusStr)
		if !status.IsValid() {
			WriteError(w, http.StatusBadRequest, "INVALID_STATUS",
				fmt.Sprintf("%q is not a valid status", statusStr))
			return
		}
		filter.Status = status
	}
	// The listing shows everything unless the client asks to hide done
	// records, matching the list-view form's default.
	filter.ExcludeDone = q.Get("include_done") == "false"

	var err error
	if filter.TargetFrom, err = parseDateParam(q.Get("from_date")); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}
	if filter.TargetTo, err = parseDateParam(q.Get("to_date")); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_DATE", err.Error())
		return
	}

	todos, err := h.svc.List(r.Context(), filter, parseSort(q.Get("sort"), q.Get("order")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}

	todos, err := h.svc.TodaysTasks(r.Context(), time.Now().UTC())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDate parses an optional YYYY-MM-DD value; nil or empty means unset.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}

// parseDatePatch distinguishes keep (nil), clear (empty string) and set.
func parseDatePatch(s *string) (*time.Time, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	if *s == "" {
		return nil, true, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, false, nil
}

func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}

// parseSort reads sort/order query params; order defaults to descending,
// matching the list views.
func parseSort(by, order string) model.Sort {
	if by == "" {
		by = "created_at"
	}
	return model.Sort{By: by, Desc: !strings.EqualFold(order, "ASC")}
}
