package http

import (
	"net/http"

	"secondbrain/internal/http/handler"
	"secondbrain/internal/service"
)

// RouterDeps collects the services the HTTP surface exposes.
type RouterDeps struct {
	Todos       *service.TodoService
	Experiences *service.ExperienceService
	RAG         *service.RAGService
	ExportPath  string // default target for POST /api/v1/rag/export
}

func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler())

	todoHandler := handler.NewTodoHandler(deps.Todos)
	mux.Handle("/api/v1/todos", todoHandler)
	mux.Handle("/api/v1/todos/", todoHandler)

	expHandler := handler.NewExperienceHandler(deps.Experiences)
	mux.Handle("/api/v1/experiences", expHandler)
	mux.Handle("/api/v1/experiences/", expHandler)

	ragHandler := handler.NewRAGHandler(deps.RAG, deps.ExportPath)
	mux.Handle("/api/v1/rag/", ragHandler)

	return mux
}
