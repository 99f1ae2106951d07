package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roach88/mealquery/internal/search"
	"github.com/roach88/mealquery/internal/store"
)

// maxBodyBytes bounds a search request body.
const maxBodyBytes = 64 << 10

// handler holds the dependencies of the route handlers.
type handler struct {
	svc    *search.Service
	logger *slog.Logger
}

// NewRouter returns the HTTP handler for the recipe API.
// A nil logger uses slog.Default().
func NewRouter(svc *search.Service, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api/recipes", func(r chi.Router) {
		r.Get("/dropdown-options", h.dropdownOptions)
		r.Post("/search", h.search)
		r.Get("/validate", h.validate)
		r.Get("/presets", h.presets)
		r.Get("/{id}", h.recipe)
	})
	return r
}

func (h *handler) dropdownOptions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.svc.Options())
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.svc.Search(r.Context(), req.Query)
	switch {
	case errors.Is(err, search.ErrEmptyQuery), errors.Is(err, search.ErrInvalidQuery):
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("search failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "search failed")
		return
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) validate(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.svc.Validate(r.URL.Query().Get("query")))
}

func (h *handler) presets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.svc.Presets())
}

func (h *handler) recipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.Recipe(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.writeError(w, r, http.StatusNotFound, "recipe not found")
		return
	case err != nil:
		h.logger.Error("get recipe failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "get recipe failed")
		return
	}
	h.writeJSON(w, r, http.StatusOK, recipe)
}

// logRequests logs one line per request after it completes.
func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
		)
	})
}

// writeJSON encodes v as the response body. Headers are already sent when
// encoding fails, so the error is only logged.
func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"error": msg})
}
