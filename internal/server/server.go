// Package server exposes the run over HTTP: one GET trigger endpoint plus
// the health and metrics monitors.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dailytip/internal/app"
	"dailytip/internal/metrics"
)

type Server struct {
	app *app.App
}

func New(a *app.App) *Server {
	return &Server{app: a}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/tweet", s.handleTweet)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
	return r
}

// handleTweet maps query parameters 1:1 onto the run options and answers
// with the run's result record: 200 when ok, 500 otherwise.
func (s *Server) handleTweet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := app.Options{
		DryRun:      parseBool(q.Get("dry_run"), false),
		NoImage:     parseBool(q.Get("no_image"), false),
		ImageSource: valueOrDefault(q.Get("image_source"), "google"),
		ImageQuery:  strings.TrimSpace(q.Get("image_query")),
		NewsTopic:   strings.TrimSpace(q.Get("news_topic")),
	}

	result := s.app.Run(r.Context(), opts)

	status := http.StatusOK
	if !result.OK {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseBool(raw string, def bool) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return def
	}
	switch raw {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func valueOrDefault(raw, def string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	return raw
}
