// Package api exposes the question-answering service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kataras/golog"
	corslib "github.com/rs/cors"

	"canrag/internal/config"
)

// Answerer answers a free-form question. Satisfied by rag.Service.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
}

// NewRouter creates the Chi router with middleware and routes.
func NewRouter(svc Answerer, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := &handler{svc: svc}
	r.Get("/health", h.health)
	r.Post("/chat", h.chat)

	return r
}

type handler struct {
	svc Answerer
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// chat answers a question. Service failures still produce a 200 with an
// error message in the body so web clients always render something.
func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Response: "Requête invalide : " + err.Error()})
		return
	}
	answer, err := h.svc.Answer(r.Context(), req.Query)
	if err != nil {
		golog.Errorf("chat request failed: %v", err)
		writeJSON(w, http.StatusOK, chatResponse{Response: "Erreur serveur : " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		golog.Errorf("writing response: %v", err)
	}
}
