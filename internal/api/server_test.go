package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canrag/internal/config"
)

type fakeAnswerer struct {
	answer string
	err    error
	query  string
}

func (f *fakeAnswerer) Answer(_ context.Context, query string) (string, error) {
	f.query = query
	return f.answer, f.err
}

func serverConfig() config.ServerConfig {
	return config.ServerConfig{Host: "127.0.0.1", Port: 8000, CORSAllowOrigins: []string{"*"}}
}

func postChat(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.Response
}

func TestChatReturnsAnswer(t *testing.T) {
	svc := &fakeAnswerer{answer: "Le Maroc a gagné la finale."}
	router := NewRouter(svc, serverConfig())

	rec := postChat(t, router, `{"query":"Qui a gagné la finale ?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Le Maroc a gagné la finale.", decodeResponse(t, rec))
	assert.Equal(t, "Qui a gagné la finale ?", svc.query)
}

func TestChatServiceErrorStillRenders(t *testing.T) {
	svc := &fakeAnswerer{err: errors.New("embed query: backend indisponible")}
	router := NewRouter(svc, serverConfig())

	rec := postChat(t, router, `{"query":"finale"}`)

	// Errors are reported in-band so the web client can display them.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(decodeResponse(t, rec), "Erreur serveur : "))
}

func TestChatMalformedBody(t *testing.T) {
	router := NewRouter(&fakeAnswerer{}, serverConfig())

	rec := postChat(t, router, `{"query":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec), "Requête invalide")
}

func TestChatKeepsAccentsUnescaped(t *testing.T) {
	svc := &fakeAnswerer{answer: "Victoire de l'Égypte"}
	router := NewRouter(svc, serverConfig())

	rec := postChat(t, router, `{"query":"Égypte"}`)

	assert.Contains(t, rec.Body.String(), "Victoire de l'Égypte")
}

func TestHealth(t *testing.T) {
	router := NewRouter(&fakeAnswerer{}, serverConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router := NewRouter(&fakeAnswerer{}, serverConfig())

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
