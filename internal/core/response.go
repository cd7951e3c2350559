// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

func Created(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusCreated, v)
}

// Text writes a plain-text body, matching the endpoints that answer with
// short status strings rather than JSON.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write([]byte(body))
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Access denied"
	}
	Text(w, http.StatusForbidden, message)
}

// ServerError logs the underlying error and answers with an opaque message.
// Store and internal failures must never leak detail to the client.
func ServerError(w http.ResponseWriter, err error, message string) {
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: message})
}

func InternalServerError(w http.ResponseWriter, err error) {
	ServerError(w, err, "Internal server error")
}
