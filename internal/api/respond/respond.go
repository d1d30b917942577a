// Package respond provides the uniform JSON envelope used by every API
// endpoint: {success, data, count?, error?, message?, details?}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// FieldError describes one invalid field in a 400 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the standard response shape for all endpoints.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

// Data sends a 200 with a single record.
func Data(w http.ResponseWriter, data any) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// List sends a 200 with a collection and its count.
func List(w http.ResponseWriter, data any, count int) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Created sends a 201 with the new record.
func Created(w http.ResponseWriter, data any) {
	write(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Deleted sends a 200 acknowledging a delete or archive.
func Deleted(w http.ResponseWriter, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Error sends a structured error with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Error: message})
}

// ValidationError sends a 400 with a field error list.
func ValidationError(w http.ResponseWriter, details []FieldError) {
	write(w, http.StatusBadRequest, Envelope{
		Success: false,
		Error:   "validation failed",
		Details: details,
	})
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	write(w, http.StatusNotFound, Envelope{Success: false, Error: message})
}

// ServerError logs the underlying error and sends a generic 500. Internal
// detail never reaches the client.
func ServerError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("request failed", "error", err)
	write(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   "internal server error",
	})
}

// RawJSON writes pre-encoded JSON with cache headers (used by cached list
// endpoints).
func RawJSON(w http.ResponseWriter, data []byte, etag string, cacheHit bool) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", etag)
	w.Header().Set("Vary", "Accept-Encoding")
	if cacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// NotModified sends a 304 with the matching ETag.
func NotModified(w http.ResponseWriter, etag string) {
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
}
