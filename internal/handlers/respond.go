// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the VibeDev API.
// Handlers are grouped by concern (auth, projects, posts, comments,
// profiles, events, admin, assist, uploads) and receive their
// dependencies through the handler struct. All responses are JSON; the
// UI is a separate application consuming this API.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// genericErrMsg is the body sent for any unexpected server failure.
// Details go to the log, never to the client.
const genericErrMsg = "An unexpected error occurred"

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// respondError writes an {"error": msg} body with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondInternalError logs the failure and answers with the generic
// 500 body.
func respondInternalError(w http.ResponseWriter, action string, err error) {
	slog.Error(action, "error", err)
	respondError(w, http.StatusInternalServerError, genericErrMsg)
}

// respondSuccess writes the {"success": true} body used by single
// mutation endpoints.
func respondSuccess(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeJSON decodes the request body into dst, capping it at 1 MiB.
// Returns false after writing a 400 response when the body is invalid.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
