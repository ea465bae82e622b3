package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/emotube/backend/internal/logging"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	respond(ctx, w, status, payload, nil)
}

// respondError writes message as the JSON error body and logs cause once, at
// the level the status calls for.
func respondError(ctx context.Context, w http.ResponseWriter, status int, message string, cause error) {
	respond(ctx, w, status, map[string]string{"error": message}, cause)
}

func respond(ctx context.Context, w http.ResponseWriter, status int, payload any, cause error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	logger := logging.FromContext(ctx)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response body", "status", status, "error", err)
		return
	}

	attrs := []any{"status", status, "response", payload}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", attrs...)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", attrs...)
	}
}
