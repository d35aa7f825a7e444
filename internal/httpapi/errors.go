package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cleanos-ai/cleanos/internal/gateway"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: msg, Code: status})
}

// statusFor maps backend errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, gateway.ErrUnsupported) {
		return http.StatusNotImplemented
	}
	return http.StatusBadGateway
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logError(nil, err, "encode response")
	}
}
