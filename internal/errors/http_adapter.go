package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HTTPErrorAdapter maps errors to HTTP status codes and JSON error bodies.
type HTTPErrorAdapter struct {
	logger *slog.Logger
}

// NewHTTPErrorAdapter creates a new HTTP error adapter.
func NewHTTPErrorAdapter(logger *slog.Logger) *HTTPErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPErrorAdapter{logger: logger}
}

// errorBody mirrors the API envelope used for successful responses.
type errorBody struct {
	Success  bool          `json:"success"`
	Error    string        `json:"error"`
	Category ErrorCategory `json:"category"`
}

// StatusCodeFor determines the HTTP status for an error.
func (a *HTTPErrorAdapter) StatusCodeFor(err error) int {
	switch GetCategory(err) {
	case CategoryValidation, CategoryArgument, CategoryConfig, CategoryScript:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteErrorResponse writes err as a JSON error body with its mapped status.
// Internal errors are logged and their detail is withheld from the client.
func (a *HTTPErrorAdapter) WriteErrorResponse(w http.ResponseWriter, err error) {
	status := a.StatusCodeFor(err)
	body := errorBody{Category: GetCategory(err)}
	if status >= http.StatusInternalServerError {
		a.logger.Error("Request failed", "error", err)
		body.Error = "internal server error"
	} else if cse, ok := As(err); ok && cse.Cause != nil {
		body.Error = cse.Message + ": " + cse.Cause.Error()
	} else if ok {
		body.Error = cse.Message
	} else {
		body.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
