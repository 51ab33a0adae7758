// Package respond writes JSON responses and sanitizes error messages so
// that secrets and infrastructure details never reach API clients.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, so the best we can do is log.
			slog.Default().Error("encode JSON response", slog.Any("error", err))
		}
	}
}

// Error writes a JSON error body {"error": msg} with the given status code.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// AppError is an error that is safe to return to clients verbatim.
// Handlers wrap user-facing failures in it; everything else is replaced
// by a generic message.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// NewAppError returns an AppError with the given status code and message.
func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// safeErrorSubstrings are fragments of error messages that carry no
// sensitive detail and may be forwarded to clients as-is.
var safeErrorSubstrings = []string{
	"not found",
	"invalid query parameter",
	"invalid article id",
	"invalid slug",
	"validation failed",
	"required",
}

// SafeError writes an error response without leaking internals. AppError
// values pass through with their own status code and message. Known-safe
// messages keep the caller's status code. Anything else is logged with the
// full (sanitized) detail and the client sees a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		Error(w, code, http.StatusText(code))
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		Error(w, appErr.Code, appErr.Message)
		return
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, safe := range safeErrorSubstrings {
		if strings.Contains(lower, safe) {
			Error(w, code, msg)
			return
		}
	}

	slog.Default().Error("request failed",
		slog.Int("status", code),
		slog.String("error", Sanitize(msg)))
	Error(w, code, genericMessage(code))
}

func genericMessage(code int) string {
	switch {
	case code >= 500:
		return "internal server error"
	case code == http.StatusTooManyRequests:
		return "too many requests"
	case code >= 400:
		return "bad request"
	default:
		return http.StatusText(code)
	}
}
