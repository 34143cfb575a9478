package server

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

// WriteError writes an ErrorResponse with the request's ID.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := requestIDFrom(r)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err onto an ErrorResponse. Structured errors keep
// their code, message and context; anything else is reported as INTERNAL
// with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	code := apperrors.ErrCodeInternal
	message := fallbackMessage
	var details map[string]any

	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		code = se.Code
		message = se.Message
		details = se.Context
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
	} else if err != nil {
		details = map[string]any{"error": err.Error()}
	}

	status := apperrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "requestID", requestIDFrom(r), "path", r.URL.Path, "error", err)
	}

	WriteError(w, r, status, code, message, retryableFromCode(code), mergeDetails(details, extraDetails))
}

// retryableFromCode reports whether a client may retry the same request.
func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeRateLimitExceeded, apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails merges b into a copy of a. Returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
