package httperr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ordersvc/internal/service/models/apperrors"
)

// errorResponse is the error body shared by every handler.
type errorResponse struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Write maps an application error kind to an HTTP status and writes the
// error body. Unclassified errors are treated as infra failures.
func Write(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(kind))

	if encodeErr := json.NewEncoder(w).Encode(errorResponse{
		Message: err.Error(),
		Type:    string(kind),
	}); encodeErr != nil {
		slog.Error("Error writing error response", "error", encodeErr)
	}
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
