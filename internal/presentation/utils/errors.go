package utils

import (
	"context"
	"errors"
	"net/http"

	"github.com/hilthontt/roombook/internal/domain"
	"github.com/hilthontt/roombook/internal/infrastructure/json"
)

// WriteError maps a service error onto the JSON error envelope.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		json.WriteUnauthorizedError(w)
	case errors.Is(err, domain.ErrInvalidCredentials):
		json.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidHour):
		json.WriteValidationError(w, err)
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrEventNotFound):
		json.WriteNotFoundError(w, err)
	case errors.Is(err, domain.ErrSlotUnavailable):
		json.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		json.WriteUpstreamError(w)
	case errors.Is(err, context.DeadlineExceeded):
		json.WriteError(w, http.StatusGatewayTimeout, "The booking service took too long to respond")
	default:
		json.WriteInternalError(w)
	}
}
