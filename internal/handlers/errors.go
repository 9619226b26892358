package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctor-portal/internal/backend"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/store"
	usecase "github.com/clinicware/doctor-portal/internal/usecase/appointment"
)

// writeError maps the error taxonomy onto HTTP responses. Sentinel
// checks run first so a wrapped 401 still forces the login redirect.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		httperr.Unauthorized(c, "session_expired", "Session expired, please log in again.")
		return
	case errors.Is(err, backend.ErrNotFound):
		httperr.NotFound(c, "not_found", "Resource not found.")
		return
	case errors.Is(err, store.ErrMutationInFlight):
		httperr.Conflict(c, "update_in_flight", "Another update for this appointment is still in progress.")
		return
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	var invalid *domain.InvalidTransitionError
	if errors.As(err, &invalid) {
		httperr.Conflict(c, "invalid_transition", invalid.Error())
		return
	}

	var httpErr *backend.HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = "The clinic backend rejected the request."
		}
		httperr.BadGateway(c, "backend_error", msg)
		return
	}

	var fetchErr *backend.FetchError
	if errors.As(err, &fetchErr) {
		httperr.BadGateway(c, "backend_unreachable", "Could not reach the clinic backend.")
		return
	}

	var remote *usecase.RemoteUpdateError
	if errors.As(err, &remote) {
		httperr.BadGateway(c, "backend_update_failed", remote.Error())
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, "Invalid request.")
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong.")
}
