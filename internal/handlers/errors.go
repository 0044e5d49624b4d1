package handlers

import (
	"errors"
	"net/http"

	"GROUPGO_BACK-END/internal/payments"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
)

// writeStoreError maps a store failure onto the HTTP error envelope. The UI
// shows the message as a transient notification and the user retries; no
// operation is retried server-side.
func writeStoreError(w http.ResponseWriter, err error) {
	var backendErr *payments.BackendError
	switch {
	case errors.Is(err, store.ErrNotAuthenticated):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, store.ErrNotOwner):
		utils.WriteErrorResponse(w, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, store.ErrCannotRemoveOrganizer),
		errors.Is(err, store.ErrInvitationClosed):
		utils.WriteErrorResponse(w, http.StatusConflict, "Conflict", err.Error())
	case errors.As(err, &backendErr):
		// Raw backend text passes through; no structured taxonomy crosses
		// this boundary.
		utils.WriteErrorResponse(w, http.StatusBadGateway, "Payment backend error", backendErr.Message)
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
