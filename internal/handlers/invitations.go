package handlers

import (
	"net/http"
	"strings"

	"GROUPGO_BACK-END/internal/config"
	"GROUPGO_BACK-END/internal/dto"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// InvitationsHandler manages invitation endpoints
type InvitationsHandler struct {
	invitations *store.InvitationStore
	email       *utils.EmailService
	cfg         *config.Config
	log         *logger.Logger
}

// NewInvitationsHandler creates a new InvitationsHandler
func NewInvitationsHandler(invitations *store.InvitationStore, email *utils.EmailService, cfg *config.Config, log *logger.Logger) *InvitationsHandler {
	return &InvitationsHandler{invitations: invitations, email: email, cfg: cfg, log: log}
}

// InvitationSubtree dispatches everything under /api/invitations/
func (h *InvitationsHandler) InvitationSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/invitations/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] == "pending":
		h.PendingInvitations(w, r)
	case len(parts) == 2 && parts[0] == "pending" && parts[1] == "stream":
		h.StreamPendingInvitations(w, r)
	case len(parts) == 2 && parts[1] == "accept":
		h.AcceptInvitation(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "decline":
		h.DeclineInvitation(w, r, parts[0])
	default:
		http.NotFound(w, r)
	}
}

// SendInvitation handles POST /api/invitations. Sending twice to the same
// address is legal and produces two pending invitations. A notification
// email goes out best effort when SMTP is configured.
// @Summary Invite an email address to a trip
// @Tags invitations
// @Accept json
// @Produce json
// @Param payload body dto.SendInvitationRequest true "Invitation payload"
// @Success 201 {object} dto.SendInvitationResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/invitations [post]
func (h *InvitationsHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.SendInvitationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if req.TripID == "" || strings.TrimSpace(req.InvitedEmail) == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "trip_id and invited_email are required")
		return
	}

	invitationID, err := h.invitations.Send(r.Context(), ident, req.TripID, req.TripName, req.InvitedEmail)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if h.cfg.IsEmailConfigured() {
		go func(to, tripName, inviter string) {
			if err := h.email.SendInvitation(to, tripName, inviter); err != nil {
				h.log.WithError(err).WithField("invited_email", to).Warn("invitation email not sent")
			}
		}(utils.NormalizeEmail(req.InvitedEmail), req.TripName, ident.Email)
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SendInvitationResponse{InvitationID: invitationID})
}

// PendingInvitations handles GET /api/invitations/pending: the caller's
// open invitations, newest first.
// @Summary List the caller's pending invitations
// @Tags invitations
// @Produce json
// @Success 200 {object} dto.InvitationListResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/invitations/pending [get]
func (h *InvitationsHandler) PendingInvitations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	invitations, err := h.invitations.ListPending(r.Context(), ident)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.InvitationListResponse{Invitations: invitations})
}

// StreamPendingInvitations handles GET /api/invitations/pending/stream over
// a websocket.
func (h *InvitationsHandler) StreamPendingInvitations(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	conn, ctx, cancel, err := upgradeStream(w, r)
	if err != nil {
		return
	}
	defer cancel()
	defer conn.Close()

	invitations, errc := h.invitations.StreamPending(ctx, ident)
	for {
		select {
		case batch, open := <-invitations:
			if !open {
				select {
				case err := <-errc:
					h.log.WithError(err).Warn("pending invitation stream closed")
					closeWithError(conn, err)
				default:
				}
				return
			}
			if err := conn.WriteJSON(dto.InvitationListResponse{Invitations: batch}); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// AcceptInvitation handles POST /api/invitations/{invitation_id}/accept.
// The invitation flip and the roster append commit in one transaction.
// @Summary Accept an invitation
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Param payload body dto.AcceptInvitationRequest true "Accept payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/invitations/{invitation_id}/accept [post]
func (h *InvitationsHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request, invitationID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.AcceptInvitationRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.TripID == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "trip_id is required")
		return
	}

	if err := h.invitations.Accept(r.Context(), ident, invitationID, req.TripID); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Invitation accepted"})
}

// DeclineInvitation handles POST /api/invitations/{invitation_id}/decline.
// @Summary Decline an invitation
// @Tags invitations
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/invitations/{invitation_id}/decline [post]
func (h *InvitationsHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request, invitationID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if err := h.invitations.Decline(r.Context(), ident, invitationID); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Invitation declined"})
}
