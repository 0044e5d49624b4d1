package handlers

import (
	"net/http"
	"strings"

	"GROUPGO_BACK-END/internal/dto"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	trips       *store.TripStore
	invitations *store.InvitationStore
	log         *logger.Logger
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(trips *store.TripStore, invitations *store.InvitationStore, log *logger.Logger) *TripsHandler {
	return &TripsHandler{trips: trips, invitations: invitations, log: log}
}

// Trips dispatches by HTTP method for /api/trips
func (h *TripsHandler) Trips(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.CreateTrip(w, r)
	case http.MethodGet:
		h.ListTrips(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TripSubtree dispatches everything under /api/trips/
func (h *TripsHandler) TripSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/trips/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] == "exploratory":
		h.CreateExploratoryTrip(w, r)
	case len(parts) == 1 && parts[0] == "stream":
		h.StreamTrips(w, r)
	case len(parts) == 1 && parts[0] != "":
		h.trip(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "invitations":
		h.TripInvitations(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "invitations" && parts[2] == "stream":
		h.StreamTripInvitations(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "participants":
		h.RemoveParticipant(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *TripsHandler) trip(w http.ResponseWriter, r *http.Request, tripID string) {
	switch r.Method {
	case http.MethodGet:
		h.TripDetail(w, r, tripID)
	case http.MethodPut, http.MethodPatch:
		h.UpdateTrip(w, r, tripID)
	case http.MethodDelete:
		h.DeleteTrip(w, r, tripID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// CreateTrip handles POST /api/trips
// @Summary Create a new trip
// @Tags trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateTripRequest true "Trip payload"
// @Success 201 {object} dto.CreateTripResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/trips [post]
func (h *TripsHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Name == "" || req.Destination == "" || req.StartDate == "" || req.EndDate == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name, destination, start_date, end_date are required")
		return
	}

	tripID, err := h.trips.Create(r.Context(), ident, req.Name, req.Destination, req.StartDate, req.EndDate, req.Budget, req.NumberOfPeople)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateTripResponse{TripID: tripID})
}

// CreateExploratoryTrip handles POST /api/trips/exploratory
// @Summary Create a trip with only a name decided yet
// @Tags trips
// @Accept json
// @Produce json
// @Param payload body dto.CreateExploratoryTripRequest true "Trip payload"
// @Success 201 {object} dto.CreateTripResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/trips/exploratory [post]
func (h *TripsHandler) CreateExploratoryTrip(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.CreateExploratoryTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "name is required")
		return
	}

	tripID, err := h.trips.CreateExploratory(r.Context(), ident, req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.CreateTripResponse{TripID: tripID})
}

// ListTrips handles GET /api/trips: the merged union of trips the caller
// owns and trips they participate in, newest first.
// @Summary List the caller's trips
// @Tags trips
// @Produce json
// @Success 200 {object} dto.TripListResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/trips [get]
func (h *TripsHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	trips, err := h.trips.ListUserTrips(r.Context(), ident.UID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripListResponse{Trips: trips})
}

// StreamTrips handles GET /api/trips/stream: a websocket that pushes the
// caller's merged trip list on every change to either underlying
// subscription, until the client disconnects.
func (h *TripsHandler) StreamTrips(w http.ResponseWriter, r *http.Request) {
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

	trips, errc := h.trips.StreamUserTrips(ctx, ident.UID)
	for {
		select {
		case batch, open := <-trips:
			if !open {
				select {
				case err := <-errc:
					h.log.WithError(err).Warn("trip stream closed")
					closeWithError(conn, err)
				default:
				}
				return
			}
			if err := conn.WriteJSON(dto.TripListResponse{Trips: batch}); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// TripDetail handles GET /api/trips/{trip_id}
// @Summary Get a single trip
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.TripResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/trips/{trip_id} [get]
func (h *TripsHandler) TripDetail(w http.ResponseWriter, r *http.Request, tripID string) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	trip, err := h.trips.Get(r.Context(), tripID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TripResponse{Trip: *trip})
}

// UpdateTrip handles PUT/PATCH /api/trips/{trip_id}. Fields omitted from
// the payload keep their current value; the roster is never touched here.
// @Summary Update a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Param payload body dto.UpdateTripRequest true "Update payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/trips/{trip_id} [put]
func (h *TripsHandler) UpdateTrip(w http.ResponseWriter, r *http.Request, tripID string) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.UpdateTripRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	cur, err := h.trips.Get(r.Context(), tripID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// Default to current values for omitted fields
	name := cur.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	destination := cur.Destination
	if req.Destination != nil {
		destination = strings.TrimSpace(*req.Destination)
	}
	budget := cur.Budget
	if req.Budget != nil {
		budget = *req.Budget
	}
	numberOfPeople := cur.NumberOfPeople
	if req.NumberOfPeople != nil {
		numberOfPeople = *req.NumberOfPeople
	}
	startDate := cur.StartDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	endDate := cur.EndDate
	if req.EndDate != nil {
		endDate = *req.EndDate
	}

	if err := h.trips.Update(r.Context(), ident, tripID, name, destination, budget, numberOfPeople, startDate, endDate); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip updated successfully"})
}

// DeleteTrip handles DELETE /api/trips/{trip_id}. Hard delete; invitations
// referencing the trip are left behind.
// @Summary Delete a trip
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/trips/{trip_id} [delete]
func (h *TripsHandler) DeleteTrip(w http.ResponseWriter, r *http.Request, tripID string) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	if err := h.trips.Delete(r.Context(), ident, tripID); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Trip deleted successfully"})
}

// RemoveParticipant handles DELETE /api/trips/{trip_id}/participants/{uid}.
// The aligned email entry can be targeted too via the email query parameter.
// @Summary Remove a participant from a trip
// @Tags trips
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Param uid path string true "Participant UID"
// @Param email query string false "Participant email"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/trips/{trip_id}/participants/{uid} [delete]
func (h *TripsHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request, tripID, participantUID string) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if err := h.trips.RemoveParticipant(r.Context(), ident, tripID, participantUID, email); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Participant removed successfully"})
}

// TripInvitations handles GET /api/trips/{trip_id}/invitations: every
// invitation for the trip regardless of status, newest first.
// @Summary List invitations for a trip
// @Tags invitations
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} dto.InvitationListResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/trips/{trip_id}/invitations [get]
func (h *TripsHandler) TripInvitations(w http.ResponseWriter, r *http.Request, tripID string) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	invitations, err := h.invitations.ListForTrip(r.Context(), tripID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.InvitationListResponse{Invitations: invitations})
}

// StreamTripInvitations handles GET /api/trips/{trip_id}/invitations/stream
// over a websocket.
func (h *TripsHandler) StreamTripInvitations(w http.ResponseWriter, r *http.Request, tripID string) {
	if _, ok := middleware.IdentityFromContext(r.Context()); !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	conn, ctx, cancel, err := upgradeStream(w, r)
	if err != nil {
		return
	}
	defer cancel()
	defer conn.Close()

	invitations, errc := h.invitations.StreamForTrip(ctx, tripID)
	for {
		select {
		case batch, open := <-invitations:
			if !open {
				select {
				case err := <-errc:
					h.log.WithError(err).Warn("trip invitation stream closed")
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
