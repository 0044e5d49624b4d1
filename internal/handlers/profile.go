package handlers

import (
	"net/http"
	"time"

	"GROUPGO_BACK-END/internal/dto"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/models"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// ProfileHandler manages the caller's profile document
type ProfileHandler struct {
	profiles *store.ProfileStore
	log      *logger.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles *store.ProfileStore, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// Profile dispatches by HTTP method for /api/profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetProfile(w, r)
	case http.MethodPut:
		h.UpsertProfile(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GetProfile handles GET /api/profile
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	profile, err := h.profiles.Get(r.Context(), ident.UID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// profile is null when the account never created one
	utils.WriteJSONResponse(w, http.StatusOK, dto.ProfileResponse{Profile: profile})
}

// UpsertProfile handles PUT /api/profile. Full-document overwrite: the
// caller sends the complete object, typically an unmodified read plus
// edits.
// @Summary Create or replace the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body dto.UpsertProfileRequest true "Profile payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/profile [put]
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.UpsertProfileRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	// createdAt of an existing document survives the overwrite
	var createdAt time.Time
	if existing, err := h.profiles.Get(r.Context(), ident.UID); err == nil && existing != nil {
		createdAt = existing.CreatedAt
	}

	profile := models.UserProfile{
		UID:         ident.UID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DisplayName: req.DisplayName,
		ProfilePic:  req.ProfilePic,
		ShortBio:    req.ShortBio,
		HomeAirport: req.HomeAirport,
		PassportID:  req.PassportID,
		CreatedAt:   createdAt,
	}

	if err := h.profiles.Upsert(r.Context(), ident, profile); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Profile saved"})
}
