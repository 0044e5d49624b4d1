package handlers

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"GROUPGO_BACK-END/internal/config"
	"GROUPGO_BACK-END/internal/dto"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// AuthHandler manages account creation and session endpoints. Sign-in itself
// happens client-side against the identity provider; the server only ever
// sees verified ID tokens.
type AuthHandler struct {
	auth     *fbauth.Client
	profiles *store.ProfileStore
	email    *utils.EmailService
	cfg      *config.Config
	log      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *fbauth.Client, profiles *store.ProfileStore, email *utils.EmailService, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, profiles: profiles, email: email, cfg: cfg, log: log}
}

// Register handles POST /api/auth/register: creates the identity provider
// account and seeds the signup-time user document.
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "email and password are required")
		return
	}

	displayName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	params := (&fbauth.UserToCreate{}).Email(email).Password(req.Password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	record, err := h.auth.CreateUser(r.Context(), params)
	if err != nil {
		h.log.WithError(err).WithField("email", email).Warn("account creation failed")
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Registration error", err.Error())
		return
	}

	if err := h.profiles.SaveUserRecord(r.Context(), record.UID, req.FirstName, req.LastName, email); err != nil {
		h.log.WithError(err).WithField("uid", record.UID).Warn("user record not saved")
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		UID:         record.UID,
		Email:       email,
		DisplayName: displayName,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is 200
// regardless of whether the address has an account, so the endpoint cannot be
// used to probe for registered emails.
// @Summary Send a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body dto.ForgotPasswordRequest true "Reset payload"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.ForgotPasswordRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	email := utils.NormalizeEmail(req.Email)
	if email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "email is required")
		return
	}

	link, err := h.auth.PasswordResetLink(r.Context(), email)
	if err != nil {
		h.log.WithError(err).WithField("email", email).Info("password reset link not generated")
	} else if h.cfg.IsEmailConfigured() {
		go func(to, resetLink string) {
			if err := h.email.SendPasswordReset(to, resetLink); err != nil {
				h.log.WithError(err).WithField("email", to).Warn("password reset email not sent")
			}
		}(email, link)
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "If the address is registered, a reset link has been sent"})
}

// Me handles GET /api/auth/me: echoes the verified session identity.
// @Summary Get the current session identity
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.MeResponse{
		UID:         ident.UID,
		Email:       ident.Email,
		DisplayName: ident.DisplayName,
	})
}
