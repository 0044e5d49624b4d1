package handlers

import (
	"net/http"
	"strings"

	"GROUPGO_BACK-END/internal/dto"
	"GROUPGO_BACK-END/internal/middleware"
	"GROUPGO_BACK-END/internal/payments"
	"GROUPGO_BACK-END/internal/utils"
	"GROUPGO_BACK-END/pkg/logger"
)

// PaymentsHandler relays card management calls to the payment backend
type PaymentsHandler struct {
	payments *payments.Client
	log      *logger.Logger
}

// NewPaymentsHandler creates a new PaymentsHandler
func NewPaymentsHandler(client *payments.Client, log *logger.Logger) *PaymentsHandler {
	return &PaymentsHandler{payments: client, log: log}
}

// PaymentSubtree dispatches everything under /api/payments/
func (h *PaymentsHandler) PaymentSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/payments/"), "/")

	switch rest {
	case "setup-intent":
		h.CreateSetupIntent(w, r)
	case "methods":
		h.ListPaymentMethods(w, r)
	case "methods/default":
		h.SetDefaultPaymentMethod(w, r)
	case "methods/delete":
		h.DeletePaymentMethod(w, r)
	default:
		http.NotFound(w, r)
	}
}

// CreateSetupIntent handles POST /api/payments/setup-intent. The credentials
// in the response are single-use and expire quickly; the client requests a
// fresh set every time it opens the payment sheet.
// @Summary Start a card setup flow
// @Tags payments
// @Produce json
// @Success 200 {object} dto.SetupIntentResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/payments/setup-intent [post]
func (h *PaymentsHandler) CreateSetupIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	creds, err := h.payments.CreateSetupIntent(r.Context(), ident.UID, ident.Email)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.SetupIntentResponse{
		CustomerID:              creds.CustomerID,
		SetupIntentClientSecret: creds.SetupIntentClientSecret,
		EphemeralKey:            creds.EphemeralKey,
		PublishableKey:          creds.PublishableKey,
	})
}

// ListPaymentMethods handles GET /api/payments/methods. Nothing is cached;
// the card list always comes fresh from the backend.
// @Summary List the caller's saved cards
// @Tags payments
// @Produce json
// @Param customer_id query string false "Known Stripe customer id"
// @Success 200 {object} dto.PaymentMethodListResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/payments/methods [get]
func (h *PaymentsHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	customerID := r.URL.Query().Get("customer_id")
	resolvedID, methods, err := h.payments.ListPaymentMethods(r.Context(), customerID, ident.UID, ident.Email)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PaymentMethodListResponse{
		CustomerID:     resolvedID,
		PaymentMethods: methods,
	})
}

// SetDefaultPaymentMethod handles POST /api/payments/methods/default.
// @Summary Mark a card as the default
// @Tags payments
// @Accept json
// @Produce json
// @Param payload body dto.PaymentMethodRequest true "Card selector"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/payments/methods/default [post]
func (h *PaymentsHandler) SetDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.PaymentMethodRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.PaymentMethodID == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "payment_method_id is required")
		return
	}

	if err := h.payments.SetDefaultPaymentMethod(r.Context(), ident.UID, ident.Email, req.PaymentMethodID); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.OKResponse{OK: true})
}

// DeletePaymentMethod handles POST /api/payments/methods/delete.
// @Summary Detach a saved card
// @Tags payments
// @Accept json
// @Produce json
// @Param payload body dto.PaymentMethodRequest true "Card selector"
// @Success 200 {object} dto.OKResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/payments/methods/delete [post]
func (h *PaymentsHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ident, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid user context")
		return
	}

	var req dto.PaymentMethodRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if req.PaymentMethodID == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Validation error", "payment_method_id is required")
		return
	}

	if err := h.payments.DeletePaymentMethod(r.Context(), ident.UID, ident.Email, req.PaymentMethodID); err != nil {
		writeStoreError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.OKResponse{OK: true})
}
