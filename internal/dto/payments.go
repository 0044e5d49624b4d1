package dto

import "GROUPGO_BACK-END/internal/models"

// SetupIntentResponse envelope
type SetupIntentResponse struct {
	CustomerID              string `json:"customer_id"`
	SetupIntentClientSecret string `json:"setup_intent_client_secret"`
	EphemeralKey            string `json:"ephemeral_key"`
	PublishableKey          string `json:"publishable_key"`
}

// PaymentMethodListResponse envelope
type PaymentMethodListResponse struct {
	CustomerID     string                        `json:"customer_id"`
	PaymentMethods []models.PaymentMethodSummary `json:"payment_methods"`
}

// PaymentMethodRequest targets one card for default-selection or deletion
type PaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

// OKResponse mirrors the backend's {ok:true} confirmations
type OKResponse struct {
	OK bool `json:"ok"`
}
