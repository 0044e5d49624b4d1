package models

// PaymentMethodSummary is a derived view of a card held by the payment
// processor. Nothing from it is ever persisted here.
type PaymentMethodSummary struct {
	ID        string `json:"id"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	ExpMonth  int    `json:"exp_month"`
	ExpYear   int    `json:"exp_year"`
	IsDefault bool   `json:"is_default"`
}

// SetupIntentCredentials is what the payment backend returns for a card
// setup flow: everything the mobile payment sheet needs, nothing stored.
type SetupIntentCredentials struct {
	CustomerID              string `json:"customer_id"`
	SetupIntentClientSecret string `json:"setup_intent_client_secret"`
	EphemeralKey            string `json:"ephemeral_key"`
	PublishableKey          string `json:"publishable_key"`
}
