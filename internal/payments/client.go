package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"GROUPGO_BACK-END/internal/models"
	"GROUPGO_BACK-END/pkg/logger"
)

// Client is a stateless relay to the Stripe payment backend. No card data is
// stored on this side; every call fetches fresh from the backend, which does
// its own customer lookup-or-create by uid metadata. No retries.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a relay client for the backend at baseURL.
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log.WithField("component", "payments"),
	}
}

// BackendError is a non-2xx answer from the payment backend. The message is
// the raw response text, passed through opaquely.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("payment backend: %d %s", e.StatusCode, e.Message)
}

type setupIntentResponse struct {
	CustomerID              string `json:"customerId"`
	SetupIntentClientSecret string `json:"setupIntentClientSecret"`
	EphemeralKey            string `json:"ephemeralKey"`
	PublishableKey          string `json:"publishableKey"`
}

type paymentMethodsResponse struct {
	CustomerID           string `json:"customerId"`
	DefaultPaymentMethod string `json:"defaultPaymentMethod"`
	PaymentMethods       []struct {
		ID       string `json:"id"`
		Brand    string `json:"brand"`
		Last4    string `json:"last4"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
	} `json:"paymentMethods"`
}

// CreateSetupIntent asks the backend for a card setup intent plus the
// ephemeral credentials the mobile payment sheet needs.
func (c *Client) CreateSetupIntent(ctx context.Context, uid, email string) (*models.SetupIntentCredentials, error) {
	var resp setupIntentResponse
	err := c.post(ctx, "/stripe/setup-intent", map[string]string{"uid": uid, "email": email}, &resp)
	if err != nil {
		return nil, err
	}
	return &models.SetupIntentCredentials{
		CustomerID:              resp.CustomerID,
		SetupIntentClientSecret: resp.SetupIntentClientSecret,
		EphemeralKey:            resp.EphemeralKey,
		PublishableKey:          resp.PublishableKey,
	}, nil
}

// ListPaymentMethods fetches the cards linked to a customer, either by
// customer id or by uid+email lookup. The returned customer id is whichever
// customer the backend resolved.
func (c *Client) ListPaymentMethods(ctx context.Context, customerID, uid, email string) (string, []models.PaymentMethodSummary, error) {
	params := url.Values{}
	if customerID != "" {
		params.Set("customerId", customerID)
	}
	if uid != "" {
		params.Set("uid", uid)
	}
	if email != "" {
		params.Set("email", email)
	}

	endpoint := c.baseURL + "/stripe/payment-methods"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", nil, err
	}

	var resp paymentMethodsResponse
	if err := c.do(req, &resp); err != nil {
		return "", nil, err
	}

	methods := make([]models.PaymentMethodSummary, 0, len(resp.PaymentMethods))
	for _, pm := range resp.PaymentMethods {
		methods = append(methods, models.PaymentMethodSummary{
			ID:        pm.ID,
			Brand:     pm.Brand,
			Last4:     pm.Last4,
			ExpMonth:  pm.ExpMonth,
			ExpYear:   pm.ExpYear,
			IsDefault: pm.ID == resp.DefaultPaymentMethod && pm.ID != "",
		})
	}
	return resp.CustomerID, methods, nil
}

// SetDefaultPaymentMethod marks a card as the customer's default.
func (c *Client) SetDefaultPaymentMethod(ctx context.Context, uid, email, paymentMethodID string) error {
	return c.post(ctx, "/stripe/payment-methods/default", map[string]string{
		"uid":             uid,
		"email":           email,
		"paymentMethodId": paymentMethodID,
	}, nil)
}

// DeletePaymentMethod detaches a card from the customer.
func (c *Client) DeletePaymentMethod(ctx context.Context, uid, email, paymentMethodID string) error {
	return c.post(ctx, "/stripe/payment-methods/delete", map[string]string{
		"uid":             uid,
		"email":           email,
		"paymentMethodId": paymentMethodID,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, body map[string]string, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment backend request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("payment backend response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.log.WithFields(map[string]interface{}{
			"status": res.StatusCode,
			"path":   req.URL.Path,
		}).Warn("payment backend error")
		return &BackendError{StatusCode: res.StatusCode, Message: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode payment backend response: %w", err)
	}
	return nil
}
