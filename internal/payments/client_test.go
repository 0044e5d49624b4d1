package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GROUPGO_BACK-END/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestCreateSetupIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/stripe/setup-intent", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "uid-1", body["uid"])
		assert.Equal(t, "friend@example.com", body["email"])

		json.NewEncoder(w).Encode(map[string]string{
			"customerId":              "cus_123",
			"setupIntentClientSecret": "seti_secret",
			"ephemeralKey":            "ek_test",
			"publishableKey":          "pk_test",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger(t))
	creds, err := client.CreateSetupIntent(context.Background(), "uid-1", "friend@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", creds.CustomerID)
	assert.Equal(t, "seti_secret", creds.SetupIntentClientSecret)
	assert.Equal(t, "ek_test", creds.EphemeralKey)
	assert.Equal(t, "pk_test", creds.PublishableKey)
}

func TestListPaymentMethods(t *testing.T) {
	t.Run("marks the default card and passes lookup params", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/stripe/payment-methods", r.URL.Path)
			assert.Equal(t, "uid-1", r.URL.Query().Get("uid"))
			assert.Equal(t, "friend@example.com", r.URL.Query().Get("email"))

			json.NewEncoder(w).Encode(map[string]interface{}{
				"customerId":           "cus_123",
				"defaultPaymentMethod": "pm_2",
				"paymentMethods": []map[string]interface{}{
					{"id": "pm_1", "brand": "visa", "last4": "4242", "exp_month": 4, "exp_year": 2028},
					{"id": "pm_2", "brand": "mastercard", "last4": "4444", "exp_month": 9, "exp_year": 2027},
				},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, testLogger(t))
		customerID, methods, err := client.ListPaymentMethods(context.Background(), "", "uid-1", "friend@example.com")
		require.NoError(t, err)
		assert.Equal(t, "cus_123", customerID)
		require.Len(t, methods, 2)
		assert.Equal(t, "pm_1", methods[0].ID)
		assert.False(t, methods[0].IsDefault)
		assert.Equal(t, "mastercard", methods[1].Brand)
		assert.True(t, methods[1].IsDefault)
	})

	t.Run("prefers a known customer id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "cus_123", r.URL.Query().Get("customerId"))
			json.NewEncoder(w).Encode(map[string]interface{}{
				"customerId":     "cus_123",
				"paymentMethods": []map[string]interface{}{},
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, testLogger(t))
		customerID, methods, err := client.ListPaymentMethods(context.Background(), "cus_123", "uid-1", "")
		require.NoError(t, err)
		assert.Equal(t, "cus_123", customerID)
		assert.Empty(t, methods)
	})
}

func TestSetDefaultPaymentMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stripe/payment-methods/default", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pm_1", body["paymentMethodId"])
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger(t))
	err := client.SetDefaultPaymentMethod(context.Background(), "uid-1", "friend@example.com", "pm_1")
	assert.NoError(t, err)
}

func TestDeletePaymentMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stripe/payment-methods/delete", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pm_1", body["paymentMethodId"])
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger(t))
	err := client.DeletePaymentMethod(context.Background(), "uid-1", "friend@example.com", "pm_1")
	assert.NoError(t, err)
}

func TestBackendErrorPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte("card setup unavailable"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger(t))
	_, err := client.CreateSetupIntent(context.Background(), "uid-1", "friend@example.com")
	require.Error(t, err)

	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusPaymentRequired, backendErr.StatusCode)
	assert.Contains(t, backendErr.Message, "card setup unavailable")
}
