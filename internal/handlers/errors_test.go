package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GROUPGO_BACK-END/internal/payments"
	"GROUPGO_BACK-END/internal/store"
	"GROUPGO_BACK-END/internal/utils"
)

func TestWriteStoreError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not authenticated maps to 401", store.ErrNotAuthenticated, http.StatusUnauthorized},
		{"not found maps to 404", store.ErrNotFound, http.StatusNotFound},
		{"wrapped not found keeps the mapping", fmt.Errorf("trip abc: %w", store.ErrNotFound), http.StatusNotFound},
		{"not owner maps to 403", store.ErrNotOwner, http.StatusForbidden},
		{"organizer removal maps to 409", store.ErrCannotRemoveOrganizer, http.StatusConflict},
		{"closed invitation maps to 409", store.ErrInvitationClosed, http.StatusConflict},
		{"unknown errors map to 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeStoreError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body utils.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}

	t.Run("payment backend failures map to 502 with raw message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeStoreError(rec, &payments.BackendError{StatusCode: 402, Message: "card setup unavailable"})
		assert.Equal(t, http.StatusBadGateway, rec.Code)

		var body utils.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "card setup unavailable", body.Message)
	})
}
