package issuance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerHTTPMinter_Success(t *testing.T) {
	projectID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/mint", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, projectID.String(), body["project_id"])
		assert.Equal(t, 50.0, body["credit_quantity"])

		_ = json.NewEncoder(w).Encode(map[string]string{"transaction_id": "0xledger123"})
	}))
	defer srv.Close()

	m := &LedgerHTTPMinter{BaseURL: srv.URL, APIKey: "test-key"}
	txID, err := m.Mint(context.Background(), projectID, 50)
	require.NoError(t, err)
	assert.Equal(t, "0xledger123", txID)
}

func TestLedgerHTTPMinter_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := &LedgerHTTPMinter{BaseURL: srv.URL}
	_, err := m.Mint(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrMintRejected)
}

func TestLedgerHTTPMinter_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	m := &LedgerHTTPMinter{BaseURL: srv.URL}
	_, err := m.Mint(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrMintUnavailable)
}

func TestLedgerHTTPMinter_EmptyTransactionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"transaction_id": ""})
	}))
	defer srv.Close()

	m := &LedgerHTTPMinter{BaseURL: srv.URL}
	_, err := m.Mint(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrMintRejected)
}

func TestLedgerHTTPMinter_NoBaseURL(t *testing.T) {
	m := &LedgerHTTPMinter{}
	_, err := m.Mint(context.Background(), uuid.New(), 10)
	assert.ErrorIs(t, err, ErrMintUnavailable)
}
