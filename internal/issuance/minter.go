package issuance

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Minter abstracts the external mint capability. The returned transaction id
// is the single source of truth for a project's proof; the core never
// fabricates one outside the sandbox implementation below.
type Minter interface {
	Mint(ctx context.Context, projectID uuid.UUID, creditQuantity float64) (string, error)
}

// LedgerHTTPMinter mints through a ledger bridge service over HTTP.
type LedgerHTTPMinter struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type ledgerMintResponse struct {
	TransactionID string `json:"transaction_id"`
}

func (m *LedgerHTTPMinter) Mint(ctx context.Context, projectID uuid.UUID, creditQuantity float64) (string, error) {
	if m.Client == nil {
		m.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if m.BaseURL == "" {
		return "", fmt.Errorf("%w: LEDGER_BRIDGE_URL is not set", ErrMintUnavailable)
	}
	url := strings.TrimRight(m.BaseURL, "/") + "/v1/mint"

	bodyBytes, _ := json.Marshal(map[string]interface{}{
		"project_id":      projectID.String(),
		"credit_quantity": creditQuantity,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.APIKey)
	}

	resp, err := m.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMintUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", fmt.Errorf("%w: status %d body: %s", ErrMintRejected, resp.StatusCode, string(respBody))
	default:
		return "", fmt.Errorf("%w: status %d body: %s", ErrMintUnavailable, resp.StatusCode, string(respBody))
	}

	var data ledgerMintResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return "", fmt.Errorf("%w: response decode: %v", ErrMintRejected, err)
	}
	if data.TransactionID == "" {
		return "", fmt.Errorf("%w: ledger returned an empty transaction id", ErrMintRejected)
	}
	return data.TransactionID, nil
}

// SandboxMinter synthesizes a random transaction hash locally. It exists only
// for environments without a ledger bridge and must never be used in
// production.
type SandboxMinter struct{}

func (SandboxMinter) Mint(ctx context.Context, projectID uuid.UUID, creditQuantity float64) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMintUnavailable, err)
	}
	return "0x" + hex.EncodeToString(b), nil
}
