package bin

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openedu/learnhub/internal/logger"
)

const (
	configuredPollAttempts = 10
	configuredPollInterval = 100 * time.Millisecond
)

// configPayload matches the /api/config bootstrap endpoint.
type configPayload struct {
	BinID  string `json:"binId"`
	APIKey string `json:"apiKey"`
}

// Bootstrap fetches bin credentials from a configuration endpoint and
// injects them into the client. Intended to run in its own goroutine at
// startup; callers that need the credentials use WaitConfigured.
func (c *Client) Bootstrap(ctx context.Context, endpoint string) error {
	var payload configPayload
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(endpoint)

	if err != nil {
		return fmt.Errorf("failed to fetch bootstrap config: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from config endpoint", resp.StatusCode())
	}

	if payload.BinID == "" || payload.APIKey == "" {
		return fmt.Errorf("config endpoint returned incomplete credentials")
	}

	c.SetCredentials(payload.BinID, payload.APIKey)
	logger.Get().Info().Msg("Bin credentials loaded from config endpoint")
	return nil
}

// WaitConfigured polls IsConfigured with a bounded budget (10 attempts at
// 100ms) and reports whether credentials arrived in time. Callers that skip
// the wait may observe IsConfigured returning false prematurely while the
// bootstrap is still in flight.
func (c *Client) WaitConfigured(ctx context.Context) bool {
	for i := 0; i < configuredPollAttempts; i++ {
		if c.IsConfigured() {
			return true
		}
		select {
		case <-ctx.Done():
			return c.IsConfigured()
		case <-time.After(configuredPollInterval):
		}
	}
	return c.IsConfigured()
}
