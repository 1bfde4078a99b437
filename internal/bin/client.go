package bin

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/openedu/learnhub/internal/config"
	"github.com/openedu/learnhub/internal/logger"
	"github.com/openedu/learnhub/internal/models"
)

// Client wraps a single hosted JSON bin holding the articles document.
// Writes are unconditional full-document overwrites: there is no version
// token, so two concurrent writers clobber each other (last write wins).
// There are no retries; a failed call is logged and abandoned.
type Client struct {
	client  *resty.Client
	baseURL string

	mu     sync.RWMutex
	binID  string
	apiKey string
}

// document is the bin payload: one object with an articles array.
type document struct {
	Articles []models.Article `json:"articles"`
}

// binResponse matches the read endpoint envelope.
type binResponse struct {
	Record document `json:"record"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client:  resty.New().SetTimeout(cfg.BinTimeout),
		baseURL: cfg.BinBaseURL,
		binID:   cfg.BinID,
		apiKey:  cfg.BinAPIKey,
	}
}

// IsConfigured reports whether both the bin id and the write key are present.
// When not configured, reads return empty and writes are successful no-ops.
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.binID != "" && c.apiKey != ""
}

// SetCredentials injects credentials after construction, e.g. from the
// bootstrap endpoint.
func (c *Client) SetCredentials(binID, apiKey string) {
	c.mu.Lock()
	c.binID = binID
	c.apiKey = apiKey
	c.mu.Unlock()
}

func (c *Client) credentials() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.binID, c.apiKey
}

// FetchAll retrieves the current articles document. It fails soft: the
// returned slice is never nil, and on any transport, HTTP, or parse error it
// is empty. The error is returned alongside for callers that surface it.
func (c *Client) FetchAll(ctx context.Context) ([]models.Article, error) {
	if !c.IsConfigured() {
		return []models.Article{}, nil
	}

	binID, apiKey := c.credentials()

	var out binResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Master-Key", apiKey).
		SetResult(&out).
		Get(fmt.Sprintf("%s/%s/latest", c.baseURL, binID))

	if err != nil {
		logger.Get().Error().Err(err).Msg("Error fetching articles from bin")
		return []models.Article{}, fmt.Errorf("failed to fetch bin document: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		logger.Get().Error().Int("status", resp.StatusCode()).Msg("Unexpected status fetching bin document")
		return []models.Article{}, fmt.Errorf("unexpected status code %d from bin read", resp.StatusCode())
	}

	if out.Record.Articles == nil {
		return []models.Article{}, nil
	}
	return out.Record.Articles, nil
}

// ReplaceAll overwrites the remote document with the caller-supplied full
// collection. Not a diff or patch: every write transmits everything. When
// not configured it resolves successfully without touching the network.
func (c *Client) ReplaceAll(ctx context.Context, articles []models.Article) error {
	if !c.IsConfigured() {
		logger.Get().Warn().Msg("Bin not configured, write kept local only")
		return nil
	}

	binID, apiKey := c.credentials()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Master-Key", apiKey).
		SetBody(document{Articles: articles}).
		Put(fmt.Sprintf("%s/%s", c.baseURL, binID))

	if err != nil {
		return fmt.Errorf("failed to write bin document: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from bin write", resp.StatusCode())
	}

	return nil
}
