package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/domain"
)

const defaultAPIURL = "https://api.resend.com/emails"

type Config struct {
	APIKey  string
	APIURL  string
	From    string
	Timeout time.Duration
}

// Client sends transactional email through the Resend REST API. An empty API
// key disables sending, which keeps local development quiet.
type Client struct {
	apiKey string
	apiURL string
	from   string
	http   *http.Client
}

func NewClient(cfg Config) *Client {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		from:   cfg.From,
		http:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) Enabled() bool { return c.apiKey != "" }

func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	if !c.Enabled() {
		return nil
	}
	payload := map[string]any{
		"from":    c.from,
		"to":      to,
		"subject": subject,
		"html":    html,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.InternalError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return domain.InternalError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.UpstreamError{Service: "resend", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.UpstreamError{
			Service: "resend",
			Payload: string(raw),
			Err:     fmt.Errorf("send returned status %d", resp.StatusCode),
		}
	}
	return nil
}
