package gateway

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

// CheckoutRequest mirrors the Paymennt web-checkout payload. Field names are
// dictated by the gateway API, including the lowercase item keys.
type CheckoutRequest struct {
	RequestID       string   `json:"requestId"`
	OrderID         string   `json:"orderId"`
	Currency        string   `json:"currency"`
	Amount          float64  `json:"amount"`
	Totals          Totals   `json:"totals"`
	Items           []Item   `json:"items"`
	Customer        Customer `json:"customer"`
	BillingAddress  Address  `json:"billingAddress"`
	DeliveryAddress Address  `json:"deliveryAddress"`
	ReturnURL       string   `json:"returnUrl"`
	Language        string   `json:"language"`
}

type Totals struct {
	Subtotal             float64 `json:"subtotal"`
	Tax                  float64 `json:"tax"`
	Shipping             float64 `json:"shipping"`
	Handling             float64 `json:"handling"`
	Discount             float64 `json:"discount"`
	SkipTotalsValidation bool    `json:"skipTotalsValidation"`
}

type Item struct {
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	UnitPrice float64 `json:"unitprice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"linetotal"`
}

type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Address struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Set      bool   `json:"set"`
}

type CheckoutResult struct {
	RedirectURL   string
	TransactionID string
	Raw           json.RawMessage
}

type Config struct {
	APIURL    string
	APIKey    string
	APISecret string
	Timeout   time.Duration
}

// Client calls the Paymennt REST API. A bounded timeout keeps a stuck
// gateway from hanging booking requests.
type Client struct {
	apiURL    string
	apiKey    string
	apiSecret string
	http      *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiURL:    cfg.APIURL,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		http:      &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (CheckoutResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CheckoutResult{}, domain.InternalError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return CheckoutResult{}, domain.InternalError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Paymennt-Api-Key", c.apiKey)
	httpReq.Header.Set("X-Paymennt-Api-Secret", c.apiSecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return CheckoutResult{}, domain.UpstreamError{Service: "paymennt", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return CheckoutResult{}, domain.UpstreamError{Service: "paymennt", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CheckoutResult{}, domain.UpstreamError{
			Service: "paymennt",
			Payload: string(raw),
			Err:     fmt.Errorf("checkout returned status %d", resp.StatusCode),
		}
	}

	var parsed struct {
		Result struct {
			ID          string `json:"id"`
			RedirectURL string `json:"redirectUrl"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return CheckoutResult{}, domain.UpstreamError{Service: "paymennt", Payload: string(raw), Err: err}
	}
	if parsed.Result.RedirectURL == "" {
		return CheckoutResult{}, domain.UpstreamError{
			Service: "paymennt",
			Payload: string(raw),
			Err:     fmt.Errorf("checkout response missing redirectUrl"),
		}
	}

	return CheckoutResult{
		RedirectURL:   parsed.Result.RedirectURL,
		TransactionID: parsed.Result.ID,
		Raw:           raw,
	}, nil
}
