// Package mollie provides a client for the hosted checkout provider. It
// covers the two calls this application needs: creating a payment session and
// retrieving a payment's status.
package mollie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PaymentStatusPaid is the only provider status that counts as a completed
// payment. Everything else (open, pending, canceled, failed, expired) is not
// collectable.
const PaymentStatusPaid = "paid"

// Client is an HTTP client for the checkout provider API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config configures the checkout provider client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new checkout provider client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Amount is a fixed-point monetary value. Value is a 2-decimal string; the
// provider rejects binary-float artifacts like "121.000000000001".
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// CreatePayment is the request to open a hosted checkout session.
type CreatePayment struct {
	Amount      Amount   `json:"amount"`
	Description string   `json:"description"`
	RedirectURL string   `json:"redirectUrl"`
	WebhookURL  string   `json:"webhookUrl"`
	Locale      string   `json:"locale"`
	Methods     []string `json:"method"`
}

// Payment is the provider-side payment resource.
type Payment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  struct {
		Checkout struct {
			Href string `json:"href"`
		} `json:"checkout"`
	} `json:"_links"`
}

// CheckoutURL returns the hosted checkout page URL for this payment.
func (p Payment) CheckoutURL() string {
	return p.Links.Checkout.Href
}

// apiError is the provider's error body.
type apiError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mollie %s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("mollie %s: create request: %w", op, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mollie %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Detail != "" {
			return fmt.Errorf("mollie %s: provider returned %d: %s", op, resp.StatusCode, apiErr.Detail)
		}
		return fmt.Errorf("mollie %s: provider returned %d", op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mollie %s: decode response: %w", op, err)
	}

	return nil
}

// CreatePayment opens a hosted checkout session and returns the payment,
// including its checkout URL.
func (c *Client) CreatePayment(ctx context.Context, req CreatePayment) (Payment, error) {
	var payment Payment
	if err := c.do(ctx, "createPayment", http.MethodPost, "/payments", req, &payment); err != nil {
		return Payment{}, err
	}
	return payment, nil
}

// GetPayment retrieves a payment by its provider id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (Payment, error) {
	var payment Payment
	if err := c.do(ctx, "getPayment", http.MethodGet, "/payments/"+url.PathEscape(paymentID), nil, &payment); err != nil {
		return Payment{}, err
	}
	return payment, nil
}
