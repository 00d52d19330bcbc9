// Package plunet provides a client for the translation backend that owns
// quotes, customers, addresses and payment information. The application holds
// no local state; every workflow re-fetches what it needs through this client.
package plunet

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

// Client is an HTTP client for the translation backend API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config configures the translation backend client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new translation backend client.
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

// envelope is the backend's uniform response wrapper: statusCode 0 means
// success, anything else is a failure without further detail.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("plunet %s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("plunet %s: create request: %w", op, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("plunet %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("plunet %s: backend returned %d: %s", op, resp.StatusCode, string(raw))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("plunet %s: decode response: %w", op, err)
	}

	if env.StatusCode != 0 {
		return nil, &StatusError{Op: op, Status: env.StatusCode}
	}

	return env.Data, nil
}

// decode unmarshals the envelope data of a successful call into T.
func decode[T any](op string, raw json.RawMessage) (T, error) {
	var value T
	if len(raw) == 0 || string(raw) == "null" {
		return value, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, fmt.Errorf("plunet %s: decode data: %w", op, err)
	}
	return value, nil
}

// GetQuoteByNumber looks up a quote by its human-readable number.
func (c *Client) GetQuoteByNumber(ctx context.Context, number string) (Quote, error) {
	raw, err := c.do(ctx, "getQuoteByNumber", http.MethodGet, "/quotes?number="+url.QueryEscape(number), nil)
	if err != nil {
		return Quote{}, err
	}
	return decode[Quote]("getQuoteByNumber", raw)
}

// GetQuoteByID looks up a quote by its numeric id.
func (c *Client) GetQuoteByID(ctx context.Context, quoteID int) (Quote, error) {
	raw, err := c.do(ctx, "getQuoteById", http.MethodGet, fmt.Sprintf("/quotes/%d", quoteID), nil)
	if err != nil {
		return Quote{}, err
	}
	return decode[Quote]("getQuoteById", raw)
}

// GetQuoteCustomerID resolves the customer linked to a quote.
func (c *Client) GetQuoteCustomerID(ctx context.Context, quoteID int) (int, error) {
	raw, err := c.do(ctx, "getQuoteCustomer", http.MethodGet, fmt.Sprintf("/quotes/%d/customer", quoteID), nil)
	if err != nil {
		return 0, err
	}
	return decode[int]("getQuoteCustomer", raw)
}

// GetQuoteContactID resolves the contact linked to a quote, if any.
func (c *Client) GetQuoteContactID(ctx context.Context, quoteID int) (int, error) {
	raw, err := c.do(ctx, "getQuoteContact", http.MethodGet, fmt.Sprintf("/quotes/%d/contact", quoteID), nil)
	if err != nil {
		return 0, err
	}
	return decode[int]("getQuoteContact", raw)
}

// GetContact reads a contact record.
func (c *Client) GetContact(ctx context.Context, contactID int) (Contact, error) {
	raw, err := c.do(ctx, "getContact", http.MethodGet, fmt.Sprintf("/contacts/%d", contactID), nil)
	if err != nil {
		return Contact{}, err
	}
	return decode[Contact]("getContact", raw)
}

// GetCustomer reads a customer record.
func (c *Client) GetCustomer(ctx context.Context, customerID int) (Customer, error) {
	raw, err := c.do(ctx, "getCustomer", http.MethodGet, fmt.Sprintf("/customers/%d", customerID), nil)
	if err != nil {
		return Customer{}, err
	}
	return decode[Customer]("getCustomer", raw)
}

// ListCustomerAddresses returns the customer's address list with types.
func (c *Client) ListCustomerAddresses(ctx context.Context, customerID int) ([]AddressSummary, error) {
	raw, err := c.do(ctx, "getCustomerAllAddresses", http.MethodGet, fmt.Sprintf("/customers/%d/addresses", customerID), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]AddressSummary]("getCustomerAllAddresses", raw)
}

// CreateCustomerAddress creates a new address of the given type and returns
// its id.
func (c *Client) CreateCustomerAddress(ctx context.Context, customerID int, country, addressType string) (int, error) {
	body := map[string]string{"country": country, "type": addressType}
	raw, err := c.do(ctx, "addCustomerAddress", http.MethodPost, fmt.Sprintf("/customers/%d/addresses", customerID), body)
	if err != nil {
		return 0, err
	}
	return decode[int]("addCustomerAddress", raw)
}

// UpdateAddress overwrites an address with the given fields.
func (c *Client) UpdateAddress(ctx context.Context, addressID int, update AddressUpdate) error {
	_, err := c.do(ctx, "updateCustomerAddress", http.MethodPut, fmt.Sprintf("/addresses/%d", addressID), update)
	return err
}

// GetAddressCountry reads an address's country. The backend reports a
// missing value through its own status code; absence is returned as the
// empty string, not an error, so callers can branch on it.
func (c *Client) GetAddressCountry(ctx context.Context, addressID int) (string, error) {
	raw, err := c.do(ctx, "getCustomerAddressCountry", http.MethodGet, fmt.Sprintf("/addresses/%d/country", addressID), nil)
	if err != nil {
		if IsStatusError(err) {
			return "", nil
		}
		return "", err
	}
	return decode[string]("getCustomerAddressCountry", raw)
}

// GetAddressCity reads an address's city, with the same absence convention
// as GetAddressCountry.
func (c *Client) GetAddressCity(ctx context.Context, addressID int) (string, error) {
	raw, err := c.do(ctx, "getCustomerAddressCity", http.MethodGet, fmt.Sprintf("/addresses/%d/city", addressID), nil)
	if err != nil {
		if IsStatusError(err) {
			return "", nil
		}
		return "", err
	}
	return decode[string]("getCustomerAddressCity", raw)
}

// GetPaymentInformation reads the customer's billing/tax metadata.
func (c *Client) GetPaymentInformation(ctx context.Context, customerID int) (PaymentInformation, error) {
	raw, err := c.do(ctx, "getCustomerPaymentInformation", http.MethodGet, fmt.Sprintf("/customers/%d/payment-information", customerID), nil)
	if err != nil {
		return PaymentInformation{}, err
	}
	return decode[PaymentInformation]("getCustomerPaymentInformation", raw)
}

// SetPaymentInformation overwrites the customer's billing/tax metadata.
func (c *Client) SetPaymentInformation(ctx context.Context, customerID int, info PaymentInformation) error {
	_, err := c.do(ctx, "setCustomerPaymentInformation", http.MethodPut, fmt.Sprintf("/customers/%d/payment-information", customerID), info)
	return err
}

// ListQuoteItems returns the billable items of a quote.
func (c *Client) ListQuoteItems(ctx context.Context, quoteID int) ([]Item, error) {
	raw, err := c.do(ctx, "getItems", http.MethodGet, fmt.Sprintf("/quotes/%d/items", quoteID), nil)
	if err != nil {
		return nil, err
	}
	return decode[[]Item]("getItems", raw)
}

// SetQuoteStatus writes a new quote status.
func (c *Client) SetQuoteStatus(ctx context.Context, quoteID int, status string) error {
	body := map[string]string{"status": status}
	_, err := c.do(ctx, "setQuoteStatus", http.MethodPut, fmt.Sprintf("/quotes/%d/status", quoteID), body)
	return err
}
