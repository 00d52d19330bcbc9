// Package transport defines the wire-level request/response types and the
// stable error codes of the payment endpoints.
package transport

// AddressRequest is the JSON body of POST /payments/address.
type AddressRequest struct {
	Quote      string `json:"quote"`
	Street     string `json:"street"`
	ZipCode    string `json:"zipCode"`
	City       string `json:"city"`
	Country    string `json:"country"`
	SalesTaxID string `json:"salesTaxId"`
}

// LinkResponse is the body of a successful GET /payments/link.
type LinkResponse struct {
	URL string `json:"url"`
}

// Supported locales of the link endpoint. The payment page itself and the
// status webhook use the lowercase dashed form (nl-nl, en-gb).
const (
	LocaleDutch   = "nl_NL"
	LocaleEnglish = "en_GB"
)
