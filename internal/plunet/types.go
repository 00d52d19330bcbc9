package plunet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote statuses as reported by the translation backend.
const (
	StatusNewAuto          = "New (auto)"
	StatusInPreparation    = "In preparation"
	StatusReview           = "Review before submission"
	StatusPending          = "Pending"
	StatusExpired          = "Expired"
	StatusRevised          = "Revised"
	StatusRejected         = "Rejected"
	StatusAccepted         = "Accepted"
	StatusChangedIntoOrder = "Changed into order"
	StatusCanceled         = "Canceled"
)

// AddressTypeInvoice is the only address type this application manages.
const AddressTypeInvoice = "Invoice"

// PaymentMethodBankTransfer is the fixed backend payment method written with
// every payment-information update.
const PaymentMethodBankTransfer = "Bank transfer"

// Quote is a priced translation-service proposal.
type Quote struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

// Customer owns quotes, addresses and payment information.
type Customer struct {
	ID            int    `json:"id"`
	FormOfAddress string `json:"formOfAddress"`
	Email         string `json:"email"`
}

// Contact is an optional person linked to a quote; when present, it takes
// priority over the customer as the recipient of customer-facing mail.
type Contact struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

// AddressSummary is one entry of a customer's address list.
type AddressSummary struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// AddressUpdate carries the fields written to an Invoice address.
type AddressUpdate struct {
	Type    string `json:"type"`
	Street  string `json:"street"`
	ZipCode string `json:"zipCode"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// PaymentInformation is the customer's billing/tax metadata.
type PaymentInformation struct {
	PaymentMethod  string `json:"paymentMethod"`
	PreselectedTax string `json:"preselectedTax"`
	SalesTaxID     string `json:"salesTaxId,omitempty"`
}

// Item is one billable line of a quote.
type Item struct {
	ID         int             `json:"id"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// StatusError reports a backend call that completed over HTTP but was
// rejected by the backend itself. The backend's convention is 0 for success
// and any other integer for failure, with no structured error payload.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("plunet %s: backend status %d", e.Op, e.Status)
}

// IsStatusError reports whether err is a backend rejection (as opposed to a
// transport or decoding failure).
func IsStatusError(err error) bool {
	_, ok := err.(*StatusError)
	return ok
}
