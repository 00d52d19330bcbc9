// Package service implements the payment orchestration flows: address
// capture, checkout-link generation and payment confirmation. All state lives
// in the remote systems; every call re-fetches what it needs.
package service

import (
	"context"
	"fmt"
	"strings"

	"quotepay_backend/internal/mollie"
	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/config"
	"quotepay_backend/platform/events"
	"quotepay_backend/platform/logger"
)

// Backend is the translation-backend surface the payment flows consume.
type Backend interface {
	GetQuoteByNumber(ctx context.Context, number string) (plunet.Quote, error)
	GetQuoteByID(ctx context.Context, quoteID int) (plunet.Quote, error)
	GetQuoteCustomerID(ctx context.Context, quoteID int) (int, error)
	GetQuoteContactID(ctx context.Context, quoteID int) (int, error)
	GetContact(ctx context.Context, contactID int) (plunet.Contact, error)
	GetCustomer(ctx context.Context, customerID int) (plunet.Customer, error)
	ListCustomerAddresses(ctx context.Context, customerID int) ([]plunet.AddressSummary, error)
	CreateCustomerAddress(ctx context.Context, customerID int, country, addressType string) (int, error)
	UpdateAddress(ctx context.Context, addressID int, update plunet.AddressUpdate) error
	GetAddressCountry(ctx context.Context, addressID int) (string, error)
	GetAddressCity(ctx context.Context, addressID int) (string, error)
	GetPaymentInformation(ctx context.Context, customerID int) (plunet.PaymentInformation, error)
	SetPaymentInformation(ctx context.Context, customerID int, info plunet.PaymentInformation) error
	ListQuoteItems(ctx context.Context, quoteID int) ([]plunet.Item, error)
	SetQuoteStatus(ctx context.Context, quoteID int, status string) error
}

// CheckoutProvider is the hosted-checkout surface the payment flows consume.
type CheckoutProvider interface {
	CreatePayment(ctx context.Context, req mollie.CreatePayment) (mollie.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (mollie.Payment, error)
}

// Service provides the payment orchestration logic.
type Service struct {
	backend  Backend
	checkout CheckoutProvider
	bus      events.Bus
	urls     config.PaymentPageConfig
	log      *logger.Logger
}

// New creates a new payments service.
func New(backend Backend, checkout CheckoutProvider, bus events.Bus, urls config.PaymentPageConfig, log *logger.Logger) *Service {
	return &Service{
		backend:  backend,
		checkout: checkout,
		bus:      bus,
		urls:     urls,
		log:      log,
	}
}

// loadPayableQuote fetches a quote by number and enforces the status gate:
// only Pending and Rejected quotes may be paid. Every other status is
// terminal for payment and maps to its own error code; the operator is
// alerted because the customer clearly tried to pay.
func (s *Service) loadPayableQuote(ctx context.Context, quoteNumber string) (plunet.Quote, error) {
	quote, err := s.backend.GetQuoteByNumber(ctx, quoteNumber)
	if err != nil {
		if plunet.IsStatusError(err) {
			return plunet.Quote{}, apperr.Business(transport.CodeQuoteNotExist, "Quote does not exist.")
		}
		return plunet.Quote{}, err
	}

	if quote.Status == plunet.StatusPending || quote.Status == plunet.StatusRejected {
		return quote, nil
	}

	s.bus.Publish(ctx, QuoteStatusBlockedEvent{
		BaseEvent:   events.NewBaseEvent(),
		QuoteNumber: quoteNumber,
		Status:      quote.Status,
	})

	switch quote.Status {
	case plunet.StatusExpired:
		return plunet.Quote{}, apperr.Business(transport.CodeQuoteExpired, "The quote is expired.")
	case plunet.StatusAccepted:
		return plunet.Quote{}, apperr.Business(transport.CodeQuoteAccepted, "The quote is already accepted.")
	case plunet.StatusChangedIntoOrder:
		return plunet.Quote{}, apperr.Business(transport.CodeQuoteChangedIntoOrder, "The quote is changed into an order.")
	default:
		return plunet.Quote{}, apperr.Business(transport.CodeQuoteNotPending, "The quote is not payable in its current status.")
	}
}

// resolveCustomerID resolves the customer linked to a quote, alerting the
// operator when the link is missing.
func (s *Service) resolveCustomerID(ctx context.Context, quoteID int, quoteNumber string) (int, error) {
	customerID, err := s.backend.GetQuoteCustomerID(ctx, quoteID)
	if err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, CustomerLinkMissingEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: quoteNumber,
			})
			return 0, apperr.Business(transport.CodeNoQuoteCustomer, "No customer is linked to the quote.")
		}
		return 0, err
	}
	return customerID, nil
}

// findInvoiceAddress returns the customer's single Invoice address id, or
// found=false when none exists yet. More than one Invoice address violates
// the single-slot assumption and fails loudly instead of silently indexing.
func (s *Service) findInvoiceAddress(ctx context.Context, customerID int, quoteNumber string) (addressID int, found bool, err error) {
	addresses, err := s.backend.ListCustomerAddresses(ctx, customerID)
	if err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, AddressLookupFailedEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: quoteNumber,
			})
			return 0, false, apperr.Business(transport.CodeNoAddressIDs, "The customer's addresses could not be read.")
		}
		return 0, false, err
	}

	var invoiceIDs []int
	for _, address := range addresses {
		if address.Type == plunet.AddressTypeInvoice {
			invoiceIDs = append(invoiceIDs, address.ID)
		}
	}

	switch len(invoiceIDs) {
	case 0:
		return 0, false, nil
	case 1:
		return invoiceIDs[0], true, nil
	default:
		s.bus.Publish(ctx, InvoiceAddressConflictEvent{
			BaseEvent:   events.NewBaseEvent(),
			QuoteNumber: quoteNumber,
			Count:       len(invoiceIDs),
		})
		return 0, false, apperr.Internal(transport.CodeMultipleInvoiceAddresses,
			fmt.Sprintf("customer %d has %d invoice addresses, expected at most one", customerID, len(invoiceIDs)))
	}
}

// localePath converts an nl_NL-style locale into the lowercase dashed form
// used in payment-page paths and the webhook query (nl_NL -> nl-nl).
func localePath(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}
