package service

import "quotepay_backend/platform/events"

// Domain events published by the payment flows. The notification module
// subscribes to them and owns the operator/customer mail copy, keeping
// alerting out of the response path.

// EventQuoteStatusBlocked fires when a quote is in a status that does not
// allow payment.
const EventQuoteStatusBlocked = "payments.quote_status_blocked"

// QuoteStatusBlockedEvent carries the offending status for the alert mail.
type QuoteStatusBlockedEvent struct {
	events.BaseEvent
	QuoteNumber string
	Status      string
}

func (QuoteStatusBlockedEvent) EventName() string { return EventQuoteStatusBlocked }

// EventCustomerLinkMissing fires when a quote has no customer linked.
const EventCustomerLinkMissing = "payments.customer_link_missing"

type CustomerLinkMissingEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (CustomerLinkMissingEvent) EventName() string { return EventCustomerLinkMissing }

// EventAddressLookupFailed fires when the customer's address list cannot be
// read.
const EventAddressLookupFailed = "payments.address_lookup_failed"

type AddressLookupFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (AddressLookupFailedEvent) EventName() string { return EventAddressLookupFailed }

// EventInvoiceAddressConflict fires when the backend returns more than one
// Invoice address for a customer, violating the single-slot assumption.
const EventInvoiceAddressConflict = "payments.invoice_address_conflict"

type InvoiceAddressConflictEvent struct {
	events.BaseEvent
	QuoteNumber string
	Count       int
}

func (InvoiceAddressConflictEvent) EventName() string { return EventInvoiceAddressConflict }

// EventAddressCreateFailed fires when a new Invoice address cannot be
// created, usually because the customer record is open in the backend.
const EventAddressCreateFailed = "payments.address_create_failed"

type AddressCreateFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (AddressCreateFailedEvent) EventName() string { return EventAddressCreateFailed }

// EventAddressUpdateFailed fires when the Invoice address cannot be written.
const EventAddressUpdateFailed = "payments.address_update_failed"

type AddressUpdateFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (AddressUpdateFailedEvent) EventName() string { return EventAddressUpdateFailed }

// EventPaymentInfoWriteFailed fires when payment information cannot be
// written.
const EventPaymentInfoWriteFailed = "payments.payment_info_write_failed"

type PaymentInfoWriteFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (PaymentInfoWriteFailedEvent) EventName() string { return EventPaymentInfoWriteFailed }

// EventQuoteWithoutItems fires when a quote has no billable items and can
// therefore not be priced.
const EventQuoteWithoutItems = "payments.quote_without_items"

type QuoteWithoutItemsEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (QuoteWithoutItemsEvent) EventName() string { return EventQuoteWithoutItems }

// EventFormOfAddressLookupFailed fires when the customer's form of address
// cannot be read while resolving the unknown-address signal.
const EventFormOfAddressLookupFailed = "payments.form_of_address_lookup_failed"

type FormOfAddressLookupFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (FormOfAddressLookupFailedEvent) EventName() string { return EventFormOfAddressLookupFailed }

// EventCheckoutLinkFailed fires when the checkout provider rejects the
// payment session.
const EventCheckoutLinkFailed = "payments.checkout_link_failed"

type CheckoutLinkFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (CheckoutLinkFailedEvent) EventName() string { return EventCheckoutLinkFailed }

// EventQuotePaid fires when the provider has confirmed a payment, before the
// quote status is written. Drives the customer-facing confirmation mail.
const EventQuotePaid = "payments.quote_paid"

type QuotePaidEvent struct {
	events.BaseEvent
	QuoteNumber    string
	RecipientEmail string
	Language       string // "nl" or "en"
}

func (QuotePaidEvent) EventName() string { return EventQuotePaid }

// EventQuoteAccepted fires once the quote status has been set to Accepted
// after a confirmed payment.
const EventQuoteAccepted = "payments.quote_accepted"

type QuoteAcceptedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (QuoteAcceptedEvent) EventName() string { return EventQuoteAccepted }

// EventStatusWriteFailed fires when a paid quote could not be moved to
// Accepted; the operator must correct the record by hand.
const EventStatusWriteFailed = "payments.status_write_failed"

type StatusWriteFailedEvent struct {
	events.BaseEvent
	QuoteNumber string
}

func (StatusWriteFailedEvent) EventName() string { return EventStatusWriteFailed }
