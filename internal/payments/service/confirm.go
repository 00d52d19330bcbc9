package service

import (
	"context"

	"quotepay_backend/internal/mollie"
	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/events"
)

// ConfirmPayment handles the provider's asynchronous payment callback: it
// verifies the payment is actually paid, notifies the recipient, and moves
// the quote to Accepted. A failed status write does not fail the request —
// the money has moved — but the operator is alerted to correct the record.
func (s *Service) ConfirmPayment(ctx context.Context, quoteID int, paymentID, localeToken string) error {
	payment, err := s.checkout.GetPayment(ctx, paymentID)
	if err != nil {
		return apperr.Wrap(apperr.KindBusiness, transport.CodePaymentIDNotFound, "The payment id could not be resolved.", err)
	}
	if payment.Status != mollie.PaymentStatusPaid {
		return apperr.Business(transport.CodePaymentNotPaid, "The payment has not been paid.")
	}

	quote, err := s.backend.GetQuoteByID(ctx, quoteID)
	if err != nil {
		if plunet.IsStatusError(err) {
			return apperr.Business(transport.CodeQuoteDoesNotExist, "Quote does not exist.")
		}
		return err
	}

	language := "en"
	if localeToken == "nl-nl" {
		language = "nl"
	}

	// Mail must land before the status transition; the paid event is
	// published synchronously.
	if recipient := s.confirmationRecipient(ctx, quoteID); recipient != "" {
		// Handler failures are logged by the bus; a lost confirmation
		// mail must not undo a collected payment.
		_ = s.bus.PublishSync(ctx, QuotePaidEvent{
			BaseEvent:      events.NewBaseEvent(),
			QuoteNumber:    quote.Number,
			RecipientEmail: recipient,
			Language:       language,
		})
	}

	if err := s.backend.SetQuoteStatus(ctx, quote.ID, plunet.StatusAccepted); err != nil {
		s.log.BackendError("plunet", "setQuoteStatus", err)
		s.bus.Publish(ctx, StatusWriteFailedEvent{
			BaseEvent:   events.NewBaseEvent(),
			QuoteNumber: quote.Number,
		})
		return nil
	}

	s.bus.Publish(ctx, QuoteAcceptedEvent{
		BaseEvent:   events.NewBaseEvent(),
		QuoteNumber: quote.Number,
	})

	return nil
}

// confirmationRecipient resolves who receives the confirmation mail: the
// quote's contact when one is linked and has an email address, otherwise the
// customer. Lookup failures are tolerated — a missing recipient only means
// no mail is sent.
func (s *Service) confirmationRecipient(ctx context.Context, quoteID int) string {
	if contactID, err := s.backend.GetQuoteContactID(ctx, quoteID); err == nil && contactID != 0 {
		if contact, err := s.backend.GetContact(ctx, contactID); err == nil && contact.Email != "" {
			return contact.Email
		}
	}

	if customerID, err := s.backend.GetQuoteCustomerID(ctx, quoteID); err == nil && customerID != 0 {
		if customer, err := s.backend.GetCustomer(ctx, customerID); err == nil {
			return customer.Email
		}
	}

	return ""
}
