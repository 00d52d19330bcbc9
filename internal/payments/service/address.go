package service

import (
	"context"

	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/internal/tax"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/events"
)

// CaptureAddress persists a newly entered billing address and the tax
// classification derived from it. Both writes are idempotent "set"
// operations; on success the backend reflects exactly the submitted values.
func (s *Service) CaptureAddress(ctx context.Context, req transport.AddressRequest) error {
	if !tax.Known(req.Country) {
		return apperr.Validation(transport.CodeInvalidCountry, "Invalid country.")
	}

	quote, err := s.loadPayableQuote(ctx, req.Quote)
	if err != nil {
		return err
	}

	customerID, err := s.resolveCustomerID(ctx, quote.ID, req.Quote)
	if err != nil {
		return err
	}

	customer, err := s.backend.GetCustomer(ctx, customerID)
	if err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, CustomerLinkMissingEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: req.Quote,
			})
			return apperr.Business(transport.CodeNoQuoteCustomer, "No customer is linked to the quote.")
		}
		return err
	}

	addressID, found, err := s.findInvoiceAddress(ctx, customerID, req.Quote)
	if err != nil {
		return err
	}

	if !found {
		// A fresh address is created with the home country as placeholder
		// and immediately overwritten with the submitted fields below.
		addressID, err = s.backend.CreateCustomerAddress(ctx, customerID, tax.HomeCountry, plunet.AddressTypeInvoice)
		if err != nil {
			if plunet.IsStatusError(err) {
				s.bus.Publish(ctx, AddressCreateFailedEvent{
					BaseEvent:   events.NewBaseEvent(),
					QuoteNumber: req.Quote,
				})
				return apperr.Business(transport.CodeNotCreateAddress, "A new address could not be created.")
			}
			return err
		}
	}

	taxClass, _ := tax.Classify(req.Country, tax.ClassOf(customer.FormOfAddress))

	info := plunet.PaymentInformation{
		PaymentMethod:  plunet.PaymentMethodBankTransfer,
		PreselectedTax: string(taxClass),
		SalesTaxID:     req.SalesTaxID,
	}
	if err := s.backend.SetPaymentInformation(ctx, customerID, info); err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, PaymentInfoWriteFailedEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: req.Quote,
			})
			return apperr.Business(transport.CodeNoUpdatePayment, "The payment information could not be written.")
		}
		return err
	}

	update := plunet.AddressUpdate{
		Type:    plunet.AddressTypeInvoice,
		Street:  req.Street,
		ZipCode: req.ZipCode,
		City:    req.City,
		Country: req.Country,
	}
	if err := s.backend.UpdateAddress(ctx, addressID, update); err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, AddressUpdateFailedEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: req.Quote,
			})
			return apperr.Business(transport.CodeNotUpdateAddress, "The address could not be written.")
		}
		return err
	}

	return nil
}
