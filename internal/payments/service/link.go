package service

import (
	"context"
	"fmt"
	"strings"

	"quotepay_backend/internal/mollie"
	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/internal/tax"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/events"

	"golang.org/x/sync/errgroup"
)

// BuildLink resolves quote, customer, address and price and opens a hosted
// checkout session, returning its URL. When the billing city is unresolved
// the caller receives a structured signal (UNKNOWN_COUNTRY_<form of address>)
// so the front end can route to address capture in the right mode.
func (s *Service) BuildLink(ctx context.Context, quoteNumber, locale string) (string, error) {
	quote, err := s.loadPayableQuote(ctx, quoteNumber)
	if err != nil {
		return "", err
	}

	customerID, err := s.resolveCustomerID(ctx, quote.ID, quoteNumber)
	if err != nil {
		return "", err
	}

	addressID, found, err := s.findInvoiceAddress(ctx, customerID, quoteNumber)
	if err != nil {
		return "", err
	}

	// Country, tax class and city are independent reads once the customer
	// is known; fetch them concurrently and join before pricing.
	var country, city, preselectedTax string
	g, gctx := errgroup.WithContext(ctx)
	if found {
		g.Go(func() error {
			var err error
			country, err = s.backend.GetAddressCountry(gctx, addressID)
			return err
		})
		g.Go(func() error {
			var err error
			city, err = s.backend.GetAddressCity(gctx, addressID)
			return err
		})
	}
	g.Go(func() error {
		info, err := s.backend.GetPaymentInformation(gctx, customerID)
		if err != nil {
			return err
		}
		preselectedTax = info.PreselectedTax
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	price, err := s.quotePrice(ctx, quote.ID, quoteNumber, preselectedTax)
	if err != nil {
		return "", err
	}

	if city == "" {
		return "", s.unknownAddressSignal(ctx, customerID, quoteNumber)
	}

	methods := []string{"creditcard", "paypal"}
	if country == tax.HomeCountry {
		methods = append(methods, "ideal")
	}
	if country == tax.CountryBelgium {
		methods = append(methods, "bancontact")
	}

	path := localePath(locale)
	payment, err := s.checkout.CreatePayment(ctx, mollie.CreatePayment{
		Amount:      mollie.Amount{Currency: "EUR", Value: price},
		Description: quote.Number,
		RedirectURL: fmt.Sprintf("%s/%s/%s/ok", s.urls.GetPaymentPageBaseURL(), path, quoteNumber),
		WebhookURL:  fmt.Sprintf("%s/api/v1/payments/status?quote=%d&locale=%s", s.urls.GetAppBaseURL(), quote.ID, path),
		Locale:      locale,
		Methods:     methods,
	})
	if err != nil {
		s.bus.Publish(ctx, CheckoutLinkFailedEvent{
			BaseEvent:   events.NewBaseEvent(),
			QuoteNumber: quoteNumber,
		})
		return "", apperr.Wrap(apperr.KindInternal, transport.CodePaymentLinkFailed, "the checkout session could not be created", err)
	}

	return payment.CheckoutURL(), nil
}

// unknownAddressSignal builds the structured no-known-address error. The
// code embeds the customer's form of address so the front end can choose
// between the company and individual address forms.
func (s *Service) unknownAddressSignal(ctx context.Context, customerID int, quoteNumber string) error {
	customer, err := s.backend.GetCustomer(ctx, customerID)
	if err != nil {
		if plunet.IsStatusError(err) {
			s.bus.Publish(ctx, FormOfAddressLookupFailedEvent{
				BaseEvent:   events.NewBaseEvent(),
				QuoteNumber: quoteNumber,
			})
			return apperr.Business(transport.CodeFormOfAddress, "The customer's form of address could not be read.")
		}
		return err
	}

	code := transport.CodeUnknownCountryPrefix + strings.ToUpper(customer.FormOfAddress)
	return apperr.Business(code, "Customer country unknown")
}
