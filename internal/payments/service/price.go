package service

import (
	"context"

	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/tax"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/events"

	"github.com/shopspring/decimal"
)

// vatFactor is the domestic VAT multiplier (21%). Applied only to the
// domestic Tax 1 class; every other class is passed through VAT-exclusive.
var vatFactor = decimal.RequireFromString("1.21")

// quotePrice sums the quote's item prices, applies domestic VAT when the
// preselected tax class requires it, and renders a 2-decimal fixed-point
// string. Prices never touch a binary float.
func (s *Service) quotePrice(ctx context.Context, quoteID int, quoteNumber, preselectedTax string) (string, error) {
	items, err := s.backend.ListQuoteItems(ctx, quoteID)
	if err != nil {
		return "", err
	}

	if len(items) == 0 {
		s.bus.Publish(ctx, QuoteWithoutItemsEvent{
			BaseEvent:   events.NewBaseEvent(),
			QuoteNumber: quoteNumber,
		})
		return "", apperr.Business(transport.CodeQuoteWithoutItems, "The quote contains no items.")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}

	if preselectedTax == string(tax.ClassDomestic) {
		total = total.Mul(vatFactor)
	}

	return total.Round(2).StringFixed(2), nil
}
