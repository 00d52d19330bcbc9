// Package email provides transactional email sending for operator alerts and
// customer-facing payment confirmations.
package email

import "context"

// Sender sends the application's transactional emails. Injected so tests and
// mail-less deployments can substitute a fake.
type Sender interface {
	// SendOperatorAlert sends a Dutch-language alert to the operator
	// mailbox so a human can intervene in the backend.
	SendOperatorAlert(ctx context.Context, toEmail, subject, title string, paragraphs []string) error

	// SendPaymentConfirmation sends the localized payment confirmation to
	// the customer or contact. language is "nl" or "en".
	SendPaymentConfirmation(ctx context.Context, toEmail, language, quoteNumber string) error
}

// NoopSender is used when email is disabled.
type NoopSender struct{}

func (NoopSender) SendOperatorAlert(ctx context.Context, toEmail, subject, title string, paragraphs []string) error {
	return nil
}

func (NoopSender) SendPaymentConfirmation(ctx context.Context, toEmail, language, quoteNumber string) error {
	return nil
}
