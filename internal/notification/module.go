// Package notification provides event handlers for sending notifications in
// response to domain events. The payment flows publish what went wrong (or
// right); this module owns the operator mail copy and the customer-facing
// confirmation, so domain modules never touch email providers or templates.
package notification

import (
	"context"
	"fmt"

	"quotepay_backend/internal/email"
	paymentsvc "quotepay_backend/internal/payments/service"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/platform/config"
	"quotepay_backend/platform/events"
	"quotepay_backend/platform/logger"
)

const (
	subjectFailureFmt = "Betaling mislukt van offerte %s"
	subjectSuccessFmt = "Offerte %s is betaald"
)

// dutchStatuses translates backend quote statuses for the operator mails.
// Operators work in the backend's Dutch UI, so the English API values would
// not match what they see on screen.
var dutchStatuses = map[string]string{
	plunet.StatusNewAuto:          "Nieuw (auto)",
	plunet.StatusInPreparation:    "In voorbereiding",
	plunet.StatusReview:           "Controle vrijgave",
	plunet.StatusPending:          "Openstaand",
	plunet.StatusExpired:          "Verlopen",
	plunet.StatusRevised:          "Herzien",
	plunet.StatusRejected:         "Afgewezen",
	plunet.StatusAccepted:         "Geaccepteerd",
	plunet.StatusChangedIntoOrder: "In opdracht omgezet",
	plunet.StatusCanceled:         "Geannuleerd",
}

// Module subscribes to payment events and sends the corresponding mails.
type Module struct {
	sender email.Sender
	cfg    config.AlertConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, cfg config.AlertConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// RegisterHandlers subscribes the module's handlers on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(paymentsvc.EventQuoteStatusBlocked, events.HandlerFunc(m.handleQuoteStatusBlocked))
	bus.Subscribe(paymentsvc.EventCustomerLinkMissing, events.HandlerFunc(m.handleCustomerLinkMissing))
	bus.Subscribe(paymentsvc.EventAddressLookupFailed, events.HandlerFunc(m.handleAddressLookupFailed))
	bus.Subscribe(paymentsvc.EventInvoiceAddressConflict, events.HandlerFunc(m.handleInvoiceAddressConflict))
	bus.Subscribe(paymentsvc.EventAddressCreateFailed, events.HandlerFunc(m.handleAddressCreateFailed))
	bus.Subscribe(paymentsvc.EventAddressUpdateFailed, events.HandlerFunc(m.handleAddressUpdateFailed))
	bus.Subscribe(paymentsvc.EventPaymentInfoWriteFailed, events.HandlerFunc(m.handlePaymentInfoWriteFailed))
	bus.Subscribe(paymentsvc.EventQuoteWithoutItems, events.HandlerFunc(m.handleQuoteWithoutItems))
	bus.Subscribe(paymentsvc.EventFormOfAddressLookupFailed, events.HandlerFunc(m.handleFormOfAddressLookupFailed))
	bus.Subscribe(paymentsvc.EventCheckoutLinkFailed, events.HandlerFunc(m.handleCheckoutLinkFailed))
	bus.Subscribe(paymentsvc.EventQuotePaid, events.HandlerFunc(m.handleQuotePaid))
	bus.Subscribe(paymentsvc.EventQuoteAccepted, events.HandlerFunc(m.handleQuoteAccepted))
	bus.Subscribe(paymentsvc.EventStatusWriteFailed, events.HandlerFunc(m.handleStatusWriteFailed))
}

// alertOperator sends a failure alert to the operator mailbox.
func (m *Module) alertOperator(ctx context.Context, quoteNumber, title string, paragraphs ...string) error {
	to := m.cfg.GetOperatorEmail()
	if to == "" {
		return nil
	}

	subject := fmt.Sprintf(subjectFailureFmt, quoteNumber)
	if err := m.sender.SendOperatorAlert(ctx, to, subject, title, paragraphs); err != nil {
		m.log.Error("operator alert failed", "quote", quoteNumber, "title", title, "error", err)
		return err
	}
	return nil
}

func (m *Module) handleQuoteStatusBlocked(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.QuoteStatusBlockedEvent)
	if !ok {
		return nil
	}

	status := e.Status
	if translated, ok := dutchStatuses[status]; ok {
		status = translated
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Offerte bevat verkeerde status",
		fmt.Sprintf("De status van offerte <b>%s</b> staat op <i>%s</i>. Om de offerte te kunnen betalen moet de status op <i>Openstaand</i> of <i>Afgewezen</i> staan.", e.QuoteNumber, status))
}

func (m *Module) handleCustomerLinkMissing(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.CustomerLinkMissingEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Geen klant gekoppeld",
		fmt.Sprintf("Er is geen klant gekoppeld aan offerte <b>%s</b>. Om de offerte te kunnen betalen moet er een klant geselecteerd zijn.", e.QuoteNumber))
}

func (m *Module) handleAddressLookupFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.AddressLookupFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Probleem met address ids",
		"Er heeft zich een fout voorgedaan bij het ophalen van de address ids.")
}

func (m *Module) handleInvoiceAddressConflict(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.InvoiceAddressConflictEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Meerdere factuuradressen",
		fmt.Sprintf("De klant van offerte <b>%s</b> heeft %d factuuradressen. Verwijder de overtollige adressen zodat er precies een factuuradres overblijft.", e.QuoteNumber, e.Count))
}

func (m *Module) handleAddressCreateFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.AddressCreateFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Kan geen nieuw adres maken",
		"Zorg ervoor dat niemand het record van de bijbehorende klant open heeft staan.")
}

func (m *Module) handleAddressUpdateFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.AddressUpdateFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Kan adres niet wegschrijven",
		"Zorg ervoor dat niemand het record van de bijbehorende klant open heeft staan.")
}

func (m *Module) handlePaymentInfoWriteFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.PaymentInfoWriteFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Kan Payment Information niet wegschrijven",
		"Zorg ervoor dat niemand het record van de bijbehorende klant open heeft staan.")
}

func (m *Module) handleQuoteWithoutItems(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.QuoteWithoutItemsEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Offerte zonder items",
		fmt.Sprintf("Offerte <b>%s</b> bevat geen items. Een offerte moet minstens 1 item bevatten om een prijs te kunnen bepalen.", e.QuoteNumber))
}

func (m *Module) handleFormOfAddressLookupFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.FormOfAddressLookupFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Probleem met Form of address",
		"Er heeft zich een fout voorgedaan bij het ophalen van de Form of address.")
}

func (m *Module) handleCheckoutLinkFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.CheckoutLinkFailedEvent)
	if !ok {
		return nil
	}
	return m.alertOperator(ctx, e.QuoteNumber, "Betaallink mislukt",
		"Het genereren van een betaallink is mislukt.")
}

// handleQuotePaid sends the customer-facing confirmation. It runs on the
// synchronous publish path so the mail lands before the status transition.
func (m *Module) handleQuotePaid(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.QuotePaidEvent)
	if !ok {
		return nil
	}

	if err := m.sender.SendPaymentConfirmation(ctx, e.RecipientEmail, e.Language, e.QuoteNumber); err != nil {
		m.log.Error("payment confirmation failed", "quote", e.QuoteNumber, "error", err)
		return err
	}
	return nil
}

// handleQuoteAccepted tells the operator a payment landed and the quote was
// moved along, so no manual action is needed.
func (m *Module) handleQuoteAccepted(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.QuoteAcceptedEvent)
	if !ok {
		return nil
	}

	to := m.cfg.GetOperatorEmail()
	if to == "" {
		return nil
	}

	subject := fmt.Sprintf(subjectSuccessFmt, e.QuoteNumber)
	body := fmt.Sprintf("Offerte <b>%s</b> is succesvol betaald en dus geaccepteerd door de klant. De status van de offerte is gewijzigd naar <i>Geaccepteerd</i>.", e.QuoteNumber)
	if err := m.sender.SendOperatorAlert(ctx, to, subject, "Offerte betaald", []string{body}); err != nil {
		m.log.Error("operator notification failed", "quote", e.QuoteNumber, "error", err)
		return err
	}
	return nil
}

// handleStatusWriteFailed asks the operator to move the quote by hand. The
// payment succeeded, so this mail uses the success subject line.
func (m *Module) handleStatusWriteFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(paymentsvc.StatusWriteFailedEvent)
	if !ok {
		return nil
	}

	to := m.cfg.GetOperatorEmail()
	if to == "" {
		return nil
	}

	subject := fmt.Sprintf(subjectSuccessFmt, e.QuoteNumber)
	body := fmt.Sprintf("Ondanks dat de betaling gelukt is kon de status van offerte <b>%s</b> niet worden gewijzigd naar <i>Geaccepteerd</i>. Waarschijnlijk omdat iemand de offerte open heeft staan. S.v.p. de status handmatig wijzigen naar <i>Geaccepteerd</i>.", e.QuoteNumber)
	if err := m.sender.SendOperatorAlert(ctx, to, subject, "Status van offerte niet gewijzigd", []string{body}); err != nil {
		m.log.Error("operator alert failed", "quote", e.QuoteNumber, "error", err)
		return err
	}
	return nil
}
