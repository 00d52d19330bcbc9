package email

import (
	"html/template"
	"strings"
	"testing"
)

func TestRenderOperatorAlertKeepsInlineMarkup(t *testing.T) {
	content, err := renderEmailTemplate("operator_alert.html", operatorAlertEmailData{
		baseEmailData: baseEmailData{Title: "Offerte bevat verkeerde status"},
		Paragraphs: []template.HTML{
			template.HTML("De status van offerte <b>Q-10001-01</b> staat op <i>Verlopen</i>."),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(content, "Offerte bevat verkeerde status") {
		t.Fatal("expected title in rendered mail")
	}
	if !strings.Contains(content, "<b>Q-10001-01</b>") {
		t.Fatal("inline markup must not be escaped")
	}
}

func TestRenderPaymentConfirmation(t *testing.T) {
	content, err := renderEmailTemplate("payment_confirmation.html", paymentConfirmationEmailData{
		baseEmailData: baseEmailData{Title: "Betaling ontvangen"},
		Heading:       "Bedankt voor uw betaling",
		Body:          "Wij hebben uw betaling ontvangen.",
		QuoteNumber:   "Q-10001-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Bedankt voor uw betaling", "Q-10001-01"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in rendered mail", want)
		}
	}
}

func TestNewSenderReturnsNoopWhenDisabled(t *testing.T) {
	sender, err := NewSender(disabledEmailConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := sender.(NoopSender); !ok {
		t.Fatalf("expected NoopSender, got %T", sender)
	}
}

type disabledEmailConfig struct{}

func (disabledEmailConfig) GetEmailEnabled() bool       { return false }
func (disabledEmailConfig) GetSMTPHost() string         { return "" }
func (disabledEmailConfig) GetSMTPPort() int            { return 0 }
func (disabledEmailConfig) GetSMTPUsername() string     { return "" }
func (disabledEmailConfig) GetSMTPPassword() string     { return "" }
func (disabledEmailConfig) GetEmailFromName() string    { return "" }
func (disabledEmailConfig) GetEmailFromAddress() string { return "" }
