package email

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"time"

	"quotepay_backend/platform/config"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection
// via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSender creates the configured Sender: an SMTPSender when email is
// enabled, a NoopSender otherwise.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}
	if cfg.GetEmailFromAddress() == "" {
		return nil, fmt.Errorf("email enabled but no from address configured")
	}

	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}, nil
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

// SendOperatorAlert sends a Dutch alert to the operator mailbox. Paragraphs
// may carry inline markup (<b>, <i>) and are rendered as-is.
func (s *SMTPSender) SendOperatorAlert(ctx context.Context, toEmail, subject, title string, paragraphs []string) error {
	rendered := make([]template.HTML, 0, len(paragraphs))
	for _, p := range paragraphs {
		rendered = append(rendered, template.HTML(p))
	}

	content, err := renderEmailTemplate("operator_alert.html", operatorAlertEmailData{
		baseEmailData: baseEmailData{Title: title},
		Paragraphs:    rendered,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

// SendPaymentConfirmation sends the localized confirmation to the customer
// or contact.
func (s *SMTPSender) SendPaymentConfirmation(ctx context.Context, toEmail, language, quoteNumber string) error {
	var subject string
	data := paymentConfirmationEmailData{QuoteNumber: quoteNumber}

	if language == "nl" {
		subject = fmt.Sprintf(subjectConfirmationNLFmt, quoteNumber)
		data.Title = "Betaling ontvangen"
		data.Heading = "Bedankt voor uw betaling"
		data.Body = "Wij hebben uw betaling ontvangen. De onderstaande offerte is hiermee geaccepteerd en wordt in behandeling genomen."
	} else {
		subject = fmt.Sprintf(subjectConfirmationENFmt, quoteNumber)
		data.Title = "Payment received"
		data.Heading = "Thank you for your payment"
		data.Body = "We have received your payment. The quote below has been accepted and will now be processed."
	}

	content, err := renderEmailTemplate("payment_confirmation.html", data)
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

// Compile-time check that SMTPSender implements Sender.
var _ Sender = (*SMTPSender)(nil)
