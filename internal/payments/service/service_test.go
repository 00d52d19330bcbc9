package service

import (
	"context"
	"strings"
	"testing"

	"quotepay_backend/internal/mollie"
	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/internal/plunet"
	"quotepay_backend/platform/apperr"
	"quotepay_backend/platform/config"
	"quotepay_backend/platform/events"
	"quotepay_backend/platform/logger"

	"github.com/shopspring/decimal"
)

type fakeBackend struct {
	quote         plunet.Quote
	quoteErr      error
	customerID    int
	customerIDErr error
	contactID     int
	contactIDErr  error
	contact       plunet.Contact
	contactErr    error
	customer      plunet.Customer
	customerErr   error
	addresses     []plunet.AddressSummary
	addressesErr  error
	createdID     int
	createErr     error
	updateErr     error
	country       string
	countryErr    error
	city          string
	cityErr       error
	payInfo       plunet.PaymentInformation
	payInfoErr    error
	setPayErr     error
	items         []plunet.Item
	itemsErr      error
	setStatusErr  error

	createdCountry   string
	createdType      string
	updatedAddressID int
	updatedAddress   plunet.AddressUpdate
	writtenPayInfo   *plunet.PaymentInformation
	writtenStatus    string
	statusQuoteID    int
}

func (f *fakeBackend) GetQuoteByNumber(context.Context, string) (plunet.Quote, error) {
	return f.quote, f.quoteErr
}

func (f *fakeBackend) GetQuoteByID(context.Context, int) (plunet.Quote, error) {
	return f.quote, f.quoteErr
}

func (f *fakeBackend) GetQuoteCustomerID(context.Context, int) (int, error) {
	return f.customerID, f.customerIDErr
}

func (f *fakeBackend) GetQuoteContactID(context.Context, int) (int, error) {
	return f.contactID, f.contactIDErr
}

func (f *fakeBackend) GetContact(context.Context, int) (plunet.Contact, error) {
	return f.contact, f.contactErr
}

func (f *fakeBackend) GetCustomer(context.Context, int) (plunet.Customer, error) {
	return f.customer, f.customerErr
}

func (f *fakeBackend) ListCustomerAddresses(context.Context, int) ([]plunet.AddressSummary, error) {
	return f.addresses, f.addressesErr
}

func (f *fakeBackend) CreateCustomerAddress(_ context.Context, _ int, country, addressType string) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdCountry = country
	f.createdType = addressType
	return f.createdID, nil
}

func (f *fakeBackend) UpdateAddress(_ context.Context, addressID int, update plunet.AddressUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedAddressID = addressID
	f.updatedAddress = update
	return nil
}

func (f *fakeBackend) GetAddressCountry(context.Context, int) (string, error) {
	if f.country == "" && f.countryErr == nil {
		return f.updatedAddress.Country, nil
	}
	return f.country, f.countryErr
}

func (f *fakeBackend) GetAddressCity(context.Context, int) (string, error) {
	if f.city == "" && f.cityErr == nil {
		return f.updatedAddress.City, nil
	}
	return f.city, f.cityErr
}

func (f *fakeBackend) GetPaymentInformation(context.Context, int) (plunet.PaymentInformation, error) {
	return f.payInfo, f.payInfoErr
}

func (f *fakeBackend) SetPaymentInformation(_ context.Context, _ int, info plunet.PaymentInformation) error {
	if f.setPayErr != nil {
		return f.setPayErr
	}
	f.writtenPayInfo = &info
	return nil
}

func (f *fakeBackend) ListQuoteItems(context.Context, int) ([]plunet.Item, error) {
	return f.items, f.itemsErr
}

func (f *fakeBackend) SetQuoteStatus(_ context.Context, quoteID int, status string) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	f.statusQuoteID = quoteID
	f.writtenStatus = status
	return nil
}

type fakeCheckout struct {
	payment   mollie.Payment
	createErr error
	getErr    error

	created *mollie.CreatePayment
}

func (f *fakeCheckout) CreatePayment(_ context.Context, req mollie.CreatePayment) (mollie.Payment, error) {
	if f.createErr != nil {
		return mollie.Payment{}, f.createErr
	}
	f.created = &req
	return f.payment, nil
}

func (f *fakeCheckout) GetPayment(context.Context, string) (mollie.Payment, error) {
	return f.payment, f.getErr
}

// capturingBus records every published event so tests can assert on the
// alerting side channel without a real subscriber.
type capturingBus struct {
	published []events.Event
	sync      []events.Event
}

func (b *capturingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *capturingBus) PublishSync(_ context.Context, event events.Event) error {
	b.sync = append(b.sync, event)
	return nil
}

func (b *capturingBus) Subscribe(string, events.Handler) {}

func (b *capturingBus) publishedNames() []string {
	names := make([]string, 0, len(b.published))
	for _, e := range b.published {
		names = append(names, e.EventName())
	}
	return names
}

func testURLs() config.PaymentPageConfig {
	return &config.Config{
		PaymentPageBaseURL: "https://pay.example.com",
		AppBaseURL:         "https://api.example.com",
	}
}

func newTestService(backend *fakeBackend, checkout *fakeCheckout, bus *capturingBus) *Service {
	return New(backend, checkout, bus, testURLs(), logger.New("test"))
}

func pendingQuote() plunet.Quote {
	return plunet.Quote{ID: 12345, Number: "Q-10001-01", Status: plunet.StatusPending}
}

func items(prices ...string) []plunet.Item {
	result := make([]plunet.Item, 0, len(prices))
	for i, p := range prices {
		result = append(result, plunet.Item{ID: i + 1, TotalPrice: decimal.RequireFromString(p)})
	}
	return result
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	if got := apperr.GetCode(err); got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}

func TestCaptureAddressUpdatesExistingInvoiceAddress(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Company"},
		addresses: []plunet.AddressSummary{
			{ID: 5, Type: "Delivery"},
			{ID: 9, Type: plunet.AddressTypeInvoice},
		},
	}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:      "Q-10001-01",
		Street:     "Keizersgracht 1",
		ZipCode:    "1015 CC",
		City:       "Amsterdam",
		Country:    "Germany",
		SalesTaxID: "DE123456789",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.updatedAddressID != 9 {
		t.Fatalf("expected update of address 9, got %d", backend.updatedAddressID)
	}
	if backend.updatedAddress.Country != "Germany" || backend.updatedAddress.City != "Amsterdam" {
		t.Fatalf("unexpected address written: %+v", backend.updatedAddress)
	}
	if backend.updatedAddress.Type != plunet.AddressTypeInvoice {
		t.Fatalf("expected Invoice type, got %q", backend.updatedAddress.Type)
	}

	if backend.writtenPayInfo == nil {
		t.Fatal("expected payment information to be written")
	}
	if backend.writtenPayInfo.PaymentMethod != plunet.PaymentMethodBankTransfer {
		t.Fatalf("expected bank transfer method, got %q", backend.writtenPayInfo.PaymentMethod)
	}
	// German company: intra-EU reverse charge.
	if backend.writtenPayInfo.PreselectedTax != "Tax 2" {
		t.Fatalf("expected Tax 2, got %q", backend.writtenPayInfo.PreselectedTax)
	}
	if backend.writtenPayInfo.SalesTaxID != "DE123456789" {
		t.Fatalf("expected sales tax id to pass through, got %q", backend.writtenPayInfo.SalesTaxID)
	}
}

func TestCaptureAddressCreatesInvoiceAddressWhenMissing(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Mr."},
		addresses:  []plunet.AddressSummary{{ID: 5, Type: "Delivery"}},
		createdID:  42,
	}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-10001-01",
		Street:  "Hoofdstraat 12",
		ZipCode: "1234 AB",
		City:    "Utrecht",
		Country: "The Netherlands",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.createdCountry != "The Netherlands" || backend.createdType != plunet.AddressTypeInvoice {
		t.Fatalf("unexpected create args: country=%q type=%q", backend.createdCountry, backend.createdType)
	}
	if backend.updatedAddressID != 42 {
		t.Fatalf("expected update of created address 42, got %d", backend.updatedAddressID)
	}
	if backend.writtenPayInfo.PreselectedTax != "Tax 1" {
		t.Fatalf("expected Tax 1 for domestic private customer, got %q", backend.writtenPayInfo.PreselectedTax)
	}
}

func TestCaptureAddressRejectsUnknownCountry(t *testing.T) {
	backend := &fakeBackend{quote: pendingQuote()}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-10001-01",
		Street:  "Main St 1",
		ZipCode: "1000",
		City:    "Atlantis",
		Country: "Atlantis",
	})
	assertCode(t, err, transport.CodeInvalidCountry)

	if backend.writtenPayInfo != nil || backend.updatedAddressID != 0 {
		t.Fatal("no backend writes expected for an unknown country")
	}
}

func TestCaptureAddressBlockedStatuses(t *testing.T) {
	cases := []struct {
		status string
		code   string
	}{
		{plunet.StatusExpired, transport.CodeQuoteExpired},
		{plunet.StatusAccepted, transport.CodeQuoteAccepted},
		{plunet.StatusChangedIntoOrder, transport.CodeQuoteChangedIntoOrder},
		{plunet.StatusCanceled, transport.CodeQuoteNotPending},
		{plunet.StatusInPreparation, transport.CodeQuoteNotPending},
	}

	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			backend := &fakeBackend{
				quote: plunet.Quote{ID: 12345, Number: "Q-10001-01", Status: tc.status},
			}
			bus := &capturingBus{}
			svc := newTestService(backend, &fakeCheckout{}, bus)

			err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
				Quote:   "Q-10001-01",
				Street:  "Main St 1",
				ZipCode: "1000",
				City:    "Berlin",
				Country: "Germany",
			})
			assertCode(t, err, tc.code)

			if len(bus.published) != 1 {
				t.Fatalf("expected one blocked-status event, got %d", len(bus.published))
			}
			blocked, ok := bus.published[0].(QuoteStatusBlockedEvent)
			if !ok {
				t.Fatalf("unexpected event type %T", bus.published[0])
			}
			if blocked.Status != tc.status {
				t.Fatalf("expected status %q in event, got %q", tc.status, blocked.Status)
			}
			if backend.writtenPayInfo != nil {
				t.Fatal("no writes expected for a blocked quote")
			}
		})
	}
}

func TestCaptureAddressRejectedQuoteIsPayable(t *testing.T) {
	backend := &fakeBackend{
		quote:      plunet.Quote{ID: 12345, Number: "Q-10001-01", Status: plunet.StatusRejected},
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Company"},
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
	}
	svc := newTestService(backend, &fakeCheckout{}, &capturingBus{})

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-10001-01",
		Street:  "Rue de la Loi 1",
		ZipCode: "1000",
		City:    "Brussels",
		Country: "Belgium",
	})
	if err != nil {
		t.Fatalf("rejected quote should be payable, got %v", err)
	}
}

func TestCaptureAddressQuoteNotFound(t *testing.T) {
	backend := &fakeBackend{quoteErr: &plunet.StatusError{Op: "getQuoteByNumber", Status: 23}}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-99999-01",
		Street:  "Main St 1",
		ZipCode: "1000",
		City:    "Berlin",
		Country: "Germany",
	})
	assertCode(t, err, transport.CodeQuoteNotExist)

	if len(bus.published) != 0 {
		t.Fatalf("a missing quote is not alerted, got events %v", bus.publishedNames())
	}
}

func TestCaptureAddressMultipleInvoiceAddresses(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Company"},
		addresses: []plunet.AddressSummary{
			{ID: 9, Type: plunet.AddressTypeInvoice},
			{ID: 10, Type: plunet.AddressTypeInvoice},
		},
	}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-10001-01",
		Street:  "Main St 1",
		ZipCode: "1000",
		City:    "Berlin",
		Country: "Germany",
	})
	assertCode(t, err, transport.CodeMultipleInvoiceAddresses)

	var domainErr *apperr.Error
	var ok bool
	if domainErr, ok = err.(*apperr.Error); !ok || domainErr.Kind != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}

	found := false
	for _, e := range bus.published {
		if conflict, ok := e.(InvoiceAddressConflictEvent); ok {
			found = true
			if conflict.Count != 2 {
				t.Fatalf("expected conflict count 2, got %d", conflict.Count)
			}
		}
	}
	if !found {
		t.Fatalf("expected invoice-address conflict event, got %v", bus.publishedNames())
	}
}

func TestCaptureAddressWriteFailuresAlert(t *testing.T) {
	statusErr := &plunet.StatusError{Op: "write", Status: 7}

	cases := []struct {
		name      string
		mutate    func(*fakeBackend)
		code      string
		eventName string
	}{
		{
			name:      "payment information",
			mutate:    func(b *fakeBackend) { b.setPayErr = statusErr },
			code:      transport.CodeNoUpdatePayment,
			eventName: EventPaymentInfoWriteFailed,
		},
		{
			name:      "address update",
			mutate:    func(b *fakeBackend) { b.updateErr = statusErr },
			code:      transport.CodeNotUpdateAddress,
			eventName: EventAddressUpdateFailed,
		},
		{
			name: "address create",
			mutate: func(b *fakeBackend) {
				b.addresses = nil
				b.createErr = statusErr
			},
			code:      transport.CodeNotCreateAddress,
			eventName: EventAddressCreateFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{
				quote:      pendingQuote(),
				customerID: 77,
				customer:   plunet.Customer{ID: 77, FormOfAddress: "Company"},
				addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
			}
			tc.mutate(backend)
			bus := &capturingBus{}
			svc := newTestService(backend, &fakeCheckout{}, bus)

			err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
				Quote:   "Q-10001-01",
				Street:  "Main St 1",
				ZipCode: "1000",
				City:    "Berlin",
				Country: "Germany",
			})
			assertCode(t, err, tc.code)

			names := bus.publishedNames()
			if len(names) != 1 || names[0] != tc.eventName {
				t.Fatalf("expected event %s, got %v", tc.eventName, names)
			}
		})
	}
}

func TestBuildLinkDomesticAppliesVATAndIdeal(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		country:    "The Netherlands",
		city:       "Amsterdam",
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 1"},
		items:      items("60.00", "40.00"),
	}
	checkout := &fakeCheckout{}
	checkout.payment.ID = "tr_abc123"
	checkout.payment.Links.Checkout.Href = "https://checkout.example.com/tr_abc123"
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	url, err := svc.BuildLink(context.Background(), "Q-10001-01", "nl_NL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://checkout.example.com/tr_abc123" {
		t.Fatalf("unexpected checkout url %q", url)
	}

	req := checkout.created
	if req == nil {
		t.Fatal("expected a checkout session to be created")
	}
	if req.Amount.Value != "121.00" || req.Amount.Currency != "EUR" {
		t.Fatalf("expected EUR 121.00 with domestic VAT, got %s %s", req.Amount.Currency, req.Amount.Value)
	}
	if req.Description != "Q-10001-01" {
		t.Fatalf("unexpected description %q", req.Description)
	}
	if req.RedirectURL != "https://pay.example.com/nl-nl/Q-10001-01/ok" {
		t.Fatalf("unexpected redirect url %q", req.RedirectURL)
	}
	if req.WebhookURL != "https://api.example.com/api/v1/payments/status?quote=12345&locale=nl-nl" {
		t.Fatalf("unexpected webhook url %q", req.WebhookURL)
	}
	if req.Locale != "nl_NL" {
		t.Fatalf("unexpected locale %q", req.Locale)
	}
	if strings.Join(req.Methods, ",") != "creditcard,paypal,ideal" {
		t.Fatalf("unexpected methods %v", req.Methods)
	}
}

func TestBuildLinkBelgiumBancontactNoVAT(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		country:    "Belgium",
		city:       "Brussels",
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 2"},
		items:      items("99.99", "0.01"),
	}
	checkout := &fakeCheckout{}
	checkout.payment.Links.Checkout.Href = "https://checkout.example.com/tr_be"
	svc := newTestService(backend, checkout, &capturingBus{})

	if _, err := svc.BuildLink(context.Background(), "Q-10001-01", "en_GB"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := checkout.created
	if req.Amount.Value != "100.00" {
		t.Fatalf("expected VAT-exclusive 100.00 for Tax 2, got %s", req.Amount.Value)
	}
	if strings.Join(req.Methods, ",") != "creditcard,paypal,bancontact" {
		t.Fatalf("unexpected methods %v", req.Methods)
	}
	if req.RedirectURL != "https://pay.example.com/en-gb/Q-10001-01/ok" {
		t.Fatalf("unexpected redirect url %q", req.RedirectURL)
	}
}

func TestBuildLinkNonHomeEUCountryHasBaseMethodsOnly(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		country:    "Germany",
		city:       "Berlin",
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 2"},
		items:      items("100.00"),
	}
	checkout := &fakeCheckout{}
	checkout.payment.Links.Checkout.Href = "https://checkout.example.com/tr_de"
	svc := newTestService(backend, checkout, &capturingBus{})

	if _, err := svc.BuildLink(context.Background(), "Q-10001-01", "en_GB"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := checkout.created
	if req.Amount.Value != "100.00" {
		t.Fatalf("expected 100.00 without VAT, got %s", req.Amount.Value)
	}
	if strings.Join(req.Methods, ",") != "creditcard,paypal" {
		t.Fatalf("expected base methods only, got %v", req.Methods)
	}
}

// An address submitted through CaptureAddress must come back unchanged from
// the country and city reads the link builder performs.
func TestCapturedAddressRoundTripsIntoLink(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Mr."},
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 1"},
		items:      items("100.00"),
	}
	checkout := &fakeCheckout{}
	checkout.payment.Links.Checkout.Href = "https://checkout.example.com/tr_rt"
	svc := newTestService(backend, checkout, &capturingBus{})

	err := svc.CaptureAddress(context.Background(), transport.AddressRequest{
		Quote:   "Q-10001-01",
		Street:  "Hoofdstraat 12",
		ZipCode: "1234 AB",
		City:    "Utrecht",
		Country: "The Netherlands",
	})
	if err != nil {
		t.Fatalf("unexpected capture error: %v", err)
	}

	if _, err := svc.BuildLink(context.Background(), "Q-10001-01", "nl_NL"); err != nil {
		t.Fatalf("unexpected link error: %v", err)
	}

	req := checkout.created
	if strings.Join(req.Methods, ",") != "creditcard,paypal,ideal" {
		t.Fatalf("home-country address must enable ideal, got %v", req.Methods)
	}
	if req.Amount.Value != "121.00" {
		t.Fatalf("expected domestic VAT on round-tripped address, got %s", req.Amount.Value)
	}
}

func TestBuildLinkUnknownAddressSignal(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Company"},
		// Invoice address exists but has no city yet.
		addresses: []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		payInfo:   plunet.PaymentInformation{PreselectedTax: "Tax 3"},
		items:     items("10.00"),
	}
	svc := newTestService(backend, &fakeCheckout{}, &capturingBus{})

	_, err := svc.BuildLink(context.Background(), "Q-10001-01", "en_GB")
	assertCode(t, err, "UNKNOWN_COUNTRY_COMPANY")
}

func TestBuildLinkNoInvoiceAddressSignalsUnknown(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		customer:   plunet.Customer{ID: 77, FormOfAddress: "Mrs."},
		addresses:  []plunet.AddressSummary{{ID: 5, Type: "Delivery"}},
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 1"},
		items:      items("10.00"),
	}
	svc := newTestService(backend, &fakeCheckout{}, &capturingBus{})

	_, err := svc.BuildLink(context.Background(), "Q-10001-01", "en_GB")
	assertCode(t, err, "UNKNOWN_COUNTRY_MRS.")
}

func TestBuildLinkQuoteWithoutItems(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		country:    "The Netherlands",
		city:       "Amsterdam",
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 1"},
	}
	bus := &capturingBus{}
	svc := newTestService(backend, &fakeCheckout{}, bus)

	_, err := svc.BuildLink(context.Background(), "Q-10001-01", "nl_NL")
	assertCode(t, err, transport.CodeQuoteWithoutItems)

	names := bus.publishedNames()
	if len(names) != 1 || names[0] != EventQuoteWithoutItems {
		t.Fatalf("expected quote-without-items event, got %v", names)
	}
}

func TestBuildLinkProviderFailure(t *testing.T) {
	backend := &fakeBackend{
		quote:      pendingQuote(),
		customerID: 77,
		addresses:  []plunet.AddressSummary{{ID: 9, Type: plunet.AddressTypeInvoice}},
		country:    "The Netherlands",
		city:       "Amsterdam",
		payInfo:    plunet.PaymentInformation{PreselectedTax: "Tax 1"},
		items:      items("10.00"),
	}
	checkout := &fakeCheckout{createErr: context.DeadlineExceeded}
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	_, err := svc.BuildLink(context.Background(), "Q-10001-01", "nl_NL")
	assertCode(t, err, transport.CodePaymentLinkFailed)

	domainErr, ok := err.(*apperr.Error)
	if !ok || domainErr.Kind != apperr.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}

	names := bus.publishedNames()
	if len(names) != 1 || names[0] != EventCheckoutLinkFailed {
		t.Fatalf("expected checkout-link-failed event, got %v", names)
	}
}

func TestConfirmPaymentHappyPathContactPriority(t *testing.T) {
	backend := &fakeBackend{
		quote:      plunet.Quote{ID: 12345, Number: "Q-10001-01", Status: plunet.StatusPending},
		contactID:  3,
		contact:    plunet.Contact{ID: 3, Email: "contact@example.com"},
		customerID: 77,
		customer:   plunet.Customer{ID: 77, Email: "customer@example.com"},
	}
	checkout := &fakeCheckout{payment: mollie.Payment{ID: "tr_abc", Status: mollie.PaymentStatusPaid}}
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	if err := svc.ConfirmPayment(context.Background(), 12345, "tr_abc", "nl-nl"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if backend.writtenStatus != plunet.StatusAccepted || backend.statusQuoteID != 12345 {
		t.Fatalf("expected quote 12345 set to Accepted, got %d %q", backend.statusQuoteID, backend.writtenStatus)
	}

	if len(bus.sync) != 1 {
		t.Fatalf("expected one synchronous paid event, got %d", len(bus.sync))
	}
	paid, ok := bus.sync[0].(QuotePaidEvent)
	if !ok {
		t.Fatalf("unexpected sync event type %T", bus.sync[0])
	}
	if paid.RecipientEmail != "contact@example.com" {
		t.Fatalf("contact email takes priority, got %q", paid.RecipientEmail)
	}
	if paid.Language != "nl" {
		t.Fatalf("expected Dutch for nl-nl, got %q", paid.Language)
	}

	names := bus.publishedNames()
	if len(names) != 1 || names[0] != EventQuoteAccepted {
		t.Fatalf("expected accepted event, got %v", names)
	}
}

func TestConfirmPaymentFallsBackToCustomerEmail(t *testing.T) {
	backend := &fakeBackend{
		quote:        plunet.Quote{ID: 12345, Number: "Q-10001-01"},
		contactIDErr: &plunet.StatusError{Op: "getQuoteContactID", Status: 40},
		customerID:   77,
		customer:     plunet.Customer{ID: 77, Email: "customer@example.com"},
	}
	checkout := &fakeCheckout{payment: mollie.Payment{Status: mollie.PaymentStatusPaid}}
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	if err := svc.ConfirmPayment(context.Background(), 12345, "tr_abc", "en-gb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(bus.sync) != 1 {
		t.Fatalf("expected one paid event, got %d", len(bus.sync))
	}
	paid := bus.sync[0].(QuotePaidEvent)
	if paid.RecipientEmail != "customer@example.com" {
		t.Fatalf("expected customer fallback, got %q", paid.RecipientEmail)
	}
	if paid.Language != "en" {
		t.Fatalf("expected English for en-gb, got %q", paid.Language)
	}
}

func TestConfirmPaymentNotPaid(t *testing.T) {
	backend := &fakeBackend{quote: plunet.Quote{ID: 12345, Number: "Q-10001-01"}}
	checkout := &fakeCheckout{payment: mollie.Payment{Status: "open"}}
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	err := svc.ConfirmPayment(context.Background(), 12345, "tr_abc", "nl-nl")
	assertCode(t, err, transport.CodePaymentNotPaid)

	if backend.writtenStatus != "" {
		t.Fatal("status must not be written for an unpaid payment")
	}
	if len(bus.sync)+len(bus.published) != 0 {
		t.Fatal("no events expected for an unpaid payment")
	}
}

func TestConfirmPaymentUnknownPaymentID(t *testing.T) {
	backend := &fakeBackend{quote: plunet.Quote{ID: 12345}}
	checkout := &fakeCheckout{getErr: context.DeadlineExceeded}
	svc := newTestService(backend, checkout, &capturingBus{})

	err := svc.ConfirmPayment(context.Background(), 12345, "tr_missing", "nl-nl")
	assertCode(t, err, transport.CodePaymentIDNotFound)
}

func TestConfirmPaymentUnknownQuote(t *testing.T) {
	backend := &fakeBackend{quoteErr: &plunet.StatusError{Op: "getQuoteByID", Status: 23}}
	checkout := &fakeCheckout{payment: mollie.Payment{Status: mollie.PaymentStatusPaid}}
	svc := newTestService(backend, checkout, &capturingBus{})

	err := svc.ConfirmPayment(context.Background(), 99999, "tr_abc", "nl-nl")
	assertCode(t, err, transport.CodeQuoteDoesNotExist)
}

func TestConfirmPaymentStatusWriteFailureStaysSuccessful(t *testing.T) {
	backend := &fakeBackend{
		quote:        plunet.Quote{ID: 12345, Number: "Q-10001-01"},
		customerID:   77,
		customer:     plunet.Customer{ID: 77, Email: "customer@example.com"},
		setStatusErr: &plunet.StatusError{Op: "setQuoteStatus", Status: 13},
	}
	checkout := &fakeCheckout{payment: mollie.Payment{Status: mollie.PaymentStatusPaid}}
	bus := &capturingBus{}
	svc := newTestService(backend, checkout, bus)

	// The payment has been collected; the webhook must still succeed.
	if err := svc.ConfirmPayment(context.Background(), 12345, "tr_abc", "nl-nl"); err != nil {
		t.Fatalf("status-write failure must not fail the confirmation, got %v", err)
	}

	names := bus.publishedNames()
	if len(names) != 1 || names[0] != EventStatusWriteFailed {
		t.Fatalf("expected status-write-failed event, got %v", names)
	}
}

func TestLocalePath(t *testing.T) {
	if got := localePath("nl_NL"); got != "nl-nl" {
		t.Fatalf("expected nl-nl, got %q", got)
	}
	if got := localePath("en_GB"); got != "en-gb" {
		t.Fatalf("expected en-gb, got %q", got)
	}
}
