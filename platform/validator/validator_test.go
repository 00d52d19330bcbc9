package validator

import "testing"

func TestQuoteNumber(t *testing.T) {
	valid := []string{"Q-10001-01", "Q-99999-99", "Q-00000-00"}
	for _, number := range valid {
		if !QuoteNumber(number) {
			t.Fatalf("%q should be valid", number)
		}
	}

	invalid := []string{
		"",
		"10001-01",
		"Q-1234-01",
		"Q-123456-01",
		"Q-10001-1",
		"Q-10001-001",
		"q-10001-01",
		"Q-10001-01 ",
		"Q-1000a-01",
	}
	for _, number := range invalid {
		if QuoteNumber(number) {
			t.Fatalf("%q should be invalid", number)
		}
	}
}

func TestQuoteNumberTag(t *testing.T) {
	val := New()

	type request struct {
		Quote string `validate:"quotenumber"`
	}

	if err := val.Struct(request{Quote: "Q-10001-01"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := val.Struct(request{Quote: "nope"}); err == nil {
		t.Fatal("expected a validation error")
	}
}
