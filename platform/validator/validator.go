// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// quoteNumberPattern matches the human-readable quote number format: Q-NNNNN-NN.
var quoteNumberPattern = regexp.MustCompile(`^Q-[0-9]{5}-[0-9]{2}$`)

// Validator wraps the go-playground validator for structured validation.
// Using a struct allows for dependency injection and easier testing.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the application's custom rules
// registered.
func New() *Validator {
	v := validator.New()

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("quotenumber", func(fl validator.FieldLevel) bool {
		return quoteNumberPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// QuoteNumber reports whether value is a well-formed quote number.
func QuoteNumber(value string) bool {
	return quoteNumberPattern.MatchString(value)
}
