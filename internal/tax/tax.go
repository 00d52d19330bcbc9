// Package tax holds the static country→tax-class table and the pure
// classification function derived from it. The table is configuration data:
// it is built once at package load and never mutated.
package tax

// Class is one of the three VAT treatment buckets.
type Class string

const (
	// ClassDomestic (Tax 1) is the home-country class; prices carry 21% VAT.
	ClassDomestic Class = "Tax 1"
	// ClassEU (Tax 2) is the intra-EU class for commercial customers.
	ClassEU Class = "Tax 2"
	// ClassRest (Tax 3) is the rest-of-world / no-VAT-treatment class.
	ClassRest Class = "Tax 3"
)

// CustomerClass distinguishes commercial from private customers.
type CustomerClass string

const (
	Commercial CustomerClass = "commercial"
	Private    CustomerClass = "private"
)

// Home country and the one other country with a payment-method special case.
const (
	HomeCountry    = "The Netherlands"
	CountryBelgium = "Belgium"
)

// ClassOf derives the customer class from the backend's form of address.
// Only "Company" is commercial; every other form of address is private.
func ClassOf(formOfAddress string) CustomerClass {
	if formOfAddress == "Company" {
		return Commercial
	}
	return Private
}

// Classify returns the tax class for a country and customer class. The home
// country is domestic for both classes; EU countries split by class (EU
// reverse charge applies to commercial customers only); every other known
// country is rest-of-world. ok is false for unknown countries.
func Classify(country string, customerClass CustomerClass) (Class, bool) {
	entry, known := table[country]
	if !known {
		return "", false
	}
	if customerClass == Commercial {
		return entry.commercial, true
	}
	return entry.private, true
}

// Known reports whether country is a recognized key of the table.
func Known(country string) bool {
	_, ok := table[country]
	return ok
}
