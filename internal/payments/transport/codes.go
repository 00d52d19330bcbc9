package transport

// Request-validation error codes. These are reported synchronously and never
// alerted to the operator.
const (
	CodeMethodNotAllowed       = "METHOD_NOT_ALLOWED"
	CodeJSONBodyExpected       = "JSON_BODY_EXPECTED"
	CodeInvalidContentType     = "INVALID_CONTENT_TYPE"
	CodeNoQuoteParameter       = "NO_QUOTE_PARAMETER"
	CodeQuoteParameterExpected = "QUOTE_PARAMETER_EXPECTED"
	CodeInvalidQuoteParameter  = "INVALID_QUOTE_PARAMETER"
	CodeNoLocaleParameter      = "NO_LOCALE_PARAMETER"
	CodeInvalidLocaleParameter = "INVALID_LOCALE_PARAMETER"
	CodeStreetExpected         = "STREET_PARAMETER_EXPECTED"
	CodeZipCodeExpected        = "ZIPCODE_PARAMETER_EXPECTED"
	CodeCityExpected           = "CITY_PARAMETER_EXPECTED"
	CodeCountryExpected        = "COUNTRY_PARAMETER_EXPECTED"
	CodeInvalidCountry         = "INVALID_COUNTRY_PARAMETER"
	CodeNoID                   = "NO_ID"
)

// Business-state error codes. Except for the plain not-found cases these are
// also alerted to the operator mailbox.
const (
	CodeQuoteNotExist         = "QUOTE_NOT_EXIST"
	CodeQuoteExpired          = "QUOTE_EXPIRED"
	CodeQuoteAccepted         = "QUOTE_ACCEPTED"
	CodeQuoteChangedIntoOrder = "QUOTE_CHANGED_INTO_ORDER"
	CodeQuoteNotPending       = "QUOTE_NOT_PENDING"
	CodeNoQuoteCustomer       = "NO_QUOTE_CUSTOMER"
	CodeNoAddressIDs          = "NO_ADDRESS_IDS"
	CodeNotCreateAddress      = "NOT_CREATE_ADDRESS"
	CodeNotUpdateAddress      = "NOT_UPDATE_ADDRESS"
	CodeNoUpdatePayment       = "NO_UPDATE_PAYMENT"
	CodeQuoteWithoutItems     = "QUOTE_WITHOUT_ITEMS"
	CodeFormOfAddress         = "FORM_OF_ADDRESS"
	CodeQuoteDoesNotExist     = "QUOTE_DOES_NOT_EXISTS"
	CodePaymentIDNotFound     = "PAYMENT_ID_DOES_NOT_EXISTS"
	CodePaymentNotPaid        = "PAYMENT_NOT_PAID"

	// CodeUnknownCountryPrefix is completed with the customer's form of
	// address so the front end can pick the right address-capture mode
	// (e.g. UNKNOWN_COUNTRY_COMPANY).
	CodeUnknownCountryPrefix = "UNKNOWN_COUNTRY_"
)

// Internal error codes; reported to the caller as a bare 500.
const (
	CodeMultipleInvoiceAddresses = "MULTIPLE_INVOICE_ADDRESSES"
	CodePaymentLinkFailed        = "PAYMENT_LINK_FAILED"
)
