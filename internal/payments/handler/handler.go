// Package handler exposes the payment endpoints over HTTP.
package handler

import (
	"net/http"
	"regexp"
	"strconv"

	"quotepay_backend/internal/payments/service"
	"quotepay_backend/internal/payments/transport"
	"quotepay_backend/platform/httpkit"
	"quotepay_backend/platform/logger"
	"quotepay_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// quoteIDPattern matches the numeric quote id the provider webhook carries,
// distinct from the human-readable quote number.
var quoteIDPattern = regexp.MustCompile(`^[0-9]{4,5}$`)

// Handler handles the payment HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

// New creates a new payments handler.
func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// RegisterRoutes registers the payment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/address", h.CaptureAddress)
	rg.GET("/link", h.BuildLink)
	rg.POST("/status", h.ConfirmPayment)
}

// CaptureAddress handles POST /api/v1/payments/address.
func (h *Handler) CaptureAddress(c *gin.Context) {
	if c.ContentType() != "application/json" {
		httpkit.Error(c, http.StatusUnsupportedMediaType, transport.CodeJSONBodyExpected, "JSON body expected.")
		return
	}

	var req transport.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusUnsupportedMediaType, transport.CodeJSONBodyExpected, "JSON body expected.")
		return
	}

	// Per-field codes so the form can highlight the exact missing input.
	switch {
	case req.Quote == "":
		httpkit.Error(c, http.StatusBadRequest, transport.CodeQuoteParameterExpected, "Body parameter 'quote' expected.")
		return
	case h.val.Var(req.Quote, "quotenumber") != nil:
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidQuoteParameter, "Invalid quote parameter.")
		return
	case req.Street == "":
		httpkit.Error(c, http.StatusBadRequest, transport.CodeStreetExpected, "Body parameter 'street' expected.")
		return
	case req.ZipCode == "":
		httpkit.Error(c, http.StatusBadRequest, transport.CodeZipCodeExpected, "Body parameter 'zipCode' expected.")
		return
	case req.City == "":
		httpkit.Error(c, http.StatusBadRequest, transport.CodeCityExpected, "Body parameter 'city' expected.")
		return
	case req.Country == "":
		httpkit.Error(c, http.StatusBadRequest, transport.CodeCountryExpected, "Body parameter 'country' expected.")
		return
	}

	err := h.svc.CaptureAddress(c.Request.Context(), req)
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	c.Status(http.StatusOK)
}

// BuildLink handles GET /api/v1/payments/link.
func (h *Handler) BuildLink(c *gin.Context) {
	locale := c.Query("locale")
	if locale == "" {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeNoLocaleParameter, "URL parameter 'locale' expected")
		return
	}
	if locale != transport.LocaleDutch && locale != transport.LocaleEnglish {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidLocaleParameter, "Invalid URL parameter 'locale'")
		return
	}

	quoteNumber := c.Query("quote")
	if quoteNumber == "" {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeNoQuoteParameter, "URL parameter 'quote' expected")
		return
	}
	if h.val.Var(quoteNumber, "quotenumber") != nil {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidQuoteParameter, "Invalid URL parameter 'quote'")
		return
	}

	url, err := h.svc.BuildLink(c.Request.Context(), quoteNumber, locale)
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	httpkit.OK(c, transport.LinkResponse{URL: url})
}

// ConfirmPayment handles POST /api/v1/payments/status, the provider's
// webhook. The caller is trusted per the deployment's threat model.
func (h *Handler) ConfirmPayment(c *gin.Context) {
	rawQuoteID := c.Query("quote")
	if rawQuoteID == "" {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeNoQuoteParameter, "URL parameter 'quote' expected")
		return
	}
	if !quoteIDPattern.MatchString(rawQuoteID) {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidQuoteParameter, "Invalid URL parameter 'quote'")
		return
	}
	quoteID, err := strconv.Atoi(rawQuoteID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidQuoteParameter, "Invalid URL parameter 'quote'")
		return
	}

	if c.ContentType() != "application/x-www-form-urlencoded" {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeInvalidContentType, "Body Content-Type 'application/x-www-form-urlencoded' expected")
		return
	}

	paymentID := c.PostForm("id")
	if paymentID == "" {
		httpkit.Error(c, http.StatusBadRequest, transport.CodeNoID, "Body parameter 'id' expected")
		return
	}

	err = h.svc.ConfirmPayment(c.Request.Context(), quoteID, paymentID, c.Query("locale"))
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	c.Status(http.StatusOK)
}
