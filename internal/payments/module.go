// Package payments provides the payment orchestration domain module: address
// capture, checkout-link generation and payment confirmation.
package payments

import (
	apphttp "quotepay_backend/internal/http"
	"quotepay_backend/internal/payments/handler"
	"quotepay_backend/internal/payments/service"
	"quotepay_backend/platform/config"
	"quotepay_backend/platform/events"
	"quotepay_backend/platform/logger"
	"quotepay_backend/platform/validator"
)

// Module represents the payments domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new payments module with all dependencies wired.
func NewModule(backend service.Backend, checkout service.CheckoutProvider, bus events.Bus, urls config.PaymentPageConfig, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(backend, checkout, bus, urls, log)
	h := handler.New(svc, val, log)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "payments"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	payments := ctx.V1.Group("/payments")
	m.handler.RegisterRoutes(payments)
}

// Compile-time check that Module implements http.Module.
var _ apphttp.Module = (*Module)(nil)
