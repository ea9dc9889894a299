// Package quotes provides the quoting bounded context module.
package quotes

import (
	apphttp "landscape_supply_backend/internal/http"
	"landscape_supply_backend/internal/quotes/handler"
	"landscape_supply_backend/internal/quotes/repository"
	"landscape_supply_backend/internal/quotes/service"
	"landscape_supply_backend/platform/logger"
	"landscape_supply_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the quotes module. The product reader is
// supplied by the composition root so quotes never depend on the catalog
// packages directly.
func NewModule(pool *pgxpool.Pool, products service.ProductReader, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, products, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/quotes", m.handler.CreateQuote)
	ctx.V1.GET("/quotes", m.handler.ListQuotes)
	ctx.V1.GET("/quotes/:id", m.handler.GetQuoteByID)
	ctx.V1.POST("/quotes/:id/issue", m.handler.IssueQuote)
	ctx.V1.POST("/quotes/:id/cancel", m.handler.CancelQuote)
	ctx.V1.PATCH("/quotes/:id/customer", m.handler.UpdateQuoteCustomer)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
