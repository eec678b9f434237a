// Package quotes provides the quote lifecycle bounded context module.
package quotes

import (
	apphttp "solarxp_backend/internal/http"
	"solarxp_backend/internal/quotes/handler"
	"solarxp_backend/internal/quotes/repository"
	"solarxp_backend/internal/quotes/service"
	"solarxp_backend/platform/config"
	"solarxp_backend/platform/logger"
	"solarxp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the quotes bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the quotes module.
func NewModule(pool *pgxpool.Pool, cache service.Cache, cfg config.CacheConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cache, cfg.GetQuoteCacheTTL(), log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
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

// SetOrderNotifier injects the order confirmation enqueuer once the notify
// client is constructed.
func (m *Module) SetOrderNotifier(n service.OrderNotifier) {
	m.service.SetOrderNotifier(n)
}

// RegisterRoutes mounts quote routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Customer.POST("/quotes", m.handler.SubmitQuote)
	ctx.Customer.GET("/quotes/my", m.handler.GetMyQuotes)
	ctx.Customer.POST("/quotes/items/:id/order", m.handler.PlaceOrder)

	ctx.Admin.GET("/requests", m.handler.ListRequests)
	ctx.Admin.POST("/requests/:id/approve", m.handler.ApproveRequest)
	ctx.Admin.GET("/orders", m.handler.ListOrders)
	ctx.Admin.PUT("/orders/:id/status", m.handler.UpdateOrderStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
