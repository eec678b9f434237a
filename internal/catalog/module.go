// Package catalog provides the solar product catalog bounded context module.
package catalog

import (
	"solarxp_backend/internal/catalog/handler"
	"solarxp_backend/internal/catalog/repository"
	"solarxp_backend/internal/catalog/service"
	apphttp "solarxp_backend/internal/http"
	"solarxp_backend/platform/config"
	"solarxp_backend/platform/logger"
	"solarxp_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, cache service.Cache, cfg config.CacheConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cache, cfg.GetProductCacheTTL(), log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Customers browse the catalog when picking panel types and wattages.
	ctx.V1.GET("/products", m.handler.ListProducts)
	ctx.V1.GET("/products/:id", m.handler.GetProduct)

	ctx.Admin.POST("/products", m.handler.CreateProduct)
	ctx.Admin.PUT("/products/:id", m.handler.UpdateProduct)
	ctx.Admin.DELETE("/products/:id", m.handler.DeleteProduct)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
