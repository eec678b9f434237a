package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"solarxp_backend/internal/quotes/domain"
	"solarxp_backend/internal/quotes/repository"
	"solarxp_backend/internal/quotes/transport"
	"solarxp_backend/platform/apperr"
	"solarxp_backend/platform/logger"
	"solarxp_backend/platform/phone"

	"github.com/google/uuid"
)

// priceTBD is shown to customers instead of a price until the admin approves
// the item.
const priceTBD = "TBD"

const displayDateFormat = "02-Jan-2006"

// Cache is the narrow slice of the cache store the quote flow needs.
// The service owns the per-user quote projection keys; nothing else writes
// or invalidates them.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// OrderNotifier enqueues a fire-and-forget order confirmation job.
// Implemented by the notify client; nil means notifications are disabled.
type OrderNotifier interface {
	EnqueueOrderConfirmation(ctx context.Context, orderID uuid.UUID) error
}

// Service orchestrates the quote lifecycle: submission, admin approval,
// customer dashboard, and order placement.
type Service struct {
	repo     repository.Repository
	cache    Cache
	cacheTTL time.Duration
	notifier OrderNotifier
	log      *logger.Logger
}

// New creates a new quotes service.
func New(repo repository.Repository, cache Cache, cacheTTL time.Duration, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}
}

// SetOrderNotifier injects the order confirmation enqueuer (set after
// construction to keep the notify client optional).
func (s *Service) SetOrderNotifier(n OrderNotifier) {
	s.notifier = n
}

// SubmitQuote resolves the customer's selected panel types × wattages against
// the catalog, freezes a price per matching product, and persists the header
// with its items as one unit. If nothing matches, nothing is persisted.
func (s *Service) SubmitQuote(ctx context.Context, userID uuid.UUID, req transport.SubmitQuoteRequest) (*transport.SubmitQuoteResponse, error) {
	if len(req.Types) == 0 {
		return nil, apperr.Validation("Select at least one Panel Type!")
	}
	if len(req.Watts) == 0 {
		return nil, apperr.Validation("Select at least one Wattage!")
	}

	products, err := s.repo.FindProducts(ctx, req.Types, req.Watts)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("Selected Product Combinations not found in Database!")
	}

	byTypeWatt := make(map[string]repository.Product, len(products))
	for _, p := range products {
		byTypeWatt[productKey(p.Type, p.Watt)] = p
	}

	header := repository.Header{
		ID:           uuid.New(),
		UserID:       userID,
		Mobile:       phone.NormalizeE164(req.Mobile),
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		CreatedAt:    time.Now(),
	}

	var items []repository.Item
	for _, t := range req.Types {
		for _, w := range req.Watts {
			product, ok := byTypeWatt[productKey(t, w)]
			if !ok {
				continue
			}
			items = append(items, repository.Item{
				ID:                   uuid.New(),
				HeaderID:             header.ID,
				ProductID:            product.ID,
				CalculatedPriceCents: domain.FinalPriceCents(product.BasePriceCents, product.Watt, product.SubsidyCents),
				IsApproved:           false,
				Status:               domain.StatusPending,
			})
		}
	}

	if err := s.repo.CreateHeaderWithItems(ctx, header, items); err != nil {
		return nil, err
	}

	s.invalidateUserCache(ctx, userID)

	return &transport.SubmitQuoteResponse{
		HeaderID: header.ID,
		Message:  fmt.Sprintf("Success! Quote Submitted. ID: %s", header.ID),
	}, nil
}

// GetAdminRequests lists quote headers for the admin dashboard, newest first.
// Filter "Pending" means at least one item awaits approval; "Approved" means
// every item is approved. A mixed header appears under Pending only. Admin
// views are always read fresh, never cached.
func (s *Service) GetAdminRequests(ctx context.Context, statusFilter string) ([]transport.AdminRequestResponse, error) {
	var filter repository.ApprovalFilter
	switch statusFilter {
	case "":
		filter = repository.FilterAll
	case string(repository.FilterPending):
		filter = repository.FilterPending
	case string(repository.FilterApproved):
		filter = repository.FilterApproved
	default:
		return nil, apperr.BadRequest("invalid status filter: " + statusFilter)
	}

	headers, err := s.repo.ListHeaders(ctx, repository.ListHeadersParams{Approval: filter})
	if err != nil {
		return nil, err
	}

	result := make([]transport.AdminRequestResponse, 0, len(headers))
	for _, h := range headers {
		var totalCents int64
		items := make([]transport.AdminRequestItemResponse, 0, len(h.Items))
		for _, it := range h.Items {
			totalCents += it.CalculatedPriceCents
			items = append(items, transport.AdminRequestItemResponse{
				ItemID:      it.ID,
				ProductName: productLabel(it.ProductType, it.ProductWatt),
				Price:       formatAmount(it.CalculatedPriceCents),
				IsApproved:  it.IsApproved,
				Status:      string(it.Status),
			})
		}
		result = append(result, transport.AdminRequestResponse{
			HeaderID:     h.ID,
			CustomerName: customerDisplayName(h.CustomerName, h.CustomerSurname),
			Mobile:       h.Mobile,
			Address:      h.AddressLine1 + ", " + h.AddressLine2,
			Date:         h.CreatedAt.Format(displayDateFormat),
			TotalAmount:  formatAmount(totalCents),
			Items:        items,
		})
	}
	return result, nil
}

// ApproveHeader bulk-approves every item under the header. Re-approving is a
// no-op that still succeeds; items already ordered are never downgraded.
func (s *Service) ApproveHeader(ctx context.Context, headerID uuid.UUID) (string, error) {
	userID, err := s.repo.ApproveHeaderItems(ctx, headerID)
	if err != nil {
		return "", err
	}

	s.invalidateUserCache(ctx, userID)

	return "Quote Request Fully Approved!", nil
}

// GetMyQuotes returns the customer's quote dashboard. The projection is
// cached per user and repopulated lazily after any invalidating write.
func (s *Service) GetMyQuotes(ctx context.Context, userID uuid.UUID) ([]transport.UserQuoteResponse, error) {
	key := userQuotesKey(userID)

	var cached []transport.UserQuoteResponse
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		// A broken cache read must not take the dashboard down; fall
		// through to the database.
		s.log.CacheError("get", key, err)
	} else if found {
		return cached, nil
	}

	headers, err := s.repo.ListHeaders(ctx, repository.ListHeadersParams{UserID: &userID})
	if err != nil {
		return nil, err
	}

	result := make([]transport.UserQuoteResponse, 0, len(headers))
	for _, h := range headers {
		items := make([]transport.UserQuoteItemResponse, 0, len(h.Items))
		for _, it := range h.Items {
			price := priceTBD
			if it.IsApproved {
				price = formatAmount(it.CalculatedPriceCents)
			}
			items = append(items, transport.UserQuoteItemResponse{
				ItemID:  it.ID,
				Product: productLabel(it.ProductType, it.ProductWatt),
				Price:   price,
				Status:  string(it.Status),
				CanBuy:  it.IsApproved && it.Status != domain.StatusOrdered,
			})
		}
		result = append(result, transport.UserQuoteResponse{
			HeaderID: h.ID,
			Date:     h.CreatedAt.Format(displayDateFormat),
			Address:  h.AddressLine1 + ", " + h.AddressLine2,
			Items:    items,
		})
	}

	if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
		s.log.CacheError("set", key, err)
	}

	return result, nil
}

// PlaceOrder turns an approved quote item into a client order. The repository
// transaction enforces the guards; after commit the owner's cache entry is
// invalidated and an order confirmation job is enqueued best-effort.
func (s *Service) PlaceOrder(ctx context.Context, itemID uuid.UUID) (*transport.PlaceOrderResponse, error) {
	order := repository.Order{
		ID:        uuid.New(),
		ItemID:    itemID,
		Status:    domain.OrderPlaced,
		OrderDate: time.Now(),
	}

	result, err := s.repo.PlaceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.invalidateUserCache(ctx, result.UserID)

	if s.notifier != nil {
		// The order is already committed; a failed enqueue must never
		// surface to the customer.
		if err := s.notifier.EnqueueOrderConfirmation(ctx, result.OrderID); err != nil {
			s.log.Error("order confirmation enqueue failed",
				"order_id", result.OrderID.String(), "error", err.Error())
		}
	}

	return &transport.PlaceOrderResponse{
		OrderID: result.OrderID,
		Message: "Order Placed Successfully!",
	}, nil
}

// GetAdminOrders lists placed orders for the admin fulfilment view.
func (s *Service) GetAdminOrders(ctx context.Context) ([]transport.AdminOrderResponse, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transport.AdminOrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, transport.AdminOrderResponse{
			OrderID:      o.ID,
			CustomerName: customerDisplayName(o.CustomerName, o.CustomerSurname),
			Mobile:       o.Mobile,
			Address:      o.Address,
			ModelName:    productLabel(o.ProductType, o.ProductWatt),
			Amount:       formatAmount(o.PriceCents),
			Status:       string(o.Status),
			Date:         o.OrderDate.Format(displayDateFormat),
		})
	}
	return result, nil
}

// UpdateOrderStatus moves an order to a new fulfilment status.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, raw string) error {
	next, err := domain.ParseOrderStatus(raw)
	if err != nil {
		return err
	}
	return s.repo.UpdateOrderStatus(ctx, orderID, next)
}

// invalidateUserCache drops the user's cached quote projection. The
// underlying write already committed, so on failure the operation still
// succeeds; we log loudly instead of silently serving stale data.
func (s *Service) invalidateUserCache(ctx context.Context, userID uuid.UUID) {
	key := userQuotesKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.CacheError("invalidate", key, err)
	}
}

func userQuotesKey(userID uuid.UUID) string {
	return "quotes:user:" + userID.String()
}

func productKey(t string, watt int) string {
	return fmt.Sprintf("%s|%d", t, watt)
}

func productLabel(t string, watt int) string {
	return fmt.Sprintf("%s - %dW", t, watt)
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func customerDisplayName(name, surname *string) string {
	parts := make([]string, 0, 2)
	if name != nil && *name != "" {
		parts = append(parts, *name)
	}
	if surname != nil && *surname != "" {
		parts = append(parts, *surname)
	}
	if len(parts) == 0 {
		return "Guest"
	}
	return strings.Join(parts, " ")
}
