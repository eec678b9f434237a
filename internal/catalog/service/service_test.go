package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"solarxp_backend/internal/catalog/repository"
	"solarxp_backend/internal/catalog/transport"
	"solarxp_backend/platform/apperr"
	"solarxp_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	products  map[uuid.UUID]repository.Product
	inUse     map[uuid.UUID]bool
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[uuid.UUID]repository.Product),
		inUse:    make(map[uuid.UUID]bool),
	}
}

func (r *fakeRepo) Create(_ context.Context, p repository.Product) error {
	for _, existing := range r.products {
		if existing.Type == p.Type && existing.Watt == p.Watt {
			return apperr.Conflict("Product already exists!")
		}
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]repository.Product, error) {
	r.listCalls++
	var out []repository.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*repository.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, apperr.NotFound("Product not found!")
	}
	return &p, nil
}

func (r *fakeRepo) Update(_ context.Context, p repository.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return apperr.NotFound("Product not found!")
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.inUse[id] {
		return apperr.Conflict("Cannot delete: Product used in existing quotes.")
	}
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("Product not found!")
	}
	delete(r.products, id)
	return nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeCache) {
	repo := newFakeRepo()
	cache := newFakeCache()
	return New(repo, cache, time.Minute, logger.New("development")), repo, cache
}

func createReq() transport.CreateProductRequest {
	return transport.CreateProductRequest{
		Type: "Mono", Watt: 450, BasePriceCents: 10000_00, SubsidyCents: 500_00,
	}
}

func TestCreateProductRejectsSubsidyAboveBase(t *testing.T) {
	svc, repo, _ := newTestService()
	req := createReq()
	req.SubsidyCents = req.BasePriceCents + 1

	if _, err := svc.CreateProduct(context.Background(), req); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.products) != 0 {
		t.Fatal("rejected product must not be persisted")
	}
}

func TestCreateProductRejectsDuplicateCombination(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, createReq()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, createReq()); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for duplicate (type, watt), got %v", err)
	}
}

func TestListProductsServesFromCache(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateProduct(ctx, createReq()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	calls := repo.listCalls
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listCalls != calls {
		t.Fatal("second listing should be served from cache")
	}
}

func TestMutationsInvalidateListing(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, createReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListProducts(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	update := transport.UpdateProductRequest{BasePriceCents: 12000_00, SubsidyCents: 500_00}
	if _, err := svc.UpdateProduct(ctx, created.ID, update); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	listing, err := svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("update must invalidate the cached listing, repo hit %d times", repo.listCalls)
	}
	if listing[0].BasePriceCents != 12000_00 {
		t.Fatalf("listing is stale: got base %d", listing[0].BasePriceCents)
	}

	if err := svc.DeleteProduct(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	listing, err = svc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listing) != 0 {
		t.Fatalf("deleted product still listed: %v", listing)
	}
}

func TestUpdateProductRejectsSubsidyAboveBase(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, createReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	update := transport.UpdateProductRequest{BasePriceCents: 100, SubsidyCents: 200}
	if _, err := svc.UpdateProduct(ctx, created.ID, update); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteProductInUseConflicts(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, createReq())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	repo.inUse[created.ID] = true

	if err := svc.DeleteProduct(ctx, created.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict for referenced product, got %v", err)
	}
	if len(repo.products) != 1 {
		t.Fatal("referenced product must survive the delete attempt")
	}
}
