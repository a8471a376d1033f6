package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/blanca/commerce-api/internal/core/domain"
	"github.com/blanca/commerce-api/internal/core/ports"
)

func floatPtr(f float64) *float64 { return &f }

func statusPtr(s domain.ProductStatus) *domain.ProductStatus { return &s }

func seedProducts(repo *stubProductRepo) {
	repo.products[1] = domain.Product{ID: 1, Name: "Keyboard", Price: 49.90, Status: domain.ProductAvailable}
	repo.products[2] = domain.Product{ID: 2, Name: "Mechanical Keyboard", Price: 129.00, Status: domain.ProductAvailable}
	repo.products[3] = domain.Product{ID: 3, Name: "Mouse", Price: 19.90, Status: domain.ProductDiscontinued}
	repo.nextID = 4
}

func TestProductService_Create_StampsCreatedAt(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	created, err := svc.Create(context.Background(), domain.Product{Name: "Keyboard", Price: 49.90, Status: domain.ProductAvailable})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.CreatedAt.Equal(fixed) {
		t.Errorf("expected CreatedAt %v, got %v", fixed, created.CreatedAt)
	}
	if created.ID == 0 {
		t.Error("expected generated id")
	}
}

func TestProductService_FindWithFilters_NoCriteriaEqualsFindAll(t *testing.T) {
	repo := newStubProductRepo()
	seedProducts(repo)
	svc := NewProductService(repo, discardLogger)

	filtered, err := svc.FindWithFilters(context.Background(), "", nil, nil, nil)
	if err != nil {
		t.Fatalf("filter search failed: %v", err)
	}
	all, err := svc.FindAll(context.Background())
	if err != nil {
		t.Fatalf("findAll failed: %v", err)
	}
	if !reflect.DeepEqual(filtered, all) {
		t.Errorf("no-criteria filter must equal findAll: %v vs %v", filtered, all)
	}
	if repo.lastFilter != (ports.ProductFilter{}) {
		t.Errorf("expected empty filter passed to repo, got %+v", repo.lastFilter)
	}
}

func TestProductService_FindWithFilters_EmptyNameIsAbsent(t *testing.T) {
	repo := newStubProductRepo()
	seedProducts(repo)
	svc := NewProductService(repo, discardLogger)

	if _, err := svc.FindWithFilters(context.Background(), "", floatPtr(10), nil, nil); err != nil {
		t.Fatalf("filter search failed: %v", err)
	}
	if repo.lastFilter.Name != "" {
		t.Errorf("empty name must not become a filter, got %q", repo.lastFilter.Name)
	}
	if repo.lastFilter.MinPrice == nil || *repo.lastFilter.MinPrice != 10 {
		t.Errorf("minPrice must be forwarded, got %+v", repo.lastFilter.MinPrice)
	}
}

func TestProductService_FindWithFilters_Conjunction(t *testing.T) {
	repo := newStubProductRepo()
	seedProducts(repo)
	svc := NewProductService(repo, discardLogger)

	got, err := svc.FindWithFilters(context.Background(), "keyboard", floatPtr(100), nil, statusPtr(domain.ProductAvailable))
	if err != nil {
		t.Fatalf("filter search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only the mechanical keyboard, got %+v", got)
	}
}

func TestProductService_FindWithFilters_PriceRange(t *testing.T) {
	repo := newStubProductRepo()
	seedProducts(repo)
	svc := NewProductService(repo, discardLogger)

	got, err := svc.FindWithFilters(context.Background(), "", floatPtr(19.90), floatPtr(50), nil)
	if err != nil {
		t.Fatalf("filter search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected keyboard and mouse, got %+v", got)
	}
}

func TestProductService_FindByID_NotFound(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	_, err := svc.FindByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Update_MergesOnlyPresentFields(t *testing.T) {
	repo := newStubProductRepo()
	created := domain.Product{ID: 1, Name: "Keyboard", Price: 49.90, Status: domain.ProductAvailable, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo.products[1] = created
	svc := NewProductService(repo, discardLogger)

	updated, err := svc.Update(context.Background(), 1, ports.ProductPatch{Price: floatPtr(39.90)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 39.90 {
		t.Errorf("expected merged price, got %v", updated.Price)
	}
	if updated.Name != created.Name {
		t.Errorf("absent name must keep stored value, got %q", updated.Name)
	}
	if updated.Status != created.Status {
		t.Errorf("absent status must keep stored value, got %q", updated.Status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt must be immutable, got %v", updated.CreatedAt)
	}
}

func TestProductService_Update_NotFound_NoSave(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	_, err := svc.Update(context.Background(), 42, ports.ProductPatch{Price: floatPtr(1)})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if repo.saveCalls != 0 {
		t.Errorf("no save must happen on not-found, got %d calls", repo.saveCalls)
	}
}

func TestProductService_Delete_NotFound_NoDelete(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, discardLogger)

	err := svc.Delete(context.Background(), 42)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if repo.deleteCalls != 0 {
		t.Errorf("no delete must happen on not-found, got %d calls", repo.deleteCalls)
	}
}

func TestProductService_Delete_Success(t *testing.T) {
	repo := newStubProductRepo()
	seedProducts(repo)
	svc := NewProductService(repo, discardLogger)

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := repo.products[3]; ok {
		t.Error("product must be hard-deleted")
	}
}
