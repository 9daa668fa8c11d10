package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/testutil"
)

func setupCatalogServices(t *testing.T) (*FarmService, *ProductService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewFarmService(repos.Farm), NewProductService(repos.Product), db
}

func TestFarmOwnership(t *testing.T) {
	farms, _, _ := setupCatalogServices(t)
	ctx := context.Background()

	created, err := farms.Create(ctx, "farmer-001", &CreateFarmRequest{
		Name:     "Green Valley",
		Location: "Kerala, India",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.FarmerID != "farmer-001" {
		t.Errorf("Expected owner from caller identity, got %q", created.FarmerID)
	}

	if _, err := farms.Create(ctx, "farmer-002", &CreateFarmRequest{Name: "Hill Farm", Location: "Tamil Nadu"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := farms.ListByFarmer(ctx, "farmer-001")
	if err != nil {
		t.Fatalf("ListByFarmer failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Errorf("Expected only own farms, got %d", len(mine))
	}
}

func TestDeleteFarmReferencedByBatch(t *testing.T) {
	farms, _, db := setupCatalogServices(t)
	ctx := context.Background()

	farm, err := farms.Create(ctx, "farmer-001", &CreateFarmRequest{Name: "Green Valley", Location: "Kerala"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	testutil.SeedTestBatch(t, db, "prod-001", farm.ID, entity.BatchStatusHarvested)

	if err := farms.Delete(ctx, farm.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("Expected ErrConflict while referenced, got %v", err)
	}

	// Still there
	if _, err := farms.Get(ctx, farm.ID); err != nil {
		t.Errorf("Farm was deleted despite conflict: %v", err)
	}

	// Deletable once the referencing batch is gone
	db.Where("farm_id = ?", farm.ID).Delete(&entity.Batch{})
	if err := farms.Delete(ctx, farm.ID); err != nil {
		t.Fatalf("Delete failed after references removed: %v", err)
	}
	if _, err := farms.Get(ctx, farm.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteProductReferencedByBatch(t *testing.T) {
	_, products, db := setupCatalogServices(t)
	ctx := context.Background()

	product, err := products.Create(ctx, &CreateProductRequest{Name: "Ashwagandha"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	testutil.SeedTestBatch(t, db, product.ID, "farm-001", entity.BatchStatusHarvested)

	if err := products.Delete(ctx, product.ID); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("Expected ErrConflict while referenced, got %v", err)
	}

	if err := products.Delete(ctx, "no-such-product"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown product, got %v", err)
	}
}
