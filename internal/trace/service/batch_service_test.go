package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/testutil"
)

func setupBatchService(t *testing.T) (*BatchService, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewBatchService(repos.Batch, repos.Event), repos
}

func TestQRCodeForBatch(t *testing.T) {
	code := QRCodeForBatch("3f2b9c10-aaaa-bbbb-cccc-12ab34cd56ef")
	pattern := regexp.MustCompile(`^AYU-[A-Z0-9]{8}$`)
	if !pattern.MatchString(code) {
		t.Errorf("QR code %q does not match AYU-XXXXXXXX format", code)
	}

	// Same batch ID always derives the same code
	if again := QRCodeForBatch("3f2b9c10-aaaa-bbbb-cccc-12ab34cd56ef"); again != code {
		t.Errorf("Expected deterministic QR code, got %q then %q", code, again)
	}

	if QRCodeForBatch("short") != "AYU-SHORT" {
		t.Errorf("Expected short IDs to be used whole, got %q", QRCodeForBatch("short"))
	}
}

func TestCreateBatchAssignsQRCode(t *testing.T) {
	svc, repos := setupBatchService(t)
	ctx := context.Background()

	batch, err := svc.Create(ctx, &CreateBatchRequest{
		BatchNumber: "ASH-2025-001",
		ProductID:   "prod-001",
		FarmID:      "farm-001",
		Quantity:    120,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if batch.Unit != "kg" {
		t.Errorf("Expected default unit kg, got %q", batch.Unit)
	}
	if batch.Status != entity.BatchStatusHarvested {
		t.Errorf("Expected default status harvested, got %q", batch.Status)
	}
	if batch.QRCode == nil || *batch.QRCode != QRCodeForBatch(batch.ID) {
		t.Fatalf("Expected QR code derived from batch ID, got %v", batch.QRCode)
	}

	// QR code must be persisted, not just set on the returned struct
	stored, err := repos.Batch.FindByQRCode(ctx, *batch.QRCode)
	if err != nil {
		t.Fatalf("FindByQRCode failed: %v", err)
	}
	if stored.ID != batch.ID {
		t.Errorf("QR code resolves to wrong batch: %s != %s", stored.ID, batch.ID)
	}
}

func TestCreateBatchDuplicateNumber(t *testing.T) {
	svc, _ := setupBatchService(t)
	ctx := context.Background()

	req := &CreateBatchRequest{
		BatchNumber: "ASH-2025-009",
		ProductID:   "prod-001",
		FarmID:      "farm-001",
		Quantity:    40,
	}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrBatchNumberTaken) {
		t.Errorf("Expected ErrBatchNumberTaken, got %v", err)
	}
}

func TestCreateBatchValidation(t *testing.T) {
	svc, _ := setupBatchService(t)
	ctx := context.Background()

	var vErr *ValidationError

	_, err := svc.Create(ctx, &CreateBatchRequest{ProductID: "p", FarmID: "f", Quantity: 1})
	if !errors.As(err, &vErr) || vErr.Field != "batch_number" {
		t.Errorf("Expected batch_number validation error, got %v", err)
	}

	_, err = svc.Create(ctx, &CreateBatchRequest{BatchNumber: "b", ProductID: "p", FarmID: "f", Quantity: -5})
	if !errors.As(err, &vErr) || vErr.Field != "quantity" {
		t.Errorf("Expected quantity validation error, got %v", err)
	}

	_, err = svc.Create(ctx, &CreateBatchRequest{
		BatchNumber: "b", ProductID: "p", FarmID: "f", Quantity: 1, Status: "teleported",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, repos := setupBatchService(t)
	ctx := context.Background()

	batch, err := svc.Create(ctx, &CreateBatchRequest{
		BatchNumber: "ASH-2025-002",
		ProductID:   "prod-001",
		FarmID:      "farm-001",
		Quantity:    50,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Any valid status is reachable from any other, including backwards
	updated, err := svc.UpdateStatus(ctx, batch.ID, entity.BatchStatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != entity.BatchStatusShipped {
		t.Errorf("Expected shipped, got %q", updated.Status)
	}
	if _, err := svc.UpdateStatus(ctx, batch.ID, entity.BatchStatusDrying); err != nil {
		t.Fatalf("Backward transition rejected: %v", err)
	}

	// Rejected status must leave the stored record untouched
	if _, err := svc.UpdateStatus(ctx, batch.ID, "lost"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Expected ErrInvalidStatus, got %v", err)
	}
	stored, err := repos.Batch.FindByID(ctx, batch.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status != entity.BatchStatusDrying {
		t.Errorf("Stored status changed after rejected update: %q", stored.Status)
	}

	if _, err := svc.UpdateStatus(ctx, "no-such-batch", entity.BatchStatusReady); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown batch, got %v", err)
	}
}

func TestAddCollectionEvent(t *testing.T) {
	svc, _ := setupBatchService(t)
	ctx := context.Background()

	batch, err := svc.Create(ctx, &CreateBatchRequest{
		BatchNumber: "ASH-2025-003",
		ProductID:   "prod-001",
		FarmID:      "farm-001",
		Quantity:    80,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	moisture := 12.5
	event, err := svc.AddCollectionEvent(ctx, "collector-001", &CreateCollectionEventRequest{
		BatchID:       batch.ID,
		MoistureLevel: &moisture,
		QualityNotes:  "clean roots",
	})
	if err != nil {
		t.Fatalf("AddCollectionEvent failed: %v", err)
	}
	if event.CollectorID != "collector-001" {
		t.Errorf("Expected collector from caller identity, got %q", event.CollectorID)
	}
	if event.CollectionDate == nil {
		t.Error("Expected collection date to default to now")
	}

	// Unknown batch is rejected before any write
	_, err = svc.AddCollectionEvent(ctx, "collector-001", &CreateCollectionEventRequest{BatchID: "no-such"})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	events, err := svc.ListCollectionEvents(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListCollectionEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 collection event, got %d", len(events))
	}
}

func TestAddProcessingEvent(t *testing.T) {
	svc, _ := setupBatchService(t)
	ctx := context.Background()

	batch, err := svc.Create(ctx, &CreateBatchRequest{
		BatchNumber: "ASH-2025-004",
		ProductID:   "prod-001",
		FarmID:      "farm-001",
		Quantity:    60,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	event, err := svc.AddProcessingEvent(ctx, "proc-001", &CreateProcessingEventRequest{
		BatchID:      batch.ID,
		ProcessType:  entity.ProcessTypeDrying,
		FacilityName: "Dryer Hall 2",
		Parameters:   entity.JSONB{"temperature": 45, "duration_hours": 12},
	})
	if err != nil {
		t.Fatalf("AddProcessingEvent failed: %v", err)
	}
	if event.ProcessDate == nil {
		t.Error("Expected process date to default to now")
	}

	var vErr *ValidationError
	_, err = svc.AddProcessingEvent(ctx, "proc-001", &CreateProcessingEventRequest{
		BatchID:     batch.ID,
		ProcessType: "fermenting",
	})
	if !errors.As(err, &vErr) || vErr.Field != "process_type" {
		t.Errorf("Expected process_type validation error, got %v", err)
	}

	events, err := svc.ListProcessingEvents(ctx, batch.ID)
	if err != nil {
		t.Fatalf("ListProcessingEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 processing event, got %d", len(events))
	}
}
