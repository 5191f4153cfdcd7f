package tests

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"loadtrack/internal/domain"
	"loadtrack/internal/service"
)

// ──────────────────────────────────────────────
// 4. UPDATES AND BULK OPERATIONS
// ──────────────────────────────────────────────

func seededLoads(n int) []domain.Load {
	loads := make([]domain.Load, n)
	for i := range loads {
		loads[i] = domain.Load{
			ID:     "load-" + strconv.Itoa(i+1),
			Status: domain.LoadStatusPending,
			OdometerReadings: []domain.OdometerReading{
				{Stage: domain.StageReceived, Reading: 100000 + i*1000, Timestamp: time.Now()},
			},
			CreatedAt: time.Now(),
		}
	}
	return loads
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)
	load := createLoad(t, svc, 100000)

	pay := 2600.0
	fuel := domain.FuelPurchase{Gallons: 110, PricePerGallon: 3.90, TotalCost: 429}
	updated, err := svc.Update(context.Background(), load.ID, service.UpdateLoadRequest{
		PayAmount: &pay,
		Fuel:      &fuel,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.PayAmount != 2600 {
		t.Errorf("expected pay amount 2600, got %v", updated.PayAmount)
	}
	if updated.Fuel == nil || updated.Fuel.TotalCost != 429 {
		t.Errorf("expected fuel merged, got %+v", updated.Fuel)
	}
	if updated.Origin != load.Origin || updated.Destination != load.Destination {
		t.Error("untouched fields must survive a partial update")
	}
}

func TestUpdate_ClaimedMilesImmutableOnceSet(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)
	load := createLoad(t, svc, 100000) // created with claimedMiles=850

	claimed := 1200
	updated, err := svc.Update(context.Background(), load.ID, service.UpdateLoadRequest{
		ClaimedMiles: &claimed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.ClaimedMiles != 850 {
		t.Errorf("claimed miles must be immutable once set, got %d", updated.ClaimedMiles)
	}
}

func TestUpdate_ReplacingReadingsRecomputesAlerts(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)
	load := createLoad(t, svc, 100000)

	readings := []domain.OdometerReading{
		{Stage: domain.StageReceived, Reading: 100000, Timestamp: time.Now()},
		{Stage: domain.StagePickup, Reading: 100300, Timestamp: time.Now()},
	}
	updated, err := svc.Update(context.Background(), load.ID, service.UpdateLoadRequest{
		OdometerReadings: readings,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(alertsOfType(updated.MileageAlerts, domain.AlertExcessiveEmptyMiles)) != 1 {
		t.Errorf("expected alerts recomputed from replaced readings, got %+v", updated.MileageAlerts)
	}
}

func TestUpdate_UnknownIDIsSilentNoop(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)
	writesBefore := store.Writes()

	pay := 100.0
	updated, err := svc.Update(context.Background(), "no-such-load", service.UpdateLoadRequest{
		PayAmount: &pay,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil load for unknown id, got %+v", updated)
	}
	if store.Writes() != writesBefore {
		t.Error("silent no-op must not write to the store")
	}
}

func TestDelete_UnknownIDIsSilentNoop(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)

	if err := svc.Delete(context.Background(), "no-such-load"); err != nil {
		t.Errorf("expected silent no-op, got %v", err)
	}
	if store.Writes() != 0 {
		t.Error("no-op delete must not write to the store")
	}
}

func TestBulkDelete_PreservesOrderOfSurvivors(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	store.SeedCollection(seededLoads(5))
	svc := service.NewLoadService(store, nil)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := svc.BulkDelete(context.Background(), []string{"load-2", "load-4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads := svc.List()
	if len(loads) != 3 {
		t.Fatalf("expected 3 loads after bulk delete, got %d", len(loads))
	}

	wantOrder := []string{"load-1", "load-3", "load-5"}
	for i, want := range wantOrder {
		if loads[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, loads[i].ID)
		}
	}

	for _, load := range loads {
		if load.ID == "load-2" || load.ID == "load-4" {
			t.Errorf("deleted id %s still present", load.ID)
		}
	}

	// The shrunken collection is what was persisted.
	if stored := store.Stored(); len(stored) != 3 {
		t.Errorf("expected persisted collection of 3, got %d", len(stored))
	}
}

func TestBulkUpdateStatus_ReachesInTransitWithoutReadings(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	store.SeedCollection(seededLoads(3))
	svc := service.NewLoadService(store, nil)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	// in_transit is only reachable through the administrative override.
	err := svc.BulkUpdateStatus(context.Background(), []string{"load-1", "load-3"}, domain.LoadStatusInTransit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads := svc.List()
	if loads[0].Status != domain.LoadStatusInTransit || loads[2].Status != domain.LoadStatusInTransit {
		t.Error("expected matching loads to be in_transit")
	}
	if loads[1].Status != domain.LoadStatusPending {
		t.Errorf("unmatched load must keep its status, got %s", loads[1].Status)
	}
}

func TestBulkUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)

	err := svc.BulkUpdateStatus(context.Background(), []string{"load-1"}, domain.LoadStatus("parked"))
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestBulkAssignDriver_ReassignsMatchingLoads(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	store.SeedCollection(seededLoads(3))
	svc := service.NewLoadService(store, nil)
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if err := svc.BulkAssignDriver(context.Background(), []string{"load-2"}, "driver-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loads := svc.List()
	if loads[1].DriverID != "driver-9" {
		t.Errorf("expected load-2 reassigned to driver-9, got %q", loads[1].DriverID)
	}
	if loads[0].DriverID == "driver-9" || loads[2].DriverID == "driver-9" {
		t.Error("unmatched loads must not be reassigned")
	}
}

func TestBulkAssignDriver_RejectsEmptyDriverID(t *testing.T) {
	t.Parallel()

	store := NewMockLoadStore()
	svc := newLoadService(t, store)

	err := svc.BulkAssignDriver(context.Background(), []string{"load-1"}, "")
	if !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("expected ErrInvalidDriverID, got %v", err)
	}
}
