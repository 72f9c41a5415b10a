package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/voltgrid/chargefinder/internal/domain"
)

func newCharger() *domain.Charger {
	return &domain.Charger{
		Name:          "Dock 7",
		Location:      domain.Location{Latitude: 51.5074, Longitude: -0.1278},
		Status:        domain.ChargerStatusActive,
		PowerOutput:   22,
		ConnectorType: "Type2",
	}
}

func TestChargerRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := newCharger()
	if err := db.Chargers().Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := db.Chargers().GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != c.Name || got.Location != c.Location ||
		got.Status != c.Status || got.PowerOutput != c.PowerOutput ||
		got.ConnectorType != c.ConnectorType {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, c)
	}
}

func TestChargerRepository_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	list, err := db.Chargers().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	for range 3 {
		if err := db.Chargers().Create(ctx, newCharger()); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err = db.Chargers().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 chargers, got %d", len(list))
	}
}

func TestChargerRepository_Update_OnlySuppliedFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := newCharger()
	if err := db.Chargers().Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	inactive := domain.ChargerStatusInactive
	power := 50.0
	updated, err := db.Chargers().Update(ctx, c.ID, domain.ChargerUpdate{
		Status:      &inactive,
		PowerOutput: &power,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Status != domain.ChargerStatusInactive || updated.PowerOutput != 50 {
		t.Fatalf("supplied fields not applied: %+v", updated)
	}
	if updated.Name != c.Name || updated.Location != c.Location || updated.ConnectorType != c.ConnectorType {
		t.Fatal("unsupplied fields must be unchanged")
	}
	if !updated.UpdatedAt.After(c.UpdatedAt) {
		t.Fatal("updatedAt must advance on mutation")
	}

	// The write must be visible on a fresh read.
	got, err := db.Chargers().GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != domain.ChargerStatusInactive {
		t.Fatalf("expected persisted status Inactive, got %q", got.Status)
	}
}

func TestChargerRepository_Update_NotFound(t *testing.T) {
	db := newTestDB(t)

	inactive := domain.ChargerStatusInactive
	_, err := db.Chargers().Update(context.Background(), "no-such-id", domain.ChargerUpdate{Status: &inactive})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChargerRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := newCharger()
	if err := db.Chargers().Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := db.Chargers().Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Chargers().GetByID(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := db.Chargers().Delete(ctx, c.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestChargerRepository_Count(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	count, err := db.Chargers().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	if err := db.Chargers().Create(ctx, newCharger()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	count, err = db.Chargers().Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1, got %d", count)
	}
}
