package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/voltgrid/chargefinder/internal/domain"
	"github.com/voltgrid/chargefinder/internal/service"
)

func newTestChargerService(t *testing.T) (*service.ChargerService, domain.ChargerRepository) {
	t.Helper()
	db := newTestDB(t)
	repo := db.Chargers()
	return service.NewChargerService(repo), repo
}

func ptr[T any](v T) *T { return &v }

func validCreateInput() service.CreateChargerInput {
	return service.CreateChargerInput{
		Name:          "Central Station",
		Latitude:      ptr(52.3702),
		Longitude:     ptr(4.8952),
		PowerOutput:   ptr(50.0),
		ConnectorType: "CCS",
	}
}

func TestChargerService_Create_Defaults(t *testing.T) {
	chargers, _ := newTestChargerService(t)

	c, err := chargers.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if c.ID == "" {
		t.Fatal("expected generated id")
	}
	if c.Status != domain.ChargerStatusActive {
		t.Fatalf("expected default status Active, got %q", c.Status)
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}
}

func TestChargerService_Create_ValidationPerformsNoWrite(t *testing.T) {
	chargers, repo := newTestChargerService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*service.CreateChargerInput)
		field  string
	}{
		{"negative power output", func(in *service.CreateChargerInput) { in.PowerOutput = ptr(-1.0) }, "powerOutput"},
		{"missing power output", func(in *service.CreateChargerInput) { in.PowerOutput = nil }, "powerOutput"},
		{"empty name", func(in *service.CreateChargerInput) { in.Name = "" }, "name"},
		{"missing latitude", func(in *service.CreateChargerInput) { in.Latitude = nil }, "latitude"},
		{"latitude out of range", func(in *service.CreateChargerInput) { in.Latitude = ptr(95.0) }, "latitude"},
		{"longitude out of range", func(in *service.CreateChargerInput) { in.Longitude = ptr(200.0) }, "longitude"},
		{"bad status", func(in *service.CreateChargerInput) { in.Status = "Broken" }, "status"},
		{"empty connector type", func(in *service.CreateChargerInput) { in.ConnectorType = "" }, "connectorType"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before, err := repo.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}

			input := validCreateInput()
			tc.mutate(&input)

			_, err = chargers.Create(ctx, input)
			var verrs domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			found := false
			for _, fe := range verrs {
				if fe.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a field error for %q, got %v", tc.field, verrs)
			}

			after, err := repo.Count(ctx)
			if err != nil {
				t.Fatalf("Count: %v", err)
			}
			if before != after {
				t.Fatalf("validation failure must not write: count %d -> %d", before, after)
			}
		})
	}
}

func TestChargerService_Create_ZeroValuesAreValid(t *testing.T) {
	chargers, _ := newTestChargerService(t)

	input := validCreateInput()
	input.Latitude = ptr(0.0)
	input.Longitude = ptr(0.0)
	input.PowerOutput = ptr(0.0)

	c, err := chargers.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create with zero coordinates and power: %v", err)
	}
	if c.Location.Latitude != 0 || c.Location.Longitude != 0 || c.PowerOutput != 0 {
		t.Fatal("zero values should round-trip unchanged")
	}
}

func TestChargerService_Update_PartialStatusOnly(t *testing.T) {
	chargers, _ := newTestChargerService(t)
	ctx := context.Background()

	created, err := chargers.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := chargers.Update(ctx, created.ID, service.UpdateChargerInput{
		Status: ptr("Inactive"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Status != domain.ChargerStatusInactive {
		t.Fatalf("expected status Inactive, got %q", updated.Status)
	}
	if updated.Name != created.Name ||
		updated.Location != created.Location ||
		updated.PowerOutput != created.PowerOutput ||
		updated.ConnectorType != created.ConnectorType {
		t.Fatal("fields not supplied in the update must be unchanged")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("createdAt must not change on update")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatal("updatedAt must be refreshed on update")
	}
}

func TestChargerService_Update_RevalidatesTouchedFields(t *testing.T) {
	chargers, _ := newTestChargerService(t)
	ctx := context.Background()

	created, err := chargers.Create(ctx, validCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The same constraints as create apply to every supplied field.
	_, err = chargers.Update(ctx, created.ID, service.UpdateChargerInput{
		PowerOutput: ptr(-5.0),
	})
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for negative power output, got %v", err)
	}

	unchanged, err := chargers.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if unchanged.PowerOutput != created.PowerOutput {
		t.Fatal("failed update must not modify the charger")
	}
}

func TestChargerService_Update_NotFound(t *testing.T) {
	chargers, _ := newTestChargerService(t)

	_, err := chargers.Update(context.Background(), "no-such-id", service.UpdateChargerInput{
		Status: ptr("Inactive"),
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChargerService_Delete_NotFoundLeavesCountUnchanged(t *testing.T) {
	chargers, repo := newTestChargerService(t)
	ctx := context.Background()

	if _, err := chargers.Create(ctx, validCreateInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}

	if err := chargers.Delete(ctx, "no-such-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	after, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if before != after {
		t.Fatalf("delete of unknown id must not change count: %d -> %d", before, after)
	}
}

func TestChargerService_List_Empty(t *testing.T) {
	chargers, _ := newTestChargerService(t)

	list, err := chargers.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}
