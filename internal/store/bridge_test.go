package store

import (
	"errors"
	"testing"

	"github.com/mnagpal/bridgewalk/internal/model"
)

func validBridge(id string) model.Bridge {
	return model.Bridge{
		ID:            id,
		Name:          "Sector 16 Crossing",
		District:      "Gurugram",
		State:         "Haryana",
		Country:       "India",
		Location:      "NH-48 near Sector 16",
		PointsPerScan: 10,
	}
}

func TestBridgeCreate(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	bridge, err := bs.Create(validBridge("HR16FOB01"))
	if err != nil {
		t.Fatalf("create bridge: %v", err)
	}
	if bridge.ID != "HR16FOB01" {
		t.Errorf("id = %q, want %q", bridge.ID, "HR16FOB01")
	}
	if bridge.PointsPerScan != 10 {
		t.Errorf("points_per_scan = %d, want 10", bridge.PointsPerScan)
	}

	got, err := bs.GetByID("HR16FOB01")
	if err != nil {
		t.Fatalf("get bridge: %v", err)
	}
	if got == nil {
		t.Fatal("expected bridge, got nil")
	}
	if got.Name != "Sector 16 Crossing" {
		t.Errorf("name = %q, want %q", got.Name, "Sector 16 Crossing")
	}
}

func TestBridgeCreateValidation(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	tests := []struct {
		name   string
		mutate func(*model.Bridge)
	}{
		{"lowercase id", func(b *model.Bridge) { b.ID = "hr16fob01" }},
		{"short serial", func(b *model.Bridge) { b.ID = "HR16FOB1" }},
		{"missing FOB literal", func(b *model.Bridge) { b.ID = "HR16BRG01" }},
		{"empty name", func(b *model.Bridge) { b.Name = "" }},
		{"whitespace district", func(b *model.Bridge) { b.District = "   " }},
		{"empty state", func(b *model.Bridge) { b.State = "" }},
		{"empty country", func(b *model.Bridge) { b.Country = "" }},
		{"empty location", func(b *model.Bridge) { b.Location = "" }},
		{"zero points", func(b *model.Bridge) { b.PointsPerScan = 0 }},
		{"negative points", func(b *model.Bridge) { b.PointsPerScan = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBridge("HR16FOB01")
			tt.mutate(&b)

			_, err := bs.Create(b)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}

	// Nothing should have been inserted
	bridges, err := bs.List()
	if err != nil {
		t.Fatalf("list bridges: %v", err)
	}
	if len(bridges) != 0 {
		t.Errorf("expected empty registry, got %d bridges", len(bridges))
	}
}

func TestBridgeCreateDuplicate(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	if _, err := bs.Create(validBridge("HR16FOB01")); err != nil {
		t.Fatalf("create bridge: %v", err)
	}

	_, err := bs.Create(validBridge("HR16FOB01"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestBridgeUpdate(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	if _, err := bs.Create(validBridge("HR16FOB01")); err != nil {
		t.Fatalf("create bridge: %v", err)
	}

	// Update in place keeping the same ID — must not trip the duplicate
	// check against itself.
	patch := validBridge("HR16FOB01")
	patch.Name = "Sector 16 Crossing (Rebuilt)"
	patch.PointsPerScan = 20

	updated, err := bs.Update("HR16FOB01", patch)
	if err != nil {
		t.Fatalf("update bridge: %v", err)
	}
	if updated.Name != "Sector 16 Crossing (Rebuilt)" {
		t.Errorf("name = %q, want updated name", updated.Name)
	}
	if updated.PointsPerScan != 20 {
		t.Errorf("points_per_scan = %d, want 20", updated.PointsPerScan)
	}
}

func TestBridgeUpdateChangesID(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	if _, err := bs.Create(validBridge("HR16FOB01")); err != nil {
		t.Fatalf("create bridge: %v", err)
	}

	patch := validBridge("HR16FOB02")
	updated, err := bs.Update("HR16FOB01", patch)
	if err != nil {
		t.Fatalf("update bridge: %v", err)
	}
	if updated.ID != "HR16FOB02" {
		t.Errorf("id = %q, want HR16FOB02", updated.ID)
	}

	old, err := bs.GetByID("HR16FOB01")
	if err != nil {
		t.Fatalf("get old id: %v", err)
	}
	if old != nil {
		t.Error("old id still present after rename")
	}
}

func TestBridgeUpdateDuplicateID(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	if _, err := bs.Create(validBridge("HR16FOB01")); err != nil {
		t.Fatalf("create first bridge: %v", err)
	}
	if _, err := bs.Create(validBridge("HR16FOB02")); err != nil {
		t.Fatalf("create second bridge: %v", err)
	}

	_, err := bs.Update("HR16FOB02", validBridge("HR16FOB01"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestBridgeUpdateNotFound(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	_, err := bs.Update("DL01FOB01", validBridge("DL01FOB01"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBridgeDelete(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	if _, err := bs.Create(validBridge("HR16FOB01")); err != nil {
		t.Fatalf("create bridge: %v", err)
	}
	if err := bs.Delete("HR16FOB01"); err != nil {
		t.Fatalf("delete bridge: %v", err)
	}

	got, err := bs.GetByID("HR16FOB01")
	if err != nil {
		t.Fatalf("get deleted bridge: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}

	if err := bs.Delete("HR16FOB01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBridgeList(t *testing.T) {
	bs := NewBridgeStore(newTestDB(t))

	for _, id := range []string{"UP03FOB07", "HR16FOB01", "DL01FOB02"} {
		if _, err := bs.Create(validBridge(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	bridges, err := bs.List()
	if err != nil {
		t.Fatalf("list bridges: %v", err)
	}
	if len(bridges) != 3 {
		t.Fatalf("expected 3 bridges, got %d", len(bridges))
	}
	// Ordered by ID
	if bridges[0].ID != "DL01FOB02" || bridges[1].ID != "HR16FOB01" || bridges[2].ID != "UP03FOB07" {
		t.Errorf("unexpected order: %s, %s, %s", bridges[0].ID, bridges[1].ID, bridges[2].ID)
	}
}
