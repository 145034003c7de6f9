package store

import (
	"database/sql"
	"testing"

	"github.com/mnagpal/bridgewalk/internal/database"
	"github.com/mnagpal/bridgewalk/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestAccount(t *testing.T, db *sql.DB, name, email string) *model.Account {
	t.Helper()
	account, err := NewAccountStore(db).Create(name, email, "test-hash")
	if err != nil {
		t.Fatalf("create test account: %v", err)
	}
	return account
}

func createTestBridge(t *testing.T, db *sql.DB, id string, pointsPerScan int) *model.Bridge {
	t.Helper()
	bridge, err := NewBridgeStore(db).Create(model.Bridge{
		ID:            id,
		Name:          "Sector 16 Crossing",
		District:      "Gurugram",
		State:         "Haryana",
		Country:       "India",
		Location:      "NH-48 near Sector 16",
		PointsPerScan: pointsPerScan,
	})
	if err != nil {
		t.Fatalf("create test bridge: %v", err)
	}
	return bridge
}
