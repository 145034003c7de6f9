package store

import (
	"errors"
	"sync"
	"testing"
)

func TestProcessScan(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)
	as := NewAccountStore(db)

	account := createTestAccount(t, db, "Priya", "priya@example.com")
	createTestBridge(t, db, "HR16FOB01", 10)

	scan, err := ss.ProcessScan(account.ID, "HR16FOB01")
	if err != nil {
		t.Fatalf("process scan: %v", err)
	}
	if scan.Points != 10 {
		t.Errorf("scan points = %d, want 10", scan.Points)
	}
	if scan.BridgeID != "HR16FOB01" {
		t.Errorf("bridge_id = %q, want HR16FOB01", scan.BridgeID)
	}
	if scan.BridgeName != "Sector 16 Crossing" {
		t.Errorf("bridge_name = %q, want snapshot", scan.BridgeName)
	}
	if scan.AccountID != account.ID {
		t.Errorf("account_id = %q, want %q", scan.AccountID, account.ID)
	}
	if scan.ID == "" {
		t.Error("expected generated scan id")
	}

	got, err := as.GetByID(account.ID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.Points != 10 {
		t.Errorf("balance = %d, want 10", got.Points)
	}
	if got.Scans != 1 {
		t.Errorf("scan count = %d, want 1", got.Scans)
	}
}

func TestProcessScanUnknownBridge(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)
	as := NewAccountStore(db)

	account := createTestAccount(t, db, "Priya", "priya@example.com")

	_, err := ss.ProcessScan(account.ID, "ZZ99FOB99")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Failure leaves the account untouched
	got, _ := as.GetByID(account.ID)
	if got.Points != 0 || got.Scans != 0 {
		t.Errorf("account mutated on failed scan: points=%d scans=%d", got.Points, got.Scans)
	}
}

func TestProcessScanUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)

	createTestBridge(t, db, "HR16FOB01", 10)

	_, err := ss.ProcessScan("no-such-account", "HR16FOB01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// No orphan ledger entry
	count, points, err := ss.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if count != 0 || points != 0 {
		t.Errorf("ledger not empty after failed scan: count=%d points=%d", count, points)
	}
}

// Repeat scans of the same bridge in quick succession are all credited;
// the ledger has no throttle.
func TestProcessScanRepeatSameBridge(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)
	as := NewAccountStore(db)

	account := createTestAccount(t, db, "Priya", "priya@example.com")
	createTestBridge(t, db, "HR16FOB01", 10)

	for i := 0; i < 3; i++ {
		if _, err := ss.ProcessScan(account.ID, "HR16FOB01"); err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
	}

	got, _ := as.GetByID(account.ID)
	if got.Points != 30 {
		t.Errorf("balance = %d, want 30", got.Points)
	}
	if got.Scans != 3 {
		t.Errorf("scan count = %d, want 3", got.Scans)
	}
}

func TestScanHistorySurvivesBridgeDelete(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)
	bs := NewBridgeStore(db)

	account := createTestAccount(t, db, "Priya", "priya@example.com")
	createTestBridge(t, db, "HR16FOB01", 10)

	if _, err := ss.ProcessScan(account.ID, "HR16FOB01"); err != nil {
		t.Fatalf("process scan: %v", err)
	}
	if err := bs.Delete("HR16FOB01"); err != nil {
		t.Fatalf("delete bridge: %v", err)
	}

	scans, err := ss.ListByAccount(account.ID)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("expected 1 scan, got %d", len(scans))
	}
	if scans[0].BridgeName != "Sector 16 Crossing" || scans[0].Points != 10 {
		t.Errorf("snapshot lost after bridge delete: %+v", scans[0])
	}
}

// Concurrent scans for the same account must both be credited: no lost
// update, and each produces its own ledger entry.
func TestProcessScanConcurrent(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)
	as := NewAccountStore(db)

	account := createTestAccount(t, db, "Priya", "priya@example.com")
	createTestBridge(t, db, "HR16FOB01", 10)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ss.ProcessScan(account.ID, "HR16FOB01")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
	}

	got, _ := as.GetByID(account.ID)
	if got.Points != workers*10 {
		t.Errorf("balance = %d, want %d", got.Points, workers*10)
	}
	if got.Scans != workers {
		t.Errorf("scan count = %d, want %d", got.Scans, workers)
	}

	scans, err := ss.ListByAccount(account.ID)
	if err != nil {
		t.Fatalf("list scans: %v", err)
	}
	if len(scans) != workers {
		t.Errorf("expected %d ledger entries, got %d", workers, len(scans))
	}
	seen := make(map[string]bool)
	for _, sc := range scans {
		if seen[sc.ID] {
			t.Errorf("duplicate scan id %s", sc.ID)
		}
		seen[sc.ID] = true
	}
}

func TestScanTotals(t *testing.T) {
	db := newTestDB(t)
	ss := NewScanStore(db)

	a := createTestAccount(t, db, "Priya", "priya@example.com")
	b := createTestAccount(t, db, "Rahul", "rahul@example.com")
	createTestBridge(t, db, "HR16FOB01", 10)
	createTestBridge(t, db, "DL01FOB02", 25)

	ss.ProcessScan(a.ID, "HR16FOB01")
	ss.ProcessScan(b.ID, "DL01FOB02")
	ss.ProcessScan(b.ID, "HR16FOB01")

	count, points, err := ss.Totals()
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if points != 45 {
		t.Errorf("points = %d, want 45", points)
	}
}
