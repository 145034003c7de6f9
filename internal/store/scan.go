package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mnagpal/bridgewalk/internal/model"
)

// ScanStore is the append-only scan ledger. ProcessScan is the single
// write path that credits accounts for bridge scans.
type ScanStore struct {
	db *sql.DB
}

func NewScanStore(db *sql.DB) *ScanStore {
	return &ScanStore{db: db}
}

func scanScan(scanner interface{ Scan(...any) error }) (*model.Scan, error) {
	var sc model.Scan
	err := scanner.Scan(&sc.ID, &sc.AccountID, &sc.BridgeID, &sc.BridgeName, &sc.Points, &sc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

const scanCols = `id, account_id, bridge_id, bridge_name, points, created_at`

// ProcessScan resolves the bridge, credits the account with the bridge's
// current points-per-scan, increments its scan count, and appends a
// ledger entry — all in one transaction, so a failure at any step leaves
// the account untouched. Repeat scans of the same bridge are credited at
// the same flat rate; there is no throttle.
func (s *ScanStore) ProcessScan(accountID, bridgeID string) (*model.Scan, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin scan tx: %w", err)
	}
	defer tx.Rollback()

	var bridgeName string
	var points int
	err = tx.QueryRow(
		`SELECT name, points_per_scan FROM bridges WHERE id = ?`, bridgeID,
	).Scan(&bridgeName, &points)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("bridge %s: %w", bridgeID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup bridge: %w", err)
	}

	result, err := tx.Exec(
		`UPDATE accounts SET points = points + ?, scans = scans + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		points, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("credit account: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO scans (id, account_id, bridge_id, bridge_name, points) VALUES (?, ?, ?, ?, ?)`,
		id, accountID, bridgeID, bridgeName, points,
	)
	if err != nil {
		return nil, fmt.Errorf("insert scan: %w", err)
	}

	row := tx.QueryRow(`SELECT `+scanCols+` FROM scans WHERE id = ?`, id)
	sc, err := scanScan(row)
	if err != nil {
		return nil, fmt.Errorf("get scan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit scan tx: %w", err)
	}
	return sc, nil
}

// ListByAccount returns an account's scan history, newest first.
func (s *ScanStore) ListByAccount(accountID string) ([]model.Scan, error) {
	rows, err := s.db.Query(
		`SELECT `+scanCols+` FROM scans WHERE account_id = ? ORDER BY created_at DESC, id DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var scans []model.Scan
	for rows.Next() {
		sc, err := scanScan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scans = append(scans, *sc)
	}
	return scans, rows.Err()
}

// Totals returns the all-time scan count and points awarded across all
// accounts, for the admin dashboard.
func (s *ScanStore) Totals() (count, points int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(points), 0) FROM scans`,
	).Scan(&count, &points)
	if err != nil {
		return 0, 0, fmt.Errorf("scan totals: %w", err)
	}
	return count, points, nil
}
