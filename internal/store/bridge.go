package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/mnagpal/bridgewalk/internal/model"
)

// bridgeIDRegexp is the printed-code format: two-letter state code,
// two-digit district number, "FOB", two-digit serial. Uppercase only;
// lowercase input is rejected, not normalized.
var bridgeIDRegexp = regexp.MustCompile(`^[A-Z]{2}\d{2}FOB\d{2}$`)

// BridgeStore owns the bridge registry. All mutations validate the
// record and enforce ID uniqueness before touching the table.
type BridgeStore struct {
	db *sql.DB
}

func NewBridgeStore(db *sql.DB) *BridgeStore {
	return &BridgeStore{db: db}
}

func scanBridge(scanner interface{ Scan(...any) error }) (*model.Bridge, error) {
	var b model.Bridge
	err := scanner.Scan(&b.ID, &b.Name, &b.District, &b.State, &b.Country,
		&b.Location, &b.PointsPerScan, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const bridgeCols = `id, name, district, state, country, location, points_per_scan, created_at, updated_at`

func validateBridge(b model.Bridge) error {
	if !bridgeIDRegexp.MatchString(b.ID) {
		return &ValidationError{Field: "id", Reason: "must match [State Code][District No]FOB[Serial No], e.g. HR16FOB01"}
	}
	required := []struct{ field, value string }{
		{"name", b.Name},
		{"district", b.District},
		{"state", b.State},
		{"country", b.Country},
		{"location", b.Location},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "is required"}
		}
	}
	if b.PointsPerScan <= 0 {
		return &ValidationError{Field: "points_per_scan", Reason: "must be a positive integer"}
	}
	return nil
}

// idExists reports whether a bridge with the given ID exists, ignoring
// excludeID (the record being edited).
func (s *BridgeStore) idExists(id, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM bridges WHERE id = ? AND id != ?`,
		id, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check bridge id: %w", err)
	}
	return n > 0, nil
}

// Create validates and inserts a bridge. It returns a ValidationError
// for malformed input and ErrDuplicateID when the ID is taken.
func (s *BridgeStore) Create(b model.Bridge) (*model.Bridge, error) {
	if err := validateBridge(b); err != nil {
		return nil, err
	}

	exists, err := s.idExists(b.ID, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("bridge %s: %w", b.ID, ErrDuplicateID)
	}

	_, err = s.db.Exec(
		`INSERT INTO bridges (id, name, district, state, country, location, points_per_scan) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.District, b.State, b.Country, b.Location, b.PointsPerScan,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bridge: %w", err)
	}
	return s.GetByID(b.ID)
}

// Update replaces the bridge identified by id. The replacement is
// validated with the same rules as Create; the edited record is excluded
// from the duplicate check, so the ID may change as long as it stays
// unique.
func (s *BridgeStore) Update(id string, b model.Bridge) (*model.Bridge, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("bridge %s: %w", id, ErrNotFound)
	}

	if err := validateBridge(b); err != nil {
		return nil, err
	}

	exists, err := s.idExists(b.ID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("bridge %s: %w", b.ID, ErrDuplicateID)
	}

	_, err = s.db.Exec(
		`UPDATE bridges SET id = ?, name = ?, district = ?, state = ?, country = ?, location = ?, points_per_scan = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		b.ID, b.Name, b.District, b.State, b.Country, b.Location, b.PointsPerScan, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update bridge: %w", err)
	}
	return s.GetByID(b.ID)
}

// Delete removes a bridge. Historical scans keep their name and point
// snapshots; nothing cascades.
func (s *BridgeStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM bridges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bridge: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bridge %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *BridgeStore) GetByID(id string) (*model.Bridge, error) {
	row := s.db.QueryRow(`SELECT `+bridgeCols+` FROM bridges WHERE id = ?`, id)
	b, err := scanBridge(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get bridge: %w", err)
	}
	return b, nil
}

// List returns all bridges ordered by ID.
func (s *BridgeStore) List() ([]model.Bridge, error) {
	rows, err := s.db.Query(`SELECT ` + bridgeCols + ` FROM bridges ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bridges: %w", err)
	}
	defer rows.Close()

	var bridges []model.Bridge
	for rows.Next() {
		b, err := scanBridge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bridge: %w", err)
		}
		bridges = append(bridges, *b)
	}
	return bridges, rows.Err()
}
