package store

import (
	"database/sql"
	"fmt"

	"github.com/mnagpal/bridgewalk/internal/model"
)

// SafetyTipStore reads the static safety content seeded by migration.
type SafetyTipStore struct {
	db *sql.DB
}

func NewSafetyTipStore(db *sql.DB) *SafetyTipStore {
	return &SafetyTipStore{db: db}
}

func (s *SafetyTipStore) List() ([]model.SafetyTip, error) {
	rows, err := s.db.Query(`SELECT id, title, content, image_url FROM safety_tips ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("list safety tips: %w", err)
	}
	defer rows.Close()

	var tips []model.SafetyTip
	for rows.Next() {
		var t model.SafetyTip
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.ImageURL); err != nil {
			return nil, fmt.Errorf("scan safety tip: %w", err)
		}
		tips = append(tips, t)
	}
	return tips, rows.Err()
}
