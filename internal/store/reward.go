package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mnagpal/bridgewalk/internal/model"
)

// RewardStore reads the reward catalog and executes redemptions. The
// catalog itself is seeded by migration and has no mutation path here.
type RewardStore struct {
	db *sql.DB
}

func NewRewardStore(db *sql.DB) *RewardStore {
	return &RewardStore{db: db}
}

func scanReward(scanner interface{ Scan(...any) error }) (*model.Reward, error) {
	var r model.Reward
	err := scanner.Scan(&r.ID, &r.Title, &r.Description, &r.PointsCost, &r.ImageURL, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const rewardCols = `id, title, description, points_cost, image_url, created_at`

func (s *RewardStore) GetByID(id string) (*model.Reward, error) {
	row := s.db.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE id = ?`, id)
	r, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return r, nil
}

// List returns the catalog ordered by cost, cheapest first.
func (s *RewardStore) List() ([]model.Reward, error) {
	rows, err := s.db.Query(`SELECT ` + rewardCols + ` FROM rewards ORDER BY points_cost ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

// Redeem debits an account for a reward. The balance check and the debit
// are a single guarded UPDATE inside the transaction, so two concurrent
// redemptions against a barely-sufficient balance cannot both succeed
// and the balance can never go negative. An insufficient balance is a
// declined result, not an error.
func (s *RewardStore) Redeem(accountID, rewardID string) (*model.RedemptionResult, error) {
	reward, err := s.GetByID(rewardID)
	if err != nil {
		return nil, err
	}
	if reward == nil {
		return nil, fmt.Errorf("reward %s: %w", rewardID, ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin redeem tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE accounts SET points = points - ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND points >= ?`,
		reward.PointsCost, accountID, reward.PointsCost,
	)
	if err != nil {
		return nil, fmt.Errorf("debit account: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// Either the account is missing or the balance fell short.
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id = ?`, accountID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check account: %w", err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("account %s: %w", accountID, ErrNotFound)
		}
		return &model.RedemptionResult{
			Accepted: false,
			Reason:   model.ReasonInsufficientPoints,
		}, nil
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		`INSERT INTO redemptions (id, reward_id, account_id, points_spent) VALUES (?, ?, ?, ?)`,
		id, rewardID, accountID, reward.PointsCost,
	)
	if err != nil {
		return nil, fmt.Errorf("insert redemption: %w", err)
	}

	var red model.Redemption
	err = tx.QueryRow(
		`SELECT id, reward_id, account_id, points_spent, created_at FROM redemptions WHERE id = ?`, id,
	).Scan(&red.ID, &red.RewardID, &red.AccountID, &red.PointsSpent, &red.RedeemedAt)
	if err != nil {
		return nil, fmt.Errorf("get redemption: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit redeem tx: %w", err)
	}
	return &model.RedemptionResult{Accepted: true, Redemption: &red}, nil
}

// ListRedemptionsByAccount returns an account's redemption history,
// newest first.
func (s *RewardStore) ListRedemptionsByAccount(accountID string) ([]model.Redemption, error) {
	rows, err := s.db.Query(
		`SELECT id, reward_id, account_id, points_spent, created_at FROM redemptions WHERE account_id = ? ORDER BY created_at DESC, id DESC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var redemptions []model.Redemption
	for rows.Next() {
		var r model.Redemption
		if err := rows.Scan(&r.ID, &r.RewardID, &r.AccountID, &r.PointsSpent, &r.RedeemedAt); err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		redemptions = append(redemptions, r)
	}
	return redemptions, rows.Err()
}
