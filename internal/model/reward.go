package model

import "time"

type Reward struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PointsCost  int       `json:"points_cost"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Redemption struct {
	ID          string    `json:"id"`
	RewardID    string    `json:"reward_id"`
	AccountID   string    `json:"account_id"`
	PointsSpent int       `json:"points_spent"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}

// RedemptionResult is the outcome of a redemption attempt. A declined
// attempt (insufficient balance) is an expected business result, not an
// error: Accepted is false, Reason is set, and the balance is untouched.
type RedemptionResult struct {
	Accepted   bool        `json:"accepted"`
	Reason     string      `json:"reason,omitempty"`
	Redemption *Redemption `json:"redemption,omitempty"`
}

// ReasonInsufficientPoints is the only decline reason in use.
const ReasonInsufficientPoints = "insufficient_points"
