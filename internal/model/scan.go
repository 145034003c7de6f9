package model

import "time"

// Scan is one ledger entry crediting an account for scanning a bridge.
// BridgeName and Points are snapshots taken at scan time, so entries
// stay meaningful after the bridge is edited or removed.
type Scan struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"account_id"`
	BridgeID   string    `json:"bridge_id"`
	BridgeName string    `json:"bridge_name"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}
