package model

import "time"

// Bridge is a registered footover bridge. The ID doubles as the QR
// payload printed on the bridge: two-letter state code, two-digit
// district number, the literal "FOB", and a two-digit serial,
// e.g. HR16FOB01.
type Bridge struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	District      string    `json:"district"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	Location      string    `json:"location"`
	PointsPerScan int       `json:"points_per_scan"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
