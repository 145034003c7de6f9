package model

// Stats is the summary shown on the admin dashboard.
type Stats struct {
	Bridges            int `json:"bridges"`
	Accounts           int `json:"accounts"`
	TotalScans         int `json:"total_scans"`
	TotalPointsAwarded int `json:"total_points_awarded"`
}
