package models

type TeamPointEntry struct {
	ID      int `json:"id" db:"id"`
	RoundID int `json:"round_id" db:"round_id"`
	TeamID  int `json:"team_id" db:"team_id"`
	Points  int `json:"points" db:"points"`
}

type PlayerPerformanceEntry struct {
	ID         int  `json:"id" db:"id"`
	RoundID    int  `json:"round_id" db:"round_id"`
	PlayerID   int  `json:"player_id" db:"player_id"`
	Score      int  `json:"score" db:"score"`
	ManOfMatch bool `json:"man_of_match" db:"man_of_match"`
}

// RoundScores is every ledger entry recorded for one round.
type RoundScores struct {
	RoundID      int                      `json:"round_id"`
	TeamPoints   []TeamPointEntry         `json:"team_points"`
	Performances []PlayerPerformanceEntry `json:"performances"`
}
