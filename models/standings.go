package models

// TeamTotal is the summed point value of one team.
type TeamTotal struct {
	TeamID   int    `json:"team_id" db:"team_id"`
	TeamName string `json:"team_name" db:"team_name"`
	Points   int    `json:"points" db:"points"`
}

// PlayerTotal is the summed performance score of one player.
type PlayerTotal struct {
	PlayerID   int    `json:"player_id" db:"player_id"`
	PlayerName string `json:"player_name" db:"player_name"`
	Points     int    `json:"points" db:"points"`
	// Flagged is set when a scorer designated the player man of the match.
	Flagged bool `json:"-" db:"man_of_match"`
}

type ManOfMatch struct {
	RoundID int         `json:"round_id"`
	Player  PlayerTotal `json:"player"`
}

// SeriesStandings is the summary of a series. ManOfSeries is nil while no
// performances have been recorded.
type SeriesStandings struct {
	SeriesID    int           `json:"series_id"`
	WinnerTeam  TeamTotal     `json:"winner_team"`
	ManOfSeries *PlayerTotal  `json:"man_of_the_series"`
	TeamTable   []TeamTotal   `json:"team_table"`
	PlayerTable []PlayerTotal `json:"player_table"`
}
