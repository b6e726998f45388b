package models

type Team struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	SeriesID  int    `json:"series_id" db:"series_id"`
	CaptainID int    `json:"captain_id" db:"captain_id"`

	Captain *User  `json:"captain,omitempty" db:"-"`
	Members []User `json:"members,omitempty" db:"-"`
}

// Membership links a captain or player to a team.
type Membership struct {
	ID     int `json:"id" db:"id"`
	TeamID int `json:"team_id" db:"team_id"`
	UserID int `json:"user_id" db:"user_id"`
}
