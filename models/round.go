package models

type Round struct {
	ID       int    `json:"id" db:"id"`
	SeriesID int    `json:"series_id" db:"series_id"`
	Name     string `json:"name" db:"name"`
}
