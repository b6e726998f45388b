// Package standings derives winners from per-participant totals.
//
// Ties on the total are always broken by the lowest identifier, so the
// result never depends on the order rows came back from storage.
package standings

import (
	"sort"

	"github.com/Dosada05/series-points/models"
)

// RankTeams returns a copy of totals ordered by points desc, team id asc.
func RankTeams(totals []models.TeamTotal) []models.TeamTotal {
	ranked := make([]models.TeamTotal, len(totals))
	copy(ranked, totals)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].TeamID < ranked[j].TeamID
	})
	return ranked
}

// RankPlayers returns a copy of totals ordered by points desc, player id asc.
func RankPlayers(totals []models.PlayerTotal) []models.PlayerTotal {
	ranked := make([]models.PlayerTotal, len(totals))
	copy(ranked, totals)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})
	return ranked
}

// WinnerTeam picks the team with the highest total. ok is false when totals is empty.
func WinnerTeam(totals []models.TeamTotal) (winner models.TeamTotal, ok bool) {
	for i, t := range totals {
		if i == 0 || beatsTeam(t, winner) {
			winner = t
		}
	}
	return winner, len(totals) > 0
}

// TopPlayer picks the player with the highest total. ok is false when totals is empty.
func TopPlayer(totals []models.PlayerTotal) (top models.PlayerTotal, ok bool) {
	for i, p := range totals {
		if i == 0 || beatsPlayer(p, top) {
			top = p
		}
	}
	return top, len(totals) > 0
}

// ManOfMatch picks the top player of a round. When a scorer flagged any
// player as man of the match, only flagged players are considered.
func ManOfMatch(totals []models.PlayerTotal) (models.PlayerTotal, bool) {
	var flagged []models.PlayerTotal
	for _, p := range totals {
		if p.Flagged {
			flagged = append(flagged, p)
		}
	}
	if len(flagged) > 0 {
		return TopPlayer(flagged)
	}
	return TopPlayer(totals)
}

func beatsTeam(a, b models.TeamTotal) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return a.TeamID < b.TeamID
}

func beatsPlayer(a, b models.PlayerTotal) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	return a.PlayerID < b.PlayerID
}
