package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/series-points/models"
)

// ScoreRepository is the append-only per-round ledger of team points and
// player performances, plus the grouped totals the standings are built from.
type ScoreRepository interface {
	CreateTeamPoints(ctx context.Context, entry *models.TeamPointEntry) error
	CreatePlayerPerformance(ctx context.Context, entry *models.PlayerPerformanceEntry) error
	ListTeamPointsByRound(ctx context.Context, roundID int) ([]models.TeamPointEntry, error)
	ListPerformancesByRound(ctx context.Context, roundID int) ([]models.PlayerPerformanceEntry, error)
	RoundPlayerTotals(ctx context.Context, roundID int) ([]models.PlayerTotal, error)
	SeriesTeamTotals(ctx context.Context, seriesID int) ([]models.TeamTotal, error)
	SeriesPlayerTotals(ctx context.Context, seriesID int) ([]models.PlayerTotal, error)
}

type sqlScoreRepository struct {
	db *sql.DB
}

func NewScoreRepository(conn *sql.DB) ScoreRepository {
	return &sqlScoreRepository{db: conn}
}

func (r *sqlScoreRepository) CreateTeamPoints(ctx context.Context, entry *models.TeamPointEntry) error {
	query := `
		INSERT INTO team_points (round_id, team_id, points)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, entry.RoundID, entry.TeamID, entry.Points).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to record points of team %d in round %d: %w", entry.TeamID, entry.RoundID, err)
	}
	return nil
}

func (r *sqlScoreRepository) CreatePlayerPerformance(ctx context.Context, entry *models.PlayerPerformanceEntry) error {
	query := `
		INSERT INTO player_performances (round_id, player_id, score, man_of_match)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		entry.RoundID,
		entry.PlayerID,
		entry.Score,
		boolToInt(entry.ManOfMatch),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to record performance of player %d in round %d: %w", entry.PlayerID, entry.RoundID, err)
	}
	return nil
}

func (r *sqlScoreRepository) ListTeamPointsByRound(ctx context.Context, roundID int) ([]models.TeamPointEntry, error) {
	query := `
		SELECT id, round_id, team_id, points
		FROM team_points
		WHERE round_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team points of round %d: %w", roundID, err)
	}
	return collectRows(rows, func(row rowScanner) (models.TeamPointEntry, error) {
		var e models.TeamPointEntry
		err := row.Scan(&e.ID, &e.RoundID, &e.TeamID, &e.Points)
		return e, err
	})
}

func (r *sqlScoreRepository) ListPerformancesByRound(ctx context.Context, roundID int) ([]models.PlayerPerformanceEntry, error) {
	query := `
		SELECT id, round_id, player_id, score, man_of_match
		FROM player_performances
		WHERE round_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances of round %d: %w", roundID, err)
	}
	return collectRows(rows, func(row rowScanner) (models.PlayerPerformanceEntry, error) {
		var e models.PlayerPerformanceEntry
		var flag int64
		err := row.Scan(&e.ID, &e.RoundID, &e.PlayerID, &e.Score, &flag)
		e.ManOfMatch = flag != 0
		return e, err
	})
}

func (r *sqlScoreRepository) RoundPlayerTotals(ctx context.Context, roundID int) ([]models.PlayerTotal, error) {
	query := `
		SELECT u.id, u.name, SUM(pp.score), MAX(pp.man_of_match)
		FROM player_performances pp
		JOIN users u ON u.id = pp.player_id
		WHERE pp.round_id = $1
		GROUP BY u.id, u.name`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to total performances of round %d: %w", roundID, err)
	}
	return collectRows(rows, scanPlayerTotal)
}

func (r *sqlScoreRepository) SeriesTeamTotals(ctx context.Context, seriesID int) ([]models.TeamTotal, error) {
	query := `
		SELECT t.id, t.name, SUM(tp.points)
		FROM team_points tp
		JOIN rounds r ON r.id = tp.round_id
		JOIN teams t ON t.id = tp.team_id
		WHERE r.series_id = $1
		GROUP BY t.id, t.name`

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to total team points of series %d: %w", seriesID, err)
	}
	return collectRows(rows, func(row rowScanner) (models.TeamTotal, error) {
		var t models.TeamTotal
		var points int64
		err := row.Scan(&t.TeamID, &t.TeamName, &points)
		t.Points = int(points)
		return t, err
	})
}

func (r *sqlScoreRepository) SeriesPlayerTotals(ctx context.Context, seriesID int) ([]models.PlayerTotal, error) {
	query := `
		SELECT u.id, u.name, SUM(pp.score), MAX(pp.man_of_match)
		FROM player_performances pp
		JOIN rounds r ON r.id = pp.round_id
		JOIN users u ON u.id = pp.player_id
		WHERE r.series_id = $1
		GROUP BY u.id, u.name`

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to total performances of series %d: %w", seriesID, err)
	}
	return collectRows(rows, scanPlayerTotal)
}

func scanPlayerTotal(row rowScanner) (models.PlayerTotal, error) {
	var p models.PlayerTotal
	var points, flag int64
	err := row.Scan(&p.PlayerID, &p.PlayerName, &points, &flag)
	p.Points = int(points)
	p.Flagged = flag != 0
	return p, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
