package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/series-points/models"
)

var ErrRoundNotFound = errors.New("round not found")

type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) error
	GetByID(ctx context.Context, id int) (*models.Round, error)
	ListBySeries(ctx context.Context, seriesID int) ([]models.Round, error)
}

type sqlRoundRepository struct {
	db *sql.DB
}

func NewRoundRepository(conn *sql.DB) RoundRepository {
	return &sqlRoundRepository{db: conn}
}

func (r *sqlRoundRepository) Create(ctx context.Context, round *models.Round) error {
	query := `
		INSERT INTO rounds (series_id, name)
		VALUES ($1, $2)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, round.SeriesID, round.Name).Scan(&round.ID); err != nil {
		if isForeignKeyViolation(err) {
			return ErrSeriesNotFound
		}
		return fmt.Errorf("failed to create round: %w", err)
	}
	return nil
}

func (r *sqlRoundRepository) GetByID(ctx context.Context, id int) (*models.Round, error) {
	query := `SELECT id, series_id, name FROM rounds WHERE id = $1`

	round, err := scanRound(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	return &round, nil
}

func (r *sqlRoundRepository) ListBySeries(ctx context.Context, seriesID int) ([]models.Round, error) {
	query := `
		SELECT id, series_id, name
		FROM rounds
		WHERE series_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds of series %d: %w", seriesID, err)
	}
	return collectRows(rows, scanRound)
}

func scanRound(row rowScanner) (models.Round, error) {
	var round models.Round
	err := row.Scan(&round.ID, &round.SeriesID, &round.Name)
	return round, err
}
