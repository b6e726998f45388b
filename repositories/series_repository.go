package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/series-points/models"
)

var ErrSeriesNotFound = errors.New("series not found")

type SeriesRepository interface {
	Create(ctx context.Context, series *models.Series) error
	GetByID(ctx context.Context, id int) (*models.Series, error)
	List(ctx context.Context) ([]models.Series, error)
}

type sqlSeriesRepository struct {
	db *sql.DB
}

func NewSeriesRepository(conn *sql.DB) SeriesRepository {
	return &sqlSeriesRepository{db: conn}
}

func (r *sqlSeriesRepository) Create(ctx context.Context, series *models.Series) error {
	query := `
		INSERT INTO series (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		series.Name,
		series.StartDate.String(),
		series.EndDate.String(),
	).Scan(&series.ID)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}
	return nil
}

// Dates are read back as text so both drivers yield the same YYYY-MM-DD form.
const selectSeriesSQL = `SELECT id, name, CAST(start_date AS TEXT), CAST(end_date AS TEXT) FROM series`

func (r *sqlSeriesRepository) GetByID(ctx context.Context, id int) (*models.Series, error) {
	series, err := scanSeries(r.db.QueryRowContext(ctx, selectSeriesSQL+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeriesNotFound
		}
		return nil, fmt.Errorf("failed to get series %d: %w", id, err)
	}
	return &series, nil
}

func (r *sqlSeriesRepository) List(ctx context.Context) ([]models.Series, error) {
	rows, err := r.db.QueryContext(ctx, selectSeriesSQL+` ORDER BY start_date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return collectRows(rows, scanSeries)
}

func scanSeries(row rowScanner) (models.Series, error) {
	var s models.Series
	var start, end string
	if err := row.Scan(&s.ID, &s.Name, &start, &end); err != nil {
		return models.Series{}, err
	}

	var err error
	if s.StartDate, err = models.ParseDate(start); err != nil {
		return models.Series{}, fmt.Errorf("series %d start date: %w", s.ID, err)
	}
	if s.EndDate, err = models.ParseDate(end); err != nil {
		return models.Series{}, fmt.Errorf("series %d end date: %w", s.ID, err)
	}
	return s, nil
}
