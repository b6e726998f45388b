package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/series-points/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrMembershipConflict = errors.New("user is already a member of this team")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListBySeries(ctx context.Context, seriesID int) ([]models.Team, error)
	AddMember(ctx context.Context, membership *models.Membership) error
}

type sqlTeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(conn *sql.DB) TeamRepository {
	return &sqlTeamRepository{db: conn}
}

func (r *sqlTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, series_id, captain_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.SeriesID, team.CaptainID).Scan(&team.ID)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *sqlTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, series_id, captain_id FROM teams WHERE id = $1`

	team, err := scanTeam(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return &team, nil
}

func (r *sqlTeamRepository) ListBySeries(ctx context.Context, seriesID int) ([]models.Team, error) {
	query := `
		SELECT id, name, series_id, captain_id
		FROM teams
		WHERE series_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of series %d: %w", seriesID, err)
	}
	return collectRows(rows, scanTeam)
}

func (r *sqlTeamRepository) AddMember(ctx context.Context, membership *models.Membership) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, membership.TeamID, membership.UserID).Scan(&membership.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMembershipConflict
		}
		return fmt.Errorf("failed to add user %d to team %d: %w", membership.UserID, membership.TeamID, err)
	}
	return nil
}

func scanTeam(row rowScanner) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.SeriesID, &t.CaptainID)
	return t, err
}
