package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/series-points/db"
	"github.com/Dosada05/series-points/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("user id conflict")
)

// scorerQuotaLockKey identifies the advisory lock that serializes scorer
// creation across service instances on postgres.
const scorerQuotaLockKey = 7_700_001

type UserRepository interface {
	Create(ctx context.Context, exec SQLExecutor, user *models.User) error
	CreateWithID(ctx context.Context, exec SQLExecutor, user *models.User) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error)
	List(ctx context.Context, role *models.UserRole) ([]models.User, error)
	ListByTeamID(ctx context.Context, teamID int) ([]models.User, error)
	CountByRole(ctx context.Context, exec SQLExecutor, role models.UserRole) (int, error)
	LockScorerQuota(ctx context.Context, exec SQLExecutor) error
}

type sqlUserRepository struct {
	db     *sql.DB
	driver string
}

func NewUserRepository(conn *sql.DB, driver string) UserRepository {
	return &sqlUserRepository{db: conn, driver: driver}
}

func (r *sqlUserRepository) Create(ctx context.Context, exec SQLExecutor, user *models.User) error {
	query := `
		INSERT INTO users (name, role, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		user.Name,
		user.Role,
		user.PasswordHash,
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateWithID inserts a user with a caller chosen id. On postgres the id
// sequence is moved past the inserted value afterwards.
func (r *sqlUserRepository) CreateWithID(ctx context.Context, exec SQLExecutor, user *models.User) error {
	ex := executor(r.db, exec)
	query := `INSERT INTO users (id, name, role, password_hash) VALUES ($1, $2, $3, $4)`

	if _, err := ex.ExecContext(ctx, query, user.ID, user.Name, user.Role, user.PasswordHash); err != nil {
		if isUniqueViolation(err) {
			return ErrUserConflict
		}
		return fmt.Errorf("failed to create user %d: %w", user.ID, err)
	}

	if r.driver == db.DriverPostgres {
		resync := `SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))`
		if _, err := ex.ExecContext(ctx, resync); err != nil {
			return fmt.Errorf("failed to resync users id sequence: %w", err)
		}
	}
	return nil
}

func (r *sqlUserRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.User, error) {
	query := `SELECT id, name, role, password_hash FROM users WHERE id = $1`

	user, err := scanUser(executor(r.db, exec).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

func (r *sqlUserRepository) List(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	query := `SELECT id, name, role, password_hash FROM users ORDER BY id ASC`
	args := []interface{}{}
	if role != nil {
		query = `SELECT id, name, role, password_hash FROM users WHERE role = $1 ORDER BY id ASC`
		args = append(args, *role)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return collectRows(rows, scanUser)
}

// ListByTeamID возвращает список пользователей, принадлежащих к указанной команде.
func (r *sqlUserRepository) ListByTeamID(ctx context.Context, teamID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.name, u.role, u.password_hash
		FROM users u
		JOIN team_members m ON m.user_id = u.id
		WHERE m.team_id = $1
		ORDER BY u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", teamID, err)
	}
	return collectRows(rows, scanUser)
}

func (r *sqlUserRepository) CountByRole(ctx context.Context, exec SQLExecutor, role models.UserRole) (int, error) {
	var count int
	err := executor(r.db, exec).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s users: %w", role, err)
	}
	return count, nil
}

// LockScorerQuota takes a transaction scoped lock on postgres. exec must be a
// transaction there. sqlite already serializes writers on its single connection.
func (r *sqlUserRepository) LockScorerQuota(ctx context.Context, exec SQLExecutor) error {
	if r.driver != db.DriverPostgres {
		return nil
	}
	if _, err := executor(r.db, exec).ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, scorerQuotaLockKey); err != nil {
		return fmt.Errorf("failed to lock scorer quota: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	var passwordHash sql.NullString
	if err := row.Scan(&user.ID, &user.Name, &user.Role, &passwordHash); err != nil {
		return models.User{}, err
	}
	if passwordHash.Valid {
		user.PasswordHash = &passwordHash.String
	}
	return user, nil
}
