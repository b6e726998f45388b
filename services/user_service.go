package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/utils"
)

const (
	// MaxScorers caps the number of users with role scorer.
	MaxScorers = 6

	// BootstrapScorerID is the fixed id of the seeded scorer account.
	BootstrapScorerID = 1

	minPasswordLength = 8
)

type UserService interface {
	CreateUser(ctx context.Context, callerID int, input CreateUserInput) (*models.User, error)
	GetUser(ctx context.Context, callerID, userID int) (*models.User, error)
	ListUsers(ctx context.Context, callerID int, role *models.UserRole) ([]models.User, error)
	ListTeamMembers(ctx context.Context, callerID, teamID int) ([]models.User, error)
	EnsureBootstrapScorer(ctx context.Context, name, password string) (*models.User, error)
}

type CreateUserInput struct {
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
	Password *string         `json:"password,omitempty"`
}

type userService struct {
	db       *sql.DB
	userRepo repositories.UserRepository
	teamRepo repositories.TeamRepository
	gate     AccessGate
	logger   *slog.Logger

	// scorerMu serializes quota checks within this process; the transaction
	// lock covers other processes on postgres.
	scorerMu sync.Mutex
}

func NewUserService(
	db *sql.DB,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	gate AccessGate,
	logger *slog.Logger,
) UserService {
	return &userService{
		db:       db,
		userRepo: userRepo,
		teamRepo: teamRepo,
		gate:     gate,
		logger:   logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, callerID int, input CreateUserInput) (*models.User, error) {
	if _, err := s.gate.RequireScorer(ctx, callerID); err != nil {
		return nil, err
	}

	name, err := requireName("name", input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user := &models.User{Name: name, Role: input.Role}
	if input.Password != nil {
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if user.Role != models.RoleScorer {
		if err := s.userRepo.Create(ctx, nil, user); err != nil {
			return nil, err
		}
		return sanitizeUser(user), nil
	}

	err = s.withScorerQuota(ctx, func(tx *sql.Tx) error {
		count, err := s.userRepo.CountByRole(ctx, tx, models.RoleScorer)
		if err != nil {
			return err
		}
		if count >= MaxScorers {
			return fmt.Errorf("%w: already %d scorers", ErrQuotaExceeded, count)
		}
		return s.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetUser(ctx context.Context, callerID, userID int) (*models.User, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) ListUsers(ctx context.Context, callerID int, role *models.UserRole) ([]models.User, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if role != nil && !role.Valid() {
		return nil, ErrInvalidRole
	}
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

func (s *userService) ListTeamMembers(ctx context.Context, callerID, teamID int) ([]models.User, error) {
	if _, err := s.gate.Resolve(ctx, callerID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, translateRepoError(err)
	}
	members, err := s.userRepo.ListByTeamID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(members), nil
}

// EnsureBootstrapScorer seeds the fixed scorer account when it is missing.
// It is an explicit startup step so callers decide whether it runs.
func (s *userService) EnsureBootstrapScorer(ctx context.Context, name, password string) (*models.User, error) {
	name, err := requireName("bootstrap scorer name", name)
	if err != nil {
		return nil, err
	}

	var seeded *models.User
	err = s.withScorerQuota(ctx, func(tx *sql.Tx) error {
		existing, err := s.userRepo.GetByID(ctx, tx, BootstrapScorerID)
		if err == nil {
			seeded = existing
			return nil
		}
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		count, err := s.userRepo.CountByRole(ctx, tx, models.RoleScorer)
		if err != nil {
			return err
		}
		if count >= MaxScorers {
			return fmt.Errorf("%w: cannot seed bootstrap scorer", ErrQuotaExceeded)
		}

		user := &models.User{ID: BootstrapScorerID, Name: name, Role: models.RoleScorer}
		if password != "" {
			hash, err := hashPassword(password)
			if err != nil {
				return err
			}
			user.PasswordHash = &hash
		}
		if err := s.userRepo.CreateWithID(ctx, tx, user); err != nil {
			return translateRepoError(err)
		}
		s.logger.InfoContext(ctx, "bootstrap scorer created", slog.Int("user_id", user.ID), slog.String("name", user.Name))
		seeded = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	if seeded.Role != models.RoleScorer {
		s.logger.WarnContext(ctx, "bootstrap user exists without scorer role",
			slog.Int("user_id", seeded.ID), slog.String("role", string(seeded.Role)))
	}
	return sanitizeUser(seeded), nil
}

// withScorerQuota runs fn in a transaction that holds the scorer quota lock.
// Everything inside fn must go through tx: sqlite runs with one connection.
func (s *userService) withScorerQuota(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	s.scorerMu.Lock()
	defer s.scorerMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin scorer transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.userRepo.LockScorerQuota(ctx, tx); err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scorer transaction: %w", err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: at least %d characters", ErrPasswordTooShort, minPasswordLength)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
