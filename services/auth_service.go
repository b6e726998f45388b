package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/utils"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type LoginInput struct {
	UserID   int    `json:"user_id"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login checks the password of a user and issues a signed token. Users created
// without a password cannot log in.
func (s *authService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.UserID <= 0 || input.Password == "" {
		return nil, ErrAuthInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, nil, input.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user %d: %w", input.UserID, err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(input.Password, *user.PasswordHash) {
		return nil, ErrAuthInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      sanitizeUser(user),
	}, nil
}
