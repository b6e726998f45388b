package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

// AccessGate resolves caller identities and decides whether they may write.
// The caller id is always an explicit argument; the gate never looks at
// request state.
type AccessGate interface {
	Resolve(ctx context.Context, callerID int) (*models.User, error)
	RequireScorer(ctx context.Context, callerID int) (*models.User, error)
}

type accessGate struct {
	userRepo repositories.UserRepository
}

func NewAccessGate(userRepo repositories.UserRepository) AccessGate {
	return &accessGate{userRepo: userRepo}
}

func (g *accessGate) Resolve(ctx context.Context, callerID int) (*models.User, error) {
	if callerID <= 0 {
		return nil, ErrUnknownIdentity
	}
	user, err := g.userRepo.GetByID(ctx, nil, callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUnknownIdentity
		}
		return nil, fmt.Errorf("failed to resolve caller %d: %w", callerID, err)
	}
	return user, nil
}

func (g *accessGate) RequireScorer(ctx context.Context, callerID int) (*models.User, error) {
	user, err := g.Resolve(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleScorer {
		return nil, ErrForbidden
	}
	return user, nil
}
