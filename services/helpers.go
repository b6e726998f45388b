package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
)

// translateRepoError maps repository sentinels onto the service taxonomy so
// handlers only need to know about service errors.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrSeriesNotFound):
		return ErrSeriesNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrRoundNotFound):
		return ErrRoundNotFound
	case errors.Is(err, repositories.ErrMembershipConflict):
		return ErrMembershipConflict
	case errors.Is(err, repositories.ErrUserConflict):
		return ErrUserConflict
	}
	return err
}

func requireName(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidationFailed, field)
	}
	return trimmed, nil
}

func requireID(field string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s must be a positive integer", ErrValidationFailed, field)
	}
	return nil
}

// sanitizeUser strips secrets before a user leaves the service layer.
func sanitizeUser(user *models.User) *models.User {
	if user == nil {
		return nil
	}
	user.PasswordHash = nil
	return user
}

func sanitizeUsers(users []models.User) []models.User {
	for i := range users {
		users[i].PasswordHash = nil
	}
	return users
}
