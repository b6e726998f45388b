package services

import (
	"errors"
	"fmt"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная); per-entity errors wrap it.
	ErrNotFound = errors.New("not found")

	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrSeriesNotFound = fmt.Errorf("series %w", ErrNotFound)
	ErrTeamNotFound   = fmt.Errorf("team %w", ErrNotFound)
	ErrRoundNotFound  = fmt.Errorf("round %w", ErrNotFound)

	// Aggregation requested over an empty ledger.
	ErrNoData = errors.New("no data")

	// Access gate
	ErrUnknownIdentity = errors.New("unknown identity")
	ErrForbidden       = errors.New("forbidden: read-only role")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed  = errors.New("validation failed")
	ErrQuotaExceeded     = errors.New("scorer quota exceeded")
	ErrInvalidDuration   = errors.New("invalid series duration")
	ErrInvalidRole       = errors.New("role must be one of scorer, captain, player")
	ErrInvalidCaptain    = errors.New("captain_id must reference a user with role captain")
	ErrInvalidMemberRole = errors.New("team members must have role captain or player")
	ErrTeamNotInSeries   = errors.New("team does not belong to the series of the round")
	ErrPasswordTooShort  = errors.New("password is too short")

	// Ошибки конфликтов
	ErrMembershipConflict = errors.New("user is already a member of this team")
	ErrUserConflict       = errors.New("user id is already taken")

	// Ошибки аутентификации
	ErrAuthInvalidCredentials = errors.New("invalid user id or password")

	ErrExportUnavailable = errors.New("standings export storage is not configured")
)
