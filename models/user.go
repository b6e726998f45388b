package models

type UserRole string

const (
	RoleScorer  UserRole = "scorer"
	RoleCaptain UserRole = "captain"
	RolePlayer  UserRole = "player"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleScorer, RoleCaptain, RolePlayer:
		return true
	}
	return false
}

// CanPlay reports whether users with this role may join a team.
func (r UserRole) CanPlay() bool {
	return r == RoleCaptain || r == RolePlayer
}

type User struct {
	ID           int      `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Role         UserRole `json:"role" db:"role"`
	PasswordHash *string  `json:"-" db:"password_hash"`
}

type Credentials struct {
	UserID   int    `json:"user_id"`
	Password string `json:"password"`
}
