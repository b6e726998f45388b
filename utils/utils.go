package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = bcrypt.DefaultCost

const (
	ClaimUserID = "user_id"
	ClaimRole   = "role"
)

var ErrInvalidToken = errors.New("invalid or expired token")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT signs an HS256 token carrying the user id and role.
func GenerateJWT(userID int, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		ClaimUserID: userID,
		ClaimRole:   role,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseJWT verifies tokenString and returns the user id it was issued for.
func ParseJWT(tokenString string, secret []byte) (int, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	raw, ok := claims[ClaimUserID]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q claim", ErrInvalidToken, ClaimUserID)
	}
	idFloat, ok := raw.(float64)
	if !ok || idFloat != float64(int(idFloat)) || idFloat <= 0 {
		return 0, fmt.Errorf("%w: bad %q claim", ErrInvalidToken, ClaimUserID)
	}
	return int(idFloat), nil
}
