// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxUsernameLen = 36

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrNameTaken       = errors.New("username already taken")
)

// User is an announced identity: a display name chosen by the client on join.
// Uniqueness is enforced by the registry, not here.
type User struct {
	Username string `json:"username"`
}

func NewUser(username string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	return &User{Username: username}, nil
}

func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
