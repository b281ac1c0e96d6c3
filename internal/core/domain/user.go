package domain

import (
	"errors"
	"time"
)

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// MinPasswordLength is the minimum plaintext password length accepted at registration.
const MinPasswordLength = 6

var ErrUserExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("email or password incorrect")

// User models a registered teacher (or admin) account.
// The password is kept only as a bcrypt hash and never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	School       string    `json:"school,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
