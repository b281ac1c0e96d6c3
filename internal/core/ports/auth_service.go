package ports

import (
	"context"

	"github.com/planejaula/planejaula-api/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	School   string
}

// AuthService defines registration, login and profile use cases.
// Register and Login return a signed bearer token alongside the user.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
