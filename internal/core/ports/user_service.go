package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

// CreateUserInput carries the client-supplied fields of a new user.
type CreateUserInput struct {
	Username   string
	Email      string
	Photo      string
	Department string
	Role       string
}

// UpdateUserInput carries a partial update; nil fields keep their stored value.
type UpdateUserInput struct {
	Username   *string
	Email      *string
	Photo      *string
	Department *string
	Role       *string
}

// UserService defines use-case operations for users.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}
