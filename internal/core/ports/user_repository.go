package ports

import (
	"context"

	"github.com/99minutos/user-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
// Every method returns domain.ErrUserNotFound when the id does not match a
// stored document, including ids that are not valid store identifiers.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Replace overwrites the document identified by u.ID and returns the stored result.
	Replace(ctx context.Context, u *domain.User) (*domain.User, error)
	// Delete removes the document and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// UserCache is an optional read-through cache in front of FindByID.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool, error)
	Set(ctx context.Context, u *domain.User) error
	Invalidate(ctx context.Context, id string) error
}
