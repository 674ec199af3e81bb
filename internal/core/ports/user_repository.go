package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

// UserRepository defines the persistence contract for accounts.
//
// Create must enforce username and email uniqueness atomically and report a
// violation as *domain.ConflictError naming the conflicting field; when both
// fields collide, username wins.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmail expects the email already lowercased by the caller.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	DeleteByUsername(ctx context.Context, username string) (int64, error)
	// ListAll returns every account ordered by role, then username.
	ListAll(ctx context.Context) ([]*domain.User, error)
}
