package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

type UserService interface {
	Profile(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, username string) error
}
