package ports

import (
	"context"

	"github.com/userhub/accounts-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, username, password, email string) (string, *domain.User, error)
	Login(ctx context.Context, username, email, password string) (string, *domain.User, error)
}
