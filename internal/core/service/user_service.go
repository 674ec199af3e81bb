package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

// UserService implements profile lookup, listing and deletion.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditTrail
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditTrail, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// List returns all accounts ordered by role, then username.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes the account by username. ErrUserNotFound when nothing was
// deleted.
func (s *UserService) Delete(ctx context.Context, username string) error {
	deleted, err := s.repo.DeleteByUsername(ctx, username)
	if err != nil {
		return err
	}
	if deleted < 1 {
		return domain.ErrUserNotFound
	}

	if s.audit != nil {
		s.audit.Enqueue(domain.AuditEvent{
			Subject: username,
			Action:  domain.AuditDelete,
			Success: true,
			At:      time.Now().UTC(),
		})
	}
	s.log.Info().Str("username", username).Msg("account deleted")
	return nil
}
