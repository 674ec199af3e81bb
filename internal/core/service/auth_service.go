package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

// AuthService implements the signup and login use-cases.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	audit  ports.AuditTrail
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, audit ports.AuditTrail, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, audit: audit, log: log}
}

// Signup creates an account and returns a fresh token for it. The role is
// always User: signup can never create an admin. Email is normalized to
// lowercase before any store access.
func (s *AuthService) Signup(ctx context.Context, username, password, email string) (string, *domain.User, error) {
	if username == "" {
		return "", nil, &domain.MissingFieldError{Field: "username"}
	}
	if password == "" {
		return "", nil, &domain.MissingFieldError{Field: "password"}
	}
	if email == "" {
		return "", nil, &domain.MissingFieldError{Field: "email"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.record(domain.AuditSignup, username, false, conflict.Error())
		}
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Username)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditSignup, created.Username, true, "")
	return token, created, nil
}

// Login authenticates by username or, failing that, by lowercased email.
// Unknown subject and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	if username == "" && email == "" {
		return "", nil, &domain.MissingFieldError{Field: "username/email"}
	}
	if password == "" {
		return "", nil, &domain.MissingFieldError{Field: "password"}
	}

	var (
		user *domain.User
		err  error
	)
	if username != "" {
		user, err = s.repo.FindByUsername(ctx, username)
	} else {
		user, err = s.repo.FindByEmail(ctx, strings.ToLower(email))
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(domain.AuditLogin, loginSubject(username, email), false, "unknown user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		s.record(domain.AuditLogin, user.Username, false, "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditLogin, user.Username, true, "")
	return token, user, nil
}

func (s *AuthService) record(action domain.AuditAction, subject string, success bool, reason string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Subject: subject,
		Action:  action,
		Success: success,
		Reason:  reason,
		At:      time.Now().UTC(),
	})
}

func loginSubject(username, email string) string {
	if username != "" {
		return username
	}
	return strings.ToLower(email)
}
