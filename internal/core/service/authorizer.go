package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

const reasonInsufficientClearance = "Insufficient clearance"

// Authorizer runs the request-authorization chain: token verification, role
// resolution, then a tier or self-or-admin check. Every stage returns an
// immutable result; nothing is decided from state carried inside the token
// beyond the subject's identity.
type Authorizer struct {
	tokens *TokenService
	repo   ports.UserRepository
	audit  ports.AuditTrail
	log    zerolog.Logger
}

func NewAuthorizer(tokens *TokenService, repo ports.UserRepository, audit ports.AuditTrail, log zerolog.Logger) *Authorizer {
	return &Authorizer{tokens: tokens, repo: repo, audit: audit, log: log}
}

// Authenticate runs the token and role-resolution stages. A missing, malformed
// or expired token rejects with 403 carrying the underlying reason. Role
// resolution never rejects: a vanished account or a store failure leaves the
// role unresolved and the decision to the following stage.
func (a *Authorizer) Authenticate(ctx context.Context, rawHeader string) (*domain.AuthContext, error) {
	raw, ok := ExtractToken(rawHeader)
	if !ok {
		return nil, domain.DeniedErr(domain.ErrTokenMissing)
	}

	authCtx, err := a.tokens.Verify(raw)
	if err != nil {
		return nil, domain.DeniedErr(err)
	}

	authCtx.Role = a.resolveRole(ctx, authCtx.SubjectID)
	return authCtx, nil
}

// resolveRole loads the subject's current role from the store. The role is
// re-read on every request so that role changes and deletions take effect
// without invalidating outstanding tokens.
func (a *Authorizer) resolveRole(ctx context.Context, subjectID string) domain.Role {
	user, err := a.repo.FindByID(ctx, subjectID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			a.log.Warn().Err(err).Str("subject_id", subjectID).Msg("role resolution failed")
		}
		return domain.RoleUnresolved
	}
	return user.Role
}

// CheckTier is the tier stage: the resolved role must be a member of the
// tier's allowed set. An unresolved role satisfies no tier.
func (a *Authorizer) CheckTier(authCtx *domain.AuthContext, tier domain.Tier) error {
	if !tier.Allows(authCtx.Role) {
		a.deny(authCtx.Username, tier.String())
		return domain.Denied(reasonInsufficientClearance)
	}
	return nil
}

// CheckOwner is the self-or-admin stage: admins pass unconditionally, anyone
// else must own the requested resource.
func (a *Authorizer) CheckOwner(authCtx *domain.AuthContext, owner string) error {
	if authCtx.Role == domain.RoleAdmin {
		return nil
	}
	if err := a.CheckTier(authCtx, domain.TierAnyAuthenticated); err != nil {
		return err
	}
	if authCtx.Username != owner {
		a.deny(authCtx.Username, "self_or_admin")
		return domain.Denied(reasonInsufficientClearance)
	}
	return nil
}

// Authorize composes the full chain for a tier-gated endpoint.
func (a *Authorizer) Authorize(ctx context.Context, rawHeader string, tier domain.Tier) (*domain.AuthContext, error) {
	authCtx, err := a.Authenticate(ctx, rawHeader)
	if err != nil {
		return nil, err
	}
	if err := a.CheckTier(authCtx, tier); err != nil {
		return nil, err
	}
	return authCtx, nil
}

// AuthorizeOwner composes the full chain for a self-or-admin endpoint.
func (a *Authorizer) AuthorizeOwner(ctx context.Context, rawHeader, owner string) (*domain.AuthContext, error) {
	authCtx, err := a.Authenticate(ctx, rawHeader)
	if err != nil {
		return nil, err
	}
	if err := a.CheckOwner(authCtx, owner); err != nil {
		return nil, err
	}
	return authCtx, nil
}

func (a *Authorizer) deny(subject, stage string) {
	if a.audit == nil {
		return
	}
	a.audit.Enqueue(domain.AuditEvent{
		Subject: subject,
		Action:  domain.AuditAccessDenied,
		Success: false,
		Reason:  stage,
		At:      time.Now().UTC(),
	})
}
