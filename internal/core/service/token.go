package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/accounts-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// TokenService issues and verifies signed bearer tokens. Tokens carry the
// subject id and username only; the role is deliberately excluded so that
// role changes and deletions take effect without re-issuing tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue produces a signed token for the subject, expiring ttl from now.
func (s *TokenService) Issue(subjectID, username string) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the identity encoded in the
// token. Role is left unresolved; callers must load it from the store.
func (s *TokenService) Verify(raw string) (*domain.AuthContext, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenMalformed
	}

	return &domain.AuthContext{
		SubjectID: claims.Subject,
		Username:  claims.Username,
	}, nil
}

// ExtractToken pulls the bearer token out of a raw Authorization header
// value. A "Bearer " or "Token " prefix (case-sensitive, single space) is
// stripped; a header without a recognised prefix is taken as the token
// itself. ok is false when no header was supplied.
func ExtractToken(header string) (token string, ok bool) {
	if header == "" {
		return "", false
	}
	for _, prefix := range []string{"Bearer ", "Token "} {
		if rest, found := strings.CutPrefix(header, prefix); found {
			return rest, true
		}
	}
	return header, true
}
