package auth

import (
	"context"

	"orders/internal/pkg/errs"

	"go.uber.org/zap"
)

// TokenClaims is the identity a bearer token carries once decoded.
type TokenClaims struct {
	UserID int64
	Role   Role
}

// TokenVerifier checks a bearer token's signature against one role's
// secret and extracts its claims.
type TokenVerifier interface {
	Verify(token string, role Role) (TokenClaims, error)
}

// UserConfirmer asks the service owning a role whether the user behind a
// verified token still exists. The caller's own token authenticates the
// confirmation call.
type UserConfirmer interface {
	Confirm(ctx context.Context, role Role, userID int64, token string) error
}

// Matrix runs the role round-trip for protected operations. Each allowed
// role is tried in order: signature check under that role's secret, claim
// role match, then existence confirmation by the owning service. The first
// role to pass all three wins; a failure of any step just moves on to the
// next allowed role.
type Matrix struct {
	verifier  TokenVerifier
	confirmer UserConfirmer
	logger    *zap.Logger
}

// NewMatrix creates the authorization matrix.
func NewMatrix(verifier TokenVerifier, confirmer UserConfirmer, logger *zap.Logger) *Matrix {
	return &Matrix{
		verifier:  verifier,
		confirmer: confirmer,
		logger:    logger.With(zap.String("component", "auth")),
	}
}

// Authorize resolves the caller behind the token against the allowed roles.
// Returns errs.UnauthenticatedError for an absent token and
// errs.ForbiddenError when no allowed role accepts it. A token signed for a
// role outside the allowlist is rejected even when its signature is valid.
func (m *Matrix) Authorize(ctx context.Context, token string, allowed []Role) (Principal, error) {
	if token == "" {
		return Principal{}, errs.NewUnauthenticatedError("missing bearer token")
	}

	for _, role := range allowed {
		claims, err := m.verifier.Verify(token, role)
		if err != nil {
			continue
		}
		if claims.Role != role {
			continue
		}

		if err = m.confirmer.Confirm(ctx, role, claims.UserID, token); err != nil {
			m.logger.Debug("user confirmation failed",
				zap.String("role", string(role)),
				zap.Int64("user_id", claims.UserID),
				zap.Error(err))
			continue
		}

		return Principal{UserID: claims.UserID, Role: role}, nil
	}

	return Principal{}, errs.NewForbiddenError(roleNames(allowed))
}
