package auth

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates bearer tokens with per-role shared secrets.
// Each caller family signs its tokens with its own secret, so a token is
// only decodable under the role it was issued for.
type HS256Verifier struct {
	secrets map[Role][]byte
}

// NewHS256Verifier creates a verifier from the per-role secrets. Roles
// absent from the map can never verify.
func NewHS256Verifier(secrets map[Role]string) HS256Verifier {
	keyed := make(map[Role][]byte, len(secrets))
	for role, secret := range secrets {
		keyed[role] = []byte(secret)
	}
	return HS256Verifier{secrets: keyed}
}

// Verify checks the token signature under the role's secret and extracts
// the id and role claims.
func (v HS256Verifier) Verify(token string, role Role) (TokenClaims, error) {
	secret, ok := v.secrets[role]
	if !ok {
		return TokenClaims{}, fmt.Errorf("no secret configured for role %q", role)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, fmt.Errorf("unexpected claims type %T", parsed.Claims)
	}

	userID, err := claimUserID(claims)
	if err != nil {
		return TokenClaims{}, err
	}

	claimedRole, ok := claims["role"].(string)
	if !ok {
		return TokenClaims{}, fmt.Errorf("token carries no role claim")
	}

	return TokenClaims{UserID: userID, Role: Role(claimedRole)}, nil
}

// claimUserID tolerates both numeric and string id claims; issuing
// services are not consistent about the JSON type.
func claimUserID(claims jwt.MapClaims) (int64, error) {
	switch id := claims["id"].(type) {
	case float64:
		return int64(id), nil
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("token id claim %q is not numeric: %w", id, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("token carries no usable id claim")
	}
}
