// Package interservice is the outbound HTTP adapter for peer services.
// Each request carries a short-lived service assertion: a token signed
// with the secret shared with the peer family, identifying this service
// instead of any end user.
package interservice

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const assertionTTL = time.Hour

// assertionSigner mints the service assertion for one peer family.
type assertionSigner struct {
	secret []byte
	family string
	now    func() time.Time
}

func newAssertionSigner(secret, family string) assertionSigner {
	return assertionSigner{
		secret: []byte(secret),
		family: family,
		now:    time.Now,
	}
}

// Sign issues a one-hour HS256 assertion with the interservice role and
// the peer family name.
func (s assertionSigner) Sign() (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":    "interservice",
		"service": s.family,
		"iat":     now.Unix(),
		"exp":     now.Add(assertionTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
