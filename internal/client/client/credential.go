package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie the backend uses for the session token.
const SessionCookieName = "jwt"

// Credential describes the session token without verifying it. The client
// cannot check the signature; the backend stays the authority and this is
// only used for display and to drop tokens that are already expired.
type Credential struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that lies before now.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// InspectCredential decodes the claims of a JWT session token.
func InspectCredential(token string) (Credential, error) {
	if token == "" {
		return Credential{}, errors.New("empty credential")
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Credential{}, fmt.Errorf("inspect credential: %w", err)
	}
	var c Credential
	c.Subject = claims.Subject
	if claims.IssuedAt != nil {
		c.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		c.ExpiresAt = claims.ExpiresAt.Time
	}
	return c, nil
}
