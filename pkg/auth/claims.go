package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/pkg/enums"
)

// AccessTokenPayload is what the login flow knows about the admin when a
// session token is minted. JTI may be left empty.
type AccessTokenPayload struct {
	AdminID uuid.UUID
	Email   string
	Role    enums.Role
	JTI     string
}

// AccessTokenClaims is the session token body. The admin id is carried in
// "sub" and the token id in "jti"; both are required on parse.
type AccessTokenClaims struct {
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *AccessTokenClaims) AdminID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// Expiry is the zero time for a token minted without "exp"; ParseAccessToken
// never returns such claims.
func (c *AccessTokenClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
