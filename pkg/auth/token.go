package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lumenarts/gallery-api/pkg/config"
)

// Session tokens are HS256 only; any other alg in a header is rejected
// before the key is consulted.
var signingMethod = jwt.SigningMethodHS256

// ErrIncompleteClaims marks a correctly signed token that lacks the subject,
// id or role every session token is minted with.
var ErrIncompleteClaims = errors.New("token claims incomplete")

func checkConfig(cfg config.JWTConfig) error {
	switch {
	case cfg.Secret == "":
		return errors.New("jwt secret is required")
	case cfg.Issuer == "":
		return errors.New("jwt issuer is required")
	case cfg.TokenTTL <= 0:
		return errors.New("jwt ttl must be positive")
	}
	return nil
}

// MintAccessToken signs a session token valid from now for cfg.TokenTTL. A
// fresh token id is generated unless the payload carries one.
func MintAccessToken(cfg config.JWTConfig, now time.Time, payload AccessTokenPayload) (string, error) {
	if err := checkConfig(cfg); err != nil {
		return "", err
	}
	if payload.AdminID == uuid.Nil {
		return "", errors.New("admin id is required")
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("invalid role %q", payload.Role)
	}
	if payload.JTI == "" {
		payload.JTI = uuid.NewString()
	}

	signed, err := jwt.NewWithClaims(signingMethod, AccessTokenClaims{
		Email: payload.Email,
		Role:  payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        payload.JTI,
			Subject:   payload.AdminID.String(),
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, issuer and expiry, then checks the
// claims are complete. Errors from the jwt package are returned wrapped so
// callers can match jwt.ErrTokenExpired and friends.
func ParseAccessToken(cfg config.JWTConfig, raw string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}); err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	if _, err := claims.AdminID(); err != nil || claims.ID == "" || !claims.Role.IsValid() {
		return nil, ErrIncompleteClaims
	}
	return claims, nil
}
