package session

import (
	"context"
	"errors"
	"time"
)

var errMissingTokenID = errors.New("token id is required")

type denyList interface {
	DenyToken(ctx context.Context, jti string, ttl time.Duration) error
	TokenDenied(ctx context.Context, jti string) (bool, error)
}

// RevocationChecker exposes the read-only surface needed by middleware.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Revocations is a deny-list of token ids. Entries live exactly as long as
// the token they revoke could still be presented.
type Revocations struct {
	list denyList
	now  func() time.Time
}

// NewRevocations builds a deny-list on top of the redis client.
func NewRevocations(list denyList) (*Revocations, error) {
	if list == nil {
		return nil, errors.New("deny list store is required")
	}
	return &Revocations{list: list, now: time.Now}, nil
}

// Revoke records jti until expiresAt. Tokens that already expired are
// ignored since they can no longer authenticate.
func (r *Revocations) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return errMissingTokenID
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.list.DenyToken(ctx, jti, ttl)
}

func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, errMissingTokenID
	}
	return r.list.TokenDenied(ctx, jti)
}
