package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lumenarts/gallery-api/api/responses"
	pkgAuth "github.com/lumenarts/gallery-api/pkg/auth"
	"github.com/lumenarts/gallery-api/pkg/auth/session"
	"github.com/lumenarts/gallery-api/pkg/config"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/logger"
)

// Auth validates the session token and seeds the request context with the
// claims. The cookie is preferred; a bearer header is accepted when the
// cookie is absent. revocations may be nil.
func Auth(jwtCfg config.JWTConfig, cookieCfg config.CookieConfig, revocations session.RevocationChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := authenticate(r, jwtCfg, cookieCfg, revocations)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(attachSession(r.Context(), s, logg)))
		})
	}
}

// Identify attaches the session when the request carries a usable token and
// otherwise passes the request through untouched.
func Identify(jwtCfg config.JWTConfig, cookieCfg config.CookieConfig, revocations session.RevocationChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := authenticate(r, jwtCfg, cookieCfg, revocations)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(attachSession(r.Context(), s, logg)))
		})
	}
}

func authenticate(r *http.Request, jwtCfg config.JWTConfig, cookieCfg config.CookieConfig, revocations session.RevocationChecker) (Session, error) {
	token := tokenFromRequest(r, cookieCfg.Name)
	if token == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	claims, err := pkgAuth.ParseAccessToken(jwtCfg, token)
	if err != nil {
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid or expired session")
	}

	// ParseAccessToken has already rejected unparsable subjects
	adminID, _ := claims.AdminID()

	if revocations != nil {
		revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session")
		}
		if revoked {
			return Session{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "session has been signed out")
		}
	}

	return Session{AdminID: adminID, Role: claims.Role, TokenID: claims.ID, ExpiresAt: claims.Expiry()}, nil
}

func attachSession(ctx context.Context, s Session, logg *logger.Logger) context.Context {
	ctx = WithSession(ctx, s)
	if logg != nil {
		ctx = logg.WithAdminID(ctx, s.AdminID.String())
		ctx = logg.WithField(ctx, "actor_role", string(s.Role))
	}
	return ctx
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil {
			if v := strings.TrimSpace(c.Value); v != "" {
				return v
			}
		}
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
