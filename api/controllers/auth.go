package controllers

import (
	"net/http"

	"github.com/lumenarts/gallery-api/api/middleware"
	"github.com/lumenarts/gallery-api/api/responses"
	"github.com/lumenarts/gallery-api/api/validators"
	"github.com/lumenarts/gallery-api/internal/auth"
	pkgAuth "github.com/lumenarts/gallery-api/pkg/auth"
	"github.com/lumenarts/gallery-api/pkg/config"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/types"
)

// AuthLogin verifies credentials and sets the session cookie. The token
// never appears in the body.
func AuthLogin(svc auth.Service, cookieCfg config.CookieConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(w, r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pkgAuth.SetSessionCookie(w, cookieCfg, result.Token, result.ExpiresAt)
		if logg != nil {
			logg.Info(logg.WithAdminID(r.Context(), result.Admin.ID.String()), "auth.login")
		}
		responses.WriteSuccess(w, types.Payload{"admin": result.Admin})
	}
}

// AuthLogout always clears the cookie. When the request still carries a
// valid session its token id is revoked as well.
func AuthLogout(svc auth.Service, cookieCfg config.CookieConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pkgAuth.ClearSessionCookie(w, cookieCfg)

		if s, ok := middleware.SessionFromContext(r.Context()); ok {
			if err := svc.Logout(r.Context(), s.TokenID, s.ExpiresAt); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, nil)
	}
}

func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		admin, err := svc.Me(r.Context(), s.AdminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.Payload{"admin": admin})
	}
}
