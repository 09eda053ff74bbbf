package middleware

import (
	"net/http"
	"net/url"

	"github.com/angelmondragon/artesanos-backend/api/responses"
	pkgAuth "github.com/angelmondragon/artesanos-backend/pkg/auth"
	"github.com/angelmondragon/artesanos-backend/pkg/auth/session"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/logger"
	"github.com/angelmondragon/artesanos-backend/pkg/types"
)

// Session resolves the session cookie into an Actor when one is present.
// Requests without a usable cookie continue anonymously; gating is left to RequireLogin.
func Session(cfg config.SessionConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
			if err != nil || claims.ID == "" {
				next.ServeHTTP(w, r)
				return
			}

			if checker != nil {
				ok, err := checker.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
					return
				}
				if !ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			actor := types.Actor{
				UserID:    claims.UserID,
				ProfileID: claims.ProfileID,
				Username:  claims.Username,
				Role:      claims.Role,
			}
			ctx := WithActor(r.Context(), actor)
			ctx = withSessionID(ctx, claims.ID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, actor.UserID.String())
				ctx = logg.WithActorRole(ctx, string(actor.Role))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin sends anonymous callers to loginPath with ?next= set to the page they wanted.
func RequireLogin(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ActorFromContext(r.Context()); !ok {
				responses.Redirect(w, r, loginPath+"?next="+url.QueryEscape(r.URL.RequestURI()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
