package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/angelmondragon/artesanos-backend/api/middleware"
	"github.com/angelmondragon/artesanos-backend/api/responses"
	"github.com/angelmondragon/artesanos-backend/api/validators"
	"github.com/angelmondragon/artesanos-backend/internal/auth"
	"github.com/angelmondragon/artesanos-backend/internal/stores"
	"github.com/angelmondragon/artesanos-backend/pkg/config"
	"github.com/angelmondragon/artesanos-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/artesanos-backend/pkg/errors"
	"github.com/angelmondragon/artesanos-backend/pkg/logger"
)

const (
	registeredMessage = "Registro exitoso. Ahora puedes iniciar sesión."
	welcomeMessage    = "Bienvenido %s"
	loggedOutMessage  = "Has cerrado sesión correctamente."
)

// AuthRegister creates an account with the given role. Field problems are
// collected by the service, so the body is only decoded here.
func AuthRegister(svc auth.RegisterService, role enums.Role, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}
		var body auth.RegisterRequest
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Role = role

		user, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAction(w, http.StatusCreated, registeredMessage, loginPathFor(role, cfg), user)
	}
}

// AuthLogin authenticates against the role's login page and sets the session cookie.
func AuthLogin(svc auth.Service, role enums.Role, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), body, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    resp.Token,
			Path:     "/",
			Expires:  resp.ExpiresAt,
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		username := body.Username
		if resp.User != nil {
			username = resp.User.Username
		}
		responses.WriteAction(w, http.StatusOK, fmt.Sprintf(welcomeMessage, username), afterLogin(r, role), resp)
	}
}

// AuthLogout revokes the current session and clears the cookie. Anonymous callers get the same answer.
func AuthLogout(svc auth.Service, role enums.Role, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}
		if err := svc.Logout(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
		responses.WriteAction(w, http.StatusOK, loggedOutMessage, loginPathFor(role, cfg), nil)
	}
}

func loginPathFor(role enums.Role, cfg config.SessionConfig) string {
	if role == enums.RoleBuyer {
		if cfg.BuyerLoginURL != "" {
			return cfg.BuyerLoginURL
		}
		return buyerLoginPath
	}
	if cfg.LoginPath != "" {
		return cfg.LoginPath
	}
	return sellerLoginPath
}

func afterLogin(r *http.Request, role enums.Role) string {
	if next := r.URL.Query().Get("next"); next != "" {
		if path := localPath(next, r.Host); path != "" {
			return path
		}
	}
	if role == enums.RoleBuyer {
		return catalogPath
	}
	return stores.DashboardPath
}
