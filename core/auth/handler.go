package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/config"
	"github.com/zeyal/storefront/validate"
)

// Credentials is the login payload.
type Credentials struct {
	Password string `json:"password" validate:"required"`
}

// HandleLogin compares the submitted password to the configured admin secret
// and issues the admin cookie on match.
func HandleLogin(admin config.Admin) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var creds Credentials
		if err := web.Decode(w, r, &creds); err != nil {
			return weberr.NewError(err, "invalid request body", http.StatusBadRequest)
		}

		if err := validate.Check(creds); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if admin.Password == "" {
			return weberr.InternalError(errors.New("admin password is not configured"))
		}

		if subtle.ConstantTimeCompare([]byte(creds.Password), []byte(admin.Password)) != 1 {
			err := errors.New("wrong admin password")
			return weberr.NewError(err, "invalid password", http.StatusUnauthorized)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    sentinel,
			Path:     "/",
			MaxAge:   int(admin.CookieLifetime.Seconds()),
			HttpOnly: true,
			Secure:   admin.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})

		ok := struct {
			OK bool `json:"ok"`
		}{true}
		return web.Respond(ctx, w, ok, http.StatusOK)
	}
}

// HandleLogout expires the admin cookie.
func HandleLogout() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
