// Package auth implements the admin access gate: a per-request decision on
// whether the caller must present the admin session cookie, plus the login
// handlers that issue it.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/zeyal/storefront/api/web"
)

const (
	// CookieName is the cookie carrying the admin session token.
	CookieName = "admin_auth"

	// LoginPath is where unauthenticated admin requests are sent.
	LoginPath = "/admin/login"

	sentinel = "1"
)

// TokenChecker decides whether a presented session token is valid. The gate
// never inspects tokens itself, so a structured session (expiry, rotation)
// can replace the sentinel without touching the routing decision.
type TokenChecker interface {
	Valid(token string) bool
}

// SentinelChecker accepts exactly the fixed token the login handler issues.
type SentinelChecker struct{}

func (SentinelChecker) Valid(token string) bool { return token == sentinel }

// Decision is the outcome of the gate for one request: pass through, or
// redirect to the login route.
type Decision struct {
	Allow    bool
	Redirect string
}

// Decide classifies the request against the protected resources and checks
// the token when one is required. Protected are the admin subtree minus the
// login page, the upload endpoint, and product mutations (anything outside
// GET/HEAD/OPTIONS).
//
// Admin page redirects carry the original path in a next parameter so the
// login flow can forward the user back; API paths get a bare redirect since
// an API caller cannot act on the convenience parameter anyway.
func Decide(path, method, token string, checker TokenChecker) Decision {
	adminPage := path == "/admin" || strings.HasPrefix(path, "/admin/")
	loginPage := path == LoginPath

	uploadAPI := path == "/api/upload"

	productsAPI := path == "/api/products" || strings.HasPrefix(path, "/api/products/")
	readMethod := method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
	productsWrite := productsAPI && !readMethod

	needsAuth := (adminPage && !loginPage) || uploadAPI || productsWrite
	if !needsAuth {
		return Decision{Allow: true}
	}

	if checker.Valid(token) {
		return Decision{Allow: true}
	}

	u := url.URL{Path: LoginPath}
	if adminPage {
		q := make(url.Values)
		q.Set("next", path)
		u.RawQuery = q.Encode()
	}
	return Decision{Redirect: u.String()}
}

// Gate is the middleware form of Decide: it reads the admin cookie and
// short-circuits with a redirect when the decision denies the request.
// Cookie absence is a normal branch, never an error.
func Gate(checker TokenChecker) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			var token string
			if c, err := r.Cookie(CookieName); err == nil {
				token = c.Value
			}

			d := Decide(r.URL.Path, r.Method, token, checker)
			if !d.Allow {
				return web.Redirect(w, r, d.Redirect, http.StatusTemporaryRedirect)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
