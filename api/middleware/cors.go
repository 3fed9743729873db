package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/zeyal/storefront/api/web"
)

// Cors allows cross-origin requests from the given origin, with credentials
// so the session and admin cookies survive the round trip.
func Cors(origin string) web.Middleware {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{origin}),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowCredentials(),
	)

	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			var err error
			wrapped := cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(ctx, w, r)
			}))
			wrapped.ServeHTTP(w, r)

			return err
		}
		return h
	}
	return m
}
