package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/rate"
)

// RateLimit rejects requests from clients exceeding the limiter's budget.
// Clients are keyed by remote IP.
func RateLimit(limiter *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			if !limiter.Check(clientIP(r)) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
