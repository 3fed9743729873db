package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
)

// Panics recovers handler panics and turns them into errors the Errors
// middleware can report, keeping the server alive.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {

			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = weberr.InternalError(
						fmt.Errorf("panic: %v", rec),
						weberr.WithFields(map[string]interface{}{"trace": string(trace)}),
					)
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
