// Package web holds the small set of types and helpers every handler in the
// service is built on: handlers are plain functions returning errors, and the
// middleware chain decides how those errors turn into responses.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler is the signature all routes in the service implement.
type Handler func(ctx context.Context, w http.ResponseWriter, r *http.Request) error

// Middleware wraps a Handler with extra behavior.
type Middleware func(Handler) Handler

// WrapMiddleware applies the middleware list so the first entry runs first.
func WrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}

// Respond writes data as a JSON response with the given status code.
func Respond(ctx context.Context, w http.ResponseWriter, data interface{}, statusCode int) error {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("cannot marshal response data: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(jsonData); err != nil {
		return fmt.Errorf("cannot write response data to response writer: %w", err)
	}

	return nil
}

// Redirect short-circuits the request with a redirect to url.
func Redirect(w http.ResponseWriter, r *http.Request, url string, statusCode int) error {
	http.Redirect(w, r, url, statusCode)
	return nil
}

// Decode reads a JSON body into val, rejecting unknown fields and bodies
// larger than 1MiB.
func Decode(w http.ResponseWriter, r *http.Request, val interface{}) error {
	maxBytes := 1048576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(val); err != nil {
		return err
	}

	return nil
}

// Param extracts a path parameter from the request route.
func Param(r *http.Request, key string) string {
	m := mux.Vars(r)
	return m[key]
}
