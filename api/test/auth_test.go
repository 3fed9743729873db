package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/zeyal/storefront/rate"
)

func TestLoginFlow(t *testing.T) {
	env := NewAPIOnlyEnv(t)

	// Gate sends unauthenticated admin page requests to the login page,
	// remembering where they were going.
	w, err := env.Client().Get(env.URL + "/admin/settings")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("expected a redirect, got status code %s", w.Status)
	}
	loc, err := url.Parse(w.Header.Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != "/admin/login" || loc.Query().Get("next") != "/admin/settings" {
		t.Fatalf("unexpected redirect location %q", w.Header.Get("Location"))
	}

	// The login page itself is reachable without a cookie.
	w, err = env.Client().Get(env.URL + "/admin/login")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusOK {
		t.Fatalf("the login page must not be gated: status code %s", w.Status)
	}

	// A wrong password is rejected without a cookie being set.
	body, _ := json.Marshal(map[string]string{"password": "wrong"})
	w, err = env.Client().Post(env.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a wrong password, got status code %s", w.Status)
	}

	// A missing password is a validation failure, not an auth failure.
	w, err = env.Client().Post(env.URL+"/api/admin/login", "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing password, got status code %s", w.Status)
	}

	if err := Login(env); err != nil {
		t.Fatal(err)
	}

	// Authenticated requests pass through.
	w, err = env.Client().Get(env.URL + "/admin/settings")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusOK {
		t.Fatalf("expected the admin page after login, got status code %s", w.Status)
	}

	if err := Logout(env); err != nil {
		t.Fatal(err)
	}

	w, err = env.Client().Get(env.URL + "/admin/settings")
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("expected a redirect after logout, got status code %s", w.Status)
	}
}

func TestLoginRateLimit(t *testing.T) {
	// One request per minute with no burst headroom.
	env := NewAPIOnlyEnv(t, WithLoginLimiter(rate.NewLimiter(1, 100, rate.Every(time.Minute))))

	body, _ := json.Marshal(map[string]string{"password": "wrong"})

	w, err := env.Client().Post(env.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("first attempt should reach the handler, got status code %s", w.Status)
	}

	w, err = env.Client().Post(env.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second attempt should be throttled, got status code %s", w.Status)
	}
}
