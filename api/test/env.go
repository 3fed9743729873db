// Package test holds the end-to-end tests for the storefront API. The
// database-backed scenarios run against a disposable Postgres container and
// skip when Docker is not available; everything else runs in-process.
package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"
	"github.com/zeyal/storefront/api"
	"github.com/zeyal/storefront/config"
	"github.com/zeyal/storefront/database"
	"github.com/zeyal/storefront/rate"
)

// AdminPass is the shared admin password every test server is booted with.
const AdminPass = "test-admin-pass"

// WhatsappPhone is the order number every test server is booted with.
const WhatsappPhone = "905550000000"

type TestEnv struct {
	Server  *httptest.Server
	URL     string
	DB      *sqlx.DB
	Uploads *fakeUploader

	client *http.Client
}

type envOption func(*api.APIConfig)

// WithLoginLimiter swaps the generous default login limiter.
func WithLoginLimiter(lim *rate.Limiter) envOption {
	return func(cfg *api.APIConfig) { cfg.LoginLimiter = lim }
}

// NewTestEnv boots a storefront server against a disposable Postgres
// container. The test is skipped when Docker is unavailable.
func NewTestEnv(t *testing.T, name string, opts ...envOption) (*TestEnv, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping: cannot build docker pool: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("skipping: docker is not available: %v", err)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=" + name,
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	var db *sqlx.DB
	err = pool.Retry(func() error {
		db, err = database.Open(config.DB{
			User:       "postgres",
			Password:   "postgres",
			Host:       res.GetHostPort("5432/tcp"),
			Name:       name,
			DisableTLS: true,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres container: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating test database: %w", err)
	}

	env := newEnv(t, db, opts...)
	return env, nil
}

// NewAPIOnlyEnv boots a storefront server without a database, for routes
// that never touch it.
func NewAPIOnlyEnv(t *testing.T, opts ...envOption) *TestEnv {
	return newEnv(t, nil, opts...)
}

func newEnv(t *testing.T, db *sqlx.DB, opts ...envOption) *TestEnv {
	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := scs.New()
	sessions.Lifetime = time.Hour

	uploads := &fakeUploader{}

	cfg := api.APIConfig{
		Log:      log,
		DB:       db,
		Session:  sessions,
		Uploader: uploads,
		Admin: config.Admin{
			Password:       AdminPass,
			CookieLifetime: time.Hour,
		},
		Checkout:     config.Checkout{WhatsappPhone: WhatsappPhone},
		LoginLimiter: rate.NewLimiter(1000, 100, rate.Every(time.Microsecond)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httptest.NewServer(api.APIMux(cfg))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("building cookie jar: %v", err)
	}

	return &TestEnv{
		Server:  srv,
		URL:     srv.URL,
		DB:      db,
		Uploads: uploads,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Client returns an HTTP client holding the env's cookie jar and never
// following redirects, so gate decisions stay observable.
func (te *TestEnv) Client() *http.Client {
	return te.client
}

// withFreshJar clones the env with an empty cookie jar, simulating a second
// browser against the same server.
func (te *TestEnv) withFreshJar(t *testing.T) *TestEnv {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("building cookie jar: %v", err)
	}

	clone := *te
	client := *te.client
	client.Jar = jar
	clone.client = &client
	return &clone
}

// Login authenticates the env's client as the admin.
func Login(te *TestEnv) error {
	body, err := json.Marshal(map[string]string{"password": AdminPass})
	if err != nil {
		return err
	}

	w, err := te.Client().Post(te.URL+"/api/admin/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: status code %s", w.Status)
	}
	return nil
}

// Logout drops the env client's admin cookie.
func Logout(te *TestEnv) error {
	w, err := te.Client().Post(te.URL+"/api/admin/logout", "application/json", nil)
	if err != nil {
		return err
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		return fmt.Errorf("logout failed: status code %s", w.Status)
	}
	return nil
}

// fakeUploader is the blob storage collaborator used in tests: it records
// every upload and returns a deterministic URL.
type fakeUploader struct {
	mu      sync.Mutex
	Objects []fakeObject
}

type fakeObject struct {
	Name        string
	ContentType string
	Size        int
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Objects = append(f.Objects, fakeObject{Name: name, ContentType: contentType, Size: len(data)})
	return "https://cdn.invalid/" + name, nil
}
