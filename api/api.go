package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/zeyal/storefront/api/middleware"
	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/config"
	"github.com/zeyal/storefront/core/auth"
	"github.com/zeyal/storefront/core/cart"
	"github.com/zeyal/storefront/core/checkout"
	"github.com/zeyal/storefront/core/product"
	"github.com/zeyal/storefront/core/upload"
	"github.com/zeyal/storefront/rate"
)

type APIConfig struct {
	CorsOrigin   string
	Log          logrus.FieldLogger
	DB           *sqlx.DB
	Session      *scs.SessionManager
	Uploader     upload.Uploader
	Admin        config.Admin
	Checkout     config.Checkout
	LoginLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

// APIMux builds the route table with the shared middleware chain. The access
// gate runs inside the chain for every route, so protected paths redirect to
// the login page before any handler logic.
func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, auth.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	a.mw = append(a.mw, auth.Gate(auth.SentinelChecker{}))

	limited := middleware.RateLimit(cfg.LoginLimiter)

	a.Handle(http.MethodPost, "/api/admin/login", auth.HandleLogin(cfg.Admin), limited)
	a.Handle(http.MethodPost, "/api/admin/logout", auth.HandleLogout())

	a.Handle(http.MethodGet, "/api/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/api/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/api/products", product.HandleCreate(cfg.DB))
	a.Handle(http.MethodPut, "/api/products/{id}", product.HandleUpdate(cfg.DB))
	a.Handle(http.MethodDelete, "/api/products/{id}", product.HandleDelete(cfg.DB))

	a.Handle(http.MethodPost, "/api/upload", upload.HandleCreate(cfg.Uploader))

	a.Handle(http.MethodGet, "/api/cart", cart.HandleShow(cfg.Session, cfg.Log))
	a.Handle(http.MethodDelete, "/api/cart", cart.HandleDelete(cfg.Session, cfg.Log))
	a.Handle(http.MethodPut, "/api/cart/items", cart.HandleCreateItem(cfg.Session, cfg.Log))
	a.Handle(http.MethodPut, "/api/cart/items/{id}", cart.HandleUpdateItem(cfg.Session, cfg.Log))
	a.Handle(http.MethodDelete, "/api/cart/items/{id}", cart.HandleDeleteItem(cfg.Session, cfg.Log))

	a.Handle(http.MethodPost, "/api/checkout", checkout.HandleCheckout(cfg.Session, cfg.Checkout, cfg.Log))

	a.Handle(http.MethodGet, auth.LoginPath, auth.HandleLoginPage())
	a.Handle(http.MethodGet, "/admin", auth.HandleAdminPage())
	a.Handle(http.MethodGet, "/admin/{path:.*}", auth.HandleAdminPage())

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
