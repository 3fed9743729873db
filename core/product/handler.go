package product

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/validate"
)

// listCacheControl lets the CDN serve the catalog for five minutes while
// browsers revalidate on every request, so a fresh admin edit shows up
// immediately for the editor.
const listCacheControl = "public, max-age=0, must-revalidate, s-maxage=300, stale-while-revalidate=86400"

// HandleList returns the whole catalog, newest first.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		products, err := List(ctx, db)
		if err != nil {
			return err
		}

		w.Header().Set("Cache-Control", listCacheControl)
		return web.Respond(ctx, w, products, http.StatusOK)
	}
}

// HandleShow returns a single product.
func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleCreate inserts a new product. When no cover image is given the first
// gallery image is promoted to cover, matching what the admin panel expects.
func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.NewError(err, "invalid request body", http.StatusBadRequest)
		}

		if err := validate.Check(pn); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		imageURL := pn.ImageURL
		if imageURL == nil && len(pn.ImageURLs) > 0 {
			imageURL = &pn.ImageURLs[0]
		}

		now := time.Now().UTC()
		p := Product{
			ID:          validate.GenerateID(),
			Name:        pn.Name,
			Description: pn.Description,
			Price:       pn.Price,
			ImageURL:    imageURL,
			ImageURLs:   pn.ImageURLs,
			Categories:  pn.Categories,
			Stock:       pn.Stock,
			CreatedAt:   now,
			UpdatedAt:   now,
			Version:     1,
		}
		if p.ImageURLs == nil {
			p.ImageURLs = []string{}
		}
		if p.Categories == nil {
			p.Categories = []string{}
		}

		if err := Create(ctx, db, p); err != nil {
			return err
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

// HandleUpdate applies a partial update to an existing product.
func HandleUpdate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ProductUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.NewError(err, "invalid request body", http.StatusBadRequest)
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return err
		}

		if up.Name != nil {
			p.Name = *up.Name
		}
		if up.Description != nil {
			p.Description = up.Description
		}
		if up.Price != nil {
			p.Price = up.Price
		}
		if up.ImageURL != nil {
			p.ImageURL = up.ImageURL
		}
		if up.ImageURLs != nil {
			p.ImageURLs = up.ImageURLs
			if p.ImageURL == nil && len(up.ImageURLs) > 0 {
				p.ImageURL = &up.ImageURLs[0]
			}
		}
		if up.Categories != nil {
			p.Categories = up.Categories
		}
		if up.Stock != nil {
			p.Stock = up.Stock
		}
		p.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, p); err != nil {
			return err
		}

		p.Version++
		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleDelete removes a product. Deleting an absent product succeeds.
func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if err := Delete(ctx, db, id); err != nil {
			return err
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
