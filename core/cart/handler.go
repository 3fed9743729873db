package cart

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/validate"
)

// ItemNew is the payload for adding a product to the cart. Quantity defaults
// to 1 when omitted; values below 1 are clamped, not rejected.
type ItemNew struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    *int   `json:"price" validate:"omitempty,gte=0"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// QuantityUp is the payload for setting a line's quantity.
type QuantityUp struct {
	Quantity int `json:"quantity"`
}

// View is the cart representation every cart endpoint responds with.
type View struct {
	Items         []Line `json:"items"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalPrice    int    `json:"totalPrice"`
	Open          bool   `json:"open"`
}

func newView(s *Store) View {
	return View{
		Items:         s.Lines(),
		TotalQuantity: s.TotalQuantity(),
		TotalPrice:    s.TotalPrice(),
		Open:          s.IsOpen(),
	}
}

// HandleShow returns the current cart with its derived totals.
func HandleShow(sessions *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		store := NewStore(ctx, log, NewSessionSlot(sessions))
		return web.Respond(ctx, w, newView(store), http.StatusOK)
	}
}

// HandleCreateItem adds a product snapshot to the cart, merging quantities
// when the product is already present.
func HandleCreateItem(sessions *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, "invalid request body", http.StatusBadRequest)
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		store := NewStore(ctx, log, NewSessionSlot(sessions))
		store.Add(ctx, Item{ID: in.ID, Name: in.Name, UnitPrice: in.Price, Image: in.Image}, in.Quantity)

		return web.Respond(ctx, w, newView(store), http.StatusOK)
	}
}

// HandleUpdateItem sets the quantity of an existing line. Unknown ids are a
// no-op, mirroring the in-memory semantics.
func HandleUpdateItem(sessions *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		var in QuantityUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.NewError(err, "invalid request body", http.StatusBadRequest)
		}

		store := NewStore(ctx, log, NewSessionSlot(sessions))
		store.SetQuantity(ctx, id, in.Quantity)

		return web.Respond(ctx, w, newView(store), http.StatusOK)
	}
}

// HandleDeleteItem removes a line entirely, whatever its quantity.
func HandleDeleteItem(sessions *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		store := NewStore(ctx, log, NewSessionSlot(sessions))
		store.Remove(ctx, id)

		return web.Respond(ctx, w, newView(store), http.StatusOK)
	}
}

// HandleDelete empties the cart.
func HandleDelete(sessions *scs.SessionManager, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		store := NewStore(ctx, log, NewSessionSlot(sessions))
		store.Clear(ctx)

		return web.Respond(ctx, w, newView(store), http.StatusOK)
	}
}
