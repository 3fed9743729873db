package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/sirupsen/logrus"
	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/config"
	"github.com/zeyal/storefront/core/cart"
)

// HandleCheckout turns the session cart into a WhatsApp order link. The cart
// is left untouched; the handoff is not an order confirmation.
func HandleCheckout(sessions *scs.SessionManager, cfg config.Checkout, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		store := cart.NewStore(ctx, log, cart.NewSessionSlot(sessions))

		lines := store.Lines()
		if len(lines) == 0 {
			err := errors.New("no items to checkout")
			return weberr.NewError(err, err.Error(), http.StatusUnprocessableEntity)
		}

		resp := struct {
			URL string `json:"url"`
		}{BuildOrderURL(cfg.WhatsappPhone, lines, store.TotalPrice())}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}
