// Package checkout hands the cart off to WhatsApp: it renders the cart as an
// order message and builds the wa.me link the storefront opens. There is no
// order persistence; the conversation is the order.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/zeyal/storefront/core/cart"
)

// BuildOrderURL renders the cart lines as a WhatsApp message addressed to
// phone (country code first, no plus) and returns the wa.me link.
func BuildOrderURL(phone string, lines []cart.Line, total int) string {
	rows := make([]string, 0, len(lines)+2)
	rows = append(rows, "Hello, I would like to order the following items:")

	for _, l := range lines {
		var lineTotal int
		if l.UnitPrice != nil {
			lineTotal = *l.UnitPrice * l.Quantity
		}
		rows = append(rows, fmt.Sprintf("• %s x%d = %s", l.Name, l.Quantity, formatTRY(lineTotal)))
	}

	rows = append(rows, "Subtotal: "+formatTRY(total))

	text := url.QueryEscape(strings.Join(rows, "\n"))
	return "https://wa.me/" + phone + "?text=" + text
}

func formatTRY(v int) string {
	return fmt.Sprintf("%d TL", v)
}
