// Package cart implements the visitor's shopping cart: an insertion-ordered
// set of product lines with derived totals, persisted to a per-browser slot
// after every mutation.
package cart

// Line is one product's entry in the cart, keyed by product id. Name, price
// and image are snapshots taken when the product was added; they are not
// live-synced to later catalog changes.
type Line struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice *int   `json:"price"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Item is the product snapshot passed to Add.
type Item struct {
	ID        string
	Name      string
	UnitPrice *int
	Image     string
}

// Cart is the in-memory line set. Display order is insertion order.
type Cart struct {
	lines []Line
}

// Add merges quantity into the existing line for the item's id, or appends a
// new line. A quantity below 1 counts as 1; removal is a distinct operation,
// never a side effect of a small quantity.
func (c *Cart) Add(it Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].ID == it.ID {
			c.lines[i].Quantity += quantity
			return
		}
	}

	c.lines = append(c.lines, Line{
		ID:        it.ID,
		Name:      it.Name,
		UnitPrice: it.UnitPrice,
		Image:     it.Image,
		Quantity:  quantity,
	})
}

// SetQuantity sets the line's quantity, clamped to a minimum of 1. Unknown
// ids are ignored.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line regardless of its quantity. Unknown ids are
// ignored.
func (c *Cart) Remove(id string) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the line set in display order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	var total int
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines. Lines
// without a price count as zero.
func (c *Cart) TotalPrice() int {
	var total int
	for _, l := range c.lines {
		if l.UnitPrice != nil {
			total += *l.UnitPrice * l.Quantity
		}
	}
	return total
}
