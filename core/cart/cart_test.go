package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intp(v int) *int { return &v }

func TestAddAccumulatesIntoOneLine(t *testing.T) {
	var c Cart

	it := Item{ID: "a", Name: "Vase", UnitPrice: intp(100)}
	quantities := []int{1, 3, 0, -5, 2}

	// Quantities at or below zero count as one.
	want := 1 + 3 + 1 + 1 + 2

	for _, q := range quantities {
		c.Add(it, q)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(lines))
	}
	if lines[0].Quantity != want {
		t.Fatalf("expected quantity %d, got %d", want, lines[0].Quantity)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	var c Cart

	c.Add(Item{ID: "b", Name: "Bowl"}, 1)
	c.Add(Item{ID: "a", Name: "Vase"}, 1)
	c.Add(Item{ID: "b", Name: "Bowl"}, 2)
	c.Add(Item{ID: "c", Name: "Plate"}, 1)

	var order []string
	for _, l := range c.Lines() {
		order = append(order, l.ID)
	}

	if diff := cmp.Diff([]string{"b", "a", "c"}, order); diff != "" {
		t.Fatalf("unexpected line order (-want +got):\n%s", diff)
	}
}

func TestTotalsAfterEveryMutation(t *testing.T) {
	var c Cart

	check := func(step string, wantQty, wantPrice int) {
		t.Helper()
		if got := c.TotalQuantity(); got != wantQty {
			t.Fatalf("%s: expected total quantity %d, got %d", step, wantQty, got)
		}
		if got := c.TotalPrice(); got != wantPrice {
			t.Fatalf("%s: expected total price %d, got %d", step, wantPrice, got)
		}
	}

	check("empty", 0, 0)

	c.Add(Item{ID: "a", Name: "Vase", UnitPrice: intp(100)}, 2)
	check("add a", 2, 200)

	c.Add(Item{ID: "b", Name: "Bowl", UnitPrice: nil}, 1)
	check("add unpriced b", 3, 200)

	c.SetQuantity("a", 5)
	check("set a to 5", 6, 500)

	c.Remove("a")
	check("remove a", 1, 0)

	c.Clear()
	check("clear", 0, 0)
}

func TestSetQuantityClampsToOne(t *testing.T) {
	var c Cart
	c.Add(Item{ID: "a", Name: "Vase", UnitPrice: intp(10)}, 3)

	for _, q := range []int{0, -1, -100} {
		c.SetQuantity("a", q)

		lines := c.Lines()
		if len(lines) != 1 {
			t.Fatalf("setting quantity %d must not remove the line", q)
		}
		if lines[0].Quantity != 1 {
			t.Fatalf("setting quantity %d: expected clamp to 1, got %d", q, lines[0].Quantity)
		}
	}
}

func TestSetQuantityUnknownIDIsNoop(t *testing.T) {
	var c Cart
	c.Add(Item{ID: "a", Name: "Vase"}, 2)

	c.SetQuantity("missing", 7)

	if got := c.TotalQuantity(); got != 2 {
		t.Fatalf("expected total quantity 2, got %d", got)
	}
}

func TestRemoveThenAddStartsFresh(t *testing.T) {
	var c Cart

	c.Add(Item{ID: "a", Name: "Vase", UnitPrice: intp(50)}, 9)
	c.Remove("a")
	c.Add(Item{ID: "a", Name: "Vase", UnitPrice: intp(50)}, 2)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected a fresh line with quantity 2, got %d", lines[0].Quantity)
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	var c Cart
	c.Add(Item{ID: "a", Name: "Vase"}, 1)

	c.Remove("missing")

	if len(c.Lines()) != 1 {
		t.Fatal("removing an unknown id must not change the cart")
	}
}
