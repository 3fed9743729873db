package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/zeyal/storefront/core/product"
)

type productTest struct {
	*TestEnv
}

func TestProducts(t *testing.T) {
	env, err := NewTestEnv(t, "products_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}
	pt := &productTest{env}

	// Reads are open to everyone.
	if got := pt.listProductsOK(t); len(got) != 0 {
		t.Fatalf("expected an empty catalog, got %d products", len(got))
	}

	// Writes without a cookie bounce off the gate.
	body, _ := json.Marshal(product.ProductNew{Name: "Ceramic Vase"})
	w, err := pt.Client().Post(pt.URL+"/api/products", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusTemporaryRedirect {
		t.Fatalf("unauthenticated create must redirect, got status code %s", w.Status)
	}
	if loc := w.Header.Get("Location"); loc != "/admin/login" {
		t.Fatalf("API redirects must not carry a next parameter, got %q", loc)
	}

	if err := Login(pt.TestEnv); err != nil {
		t.Fatal(err)
	}

	price := 1250
	stock := "3"
	created := pt.createProductOK(t, product.ProductNew{
		Name:       "Ceramic Vase",
		Price:      &price,
		ImageURLs:  []string{"https://cdn.invalid/uploads/vase.png"},
		Categories: []string{"vases"},
		Stock:      &stock,
	})

	if created.ImageURL == nil || *created.ImageURL != "https://cdn.invalid/uploads/vase.png" {
		t.Fatalf("the first gallery image must become the cover, got %v", created.ImageURL)
	}

	listed := pt.listProductsOK(t)
	ignore := cmpopts.IgnoreFields(product.Product{}, "CreatedAt", "UpdatedAt")
	if len(listed) != 1 || !cmp.Equal(created, listed[0], ignore) {
		t.Fatalf("unexpected catalog after create:\n%s", cmp.Diff([]product.Product{created}, listed, ignore))
	}

	fetched := pt.showProductOK(t, created.ID)
	if !cmp.Equal(created, fetched, ignore) {
		t.Fatalf("unexpected product by id:\n%s", cmp.Diff(created, fetched, ignore))
	}

	// Newest first.
	second := pt.createProductOK(t, product.ProductNew{Name: "Bowl"})
	listed = pt.listProductsOK(t)
	if len(listed) != 2 || listed[0].ID != second.ID {
		t.Fatalf("expected the newest product first, got %+v", listed)
	}

	newName := "Glazed Ceramic Vase"
	newPrice := 1400
	updated := pt.updateProductOK(t, created.ID, product.ProductUp{Name: &newName, Price: &newPrice})
	if updated.Name != newName || updated.Price == nil || *updated.Price != newPrice {
		t.Fatalf("unexpected product after update: %+v", updated)
	}
	if updated.Stock == nil || *updated.Stock != stock {
		t.Fatalf("untouched fields must survive a partial update, got %+v", updated)
	}

	pt.deleteProductOK(t, created.ID)

	w, err = pt.Client().Get(pt.URL + "/api/products/" + created.ID)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got status code %s", w.Status)
	}

	// Validation happens at the boundary.
	w, err = pt.Client().Post(pt.URL+"/api/products", "application/json", bytes.NewReader([]byte(`{"price":10}`)))
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for a nameless product, got status code %s", w.Status)
	}
}

func (pt *productTest) listProductsOK(t *testing.T) []product.Product {
	t.Helper()

	w, err := pt.Client().Get(pt.URL + "/api/products")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't list products: status code %s", w.Status)
	}

	if cc := w.Header.Get("Cache-Control"); cc == "" {
		t.Fatal("the catalog listing must carry a cache policy")
	}

	var products []product.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("cannot unmarshal products: %v", err)
	}
	return products
}

func (pt *productTest) showProductOK(t *testing.T, id string) product.Product {
	t.Helper()

	w, err := pt.Client().Get(pt.URL + "/api/products/" + id)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't fetch product: status code %s", w.Status)
	}

	var p product.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("cannot unmarshal product: %v", err)
	}
	return p
}

func (pt *productTest) createProductOK(t *testing.T, pn product.ProductNew) product.Product {
	t.Helper()

	body, err := json.Marshal(pn)
	if err != nil {
		t.Fatal(err)
	}

	w, err := pt.Client().Post(pt.URL+"/api/products", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusCreated {
		t.Fatalf("can't create product: status code %s", w.Status)
	}

	var p product.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("cannot unmarshal created product: %v", err)
	}
	return p
}

func (pt *productTest) updateProductOK(t *testing.T, id string, up product.ProductUp) product.Product {
	t.Helper()

	body, err := json.Marshal(up)
	if err != nil {
		t.Fatal(err)
	}

	r, err := http.NewRequest(http.MethodPut, pt.URL+"/api/products/"+id, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}

	w, err := pt.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't update product: status code %s", w.Status)
	}

	var p product.Product
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("cannot unmarshal updated product: %v", err)
	}
	return p
}

func (pt *productTest) deleteProductOK(t *testing.T, id string) {
	t.Helper()

	r, err := http.NewRequest(http.MethodDelete, pt.URL+"/api/products/"+id, nil)
	if err != nil {
		t.Fatal(err)
	}

	w, err := pt.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("can't delete product: status code %s", w.Status)
	}
}
