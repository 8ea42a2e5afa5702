package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"

	"github.com/craftroots/crafts-shop-backend/internal/product"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	repo := NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Woven Basket", Price: decimal.NewFromInt(2500), StockQuantity: 10},
		{ID: 2, Name: "Clay Vase", Price: decimal.NewFromInt(1200), StockQuantity: 3},
	})
	handler := NewHandler(NewService(repo))
	app := makeAppWithCartHandler(handler)

	// ensure routes registered
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/v1/cart"] {
		t.Fatalf("expected route '/api/v1/cart' to be registered")
	}
	if !routes["/api/v1/cart/items"] {
		t.Fatalf("expected route '/api/v1/cart/items' to be registered")
	}

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized GET on an empty cart returns the aggregate, not an error
	req2 := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"items":[]`) {
		t.Fatalf("expected empty items list, got %s", string(b2))
	}

	// add a product
	req3 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for adding to cart, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":2`) {
		t.Fatalf("expected quantity 2 in cart, got %s", string(b3))
	}

	// same product again folds into the existing line
	req4 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":1}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for second add, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after second add, got %s", string(b4))
	}
	if strings.Count(string(b4), `"product_id":1`) != 1 {
		t.Fatalf("expected a single line for product 1, got %s", string(b4))
	}

	// setting quantity above stock is rejected with a conflict
	req5 := httptest.NewRequest("PUT", "/api/v1/cart/items/1", strings.NewReader(`{"quantity":99}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for quantity above stock, got %d", res5.StatusCode)
	}

	// setting quantity to zero removes the line
	req6 := httptest.NewRequest("PUT", "/api/v1/cart/items/1", strings.NewReader(`{"quantity":0}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for zero quantity, got %d", res6.StatusCode)
	}
	b6, _ := io.ReadAll(res6.Body)
	if strings.Contains(string(b6), `"product_id":1`) {
		t.Fatalf("expected product 1 removed at quantity zero, got %s", string(b6))
	}

	// another user's line cannot be touched
	req7 := httptest.NewRequest("POST", "/api/v1/cart/items", strings.NewReader(`{"product_id":2,"quantity":1}`))
	req7.Header.Set("Content-Type", "application/json")
	req7.Header.Set("X-User-ID", "43")
	if res7, _ := app.Test(req7); res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for other user's add, got %d", res7.StatusCode)
	}
	req8 := httptest.NewRequest("DELETE", "/api/v1/cart/items/2", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	if res8.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 when removing another user's line, got %d", res8.StatusCode)
	}

	// clear the cart via DELETE endpoint
	req9 := httptest.NewRequest("DELETE", "/api/v1/cart", nil)
	req9.Header.Set("X-User-ID", "42")
	res9, _ := app.Test(req9)
	if res9.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clear cart, got %d", res9.StatusCode)
	}
}
