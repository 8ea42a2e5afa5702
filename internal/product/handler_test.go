package product

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithProductHandler(h *Handler) *fiber.App {
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
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCreateProduct_RejectsUnknownCategory(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAppWithProductHandler(handler)

	req := httptest.NewRequest("POST", "/api/v1/products",
		strings.NewReader(`{"name":"Woven Basket","price":"2500","category":"Power Tools"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "category") {
		t.Fatalf("expected category error in response, got %s", string(b))
	}
}

func TestCreateProduct_AcceptsKnownCategory(t *testing.T) {
	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := makeAppWithProductHandler(handler)

	req := httptest.NewRequest("POST", "/api/v1/products",
		strings.NewReader(`{"name":"Woven Basket","price":"2500","category":"Home Decor","stock_quantity":10}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for valid product, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"Home Decor"`) {
		t.Fatalf("created product missing category: %s", string(b))
	}
}
