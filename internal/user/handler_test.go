package user

import (
	"context"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// helper to build an app with a simple "bootstrap" middleware that injects a
// jwt.Token into locals when the X-User-ID header is provided. This avoids
// pulling in the full jwtware middleware and keeps tests lightweight.
func makeAppWithUserHandler(uHandler *Handler) *fiber.App {
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
	uHandler.RegisterPublicRoutes(app)
	uHandler.RegisterProtectedRoutes(app)
	return app
}

func TestSignUpAndSignIn(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	handler := NewHandler(NewService(repo))
	app := makeAppWithUserHandler(handler)

	// register a new account
	signUpJSON := `{"email":"maya@example.com","password":"hunter2","first_name":"Maya","last_name":"Reed","phone":"555-0199"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(signUpJSON))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("sign-up request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for sign-up, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "password") {
		t.Fatalf("sign-up response should not expose password: %s", string(b))
	}

	// the stored password must be hashed, never the raw value
	stored, err := repo.GetByEmail(context.Background(), "maya@example.com")
	if err != nil {
		t.Fatalf("registered user not found: %v", err)
	}
	if stored.Password == "hunter2" || stored.Password == "" {
		t.Fatalf("password stored in the clear")
	}

	// duplicate email is rejected
	req2 := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(signUpJSON))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	// wrong password is rejected
	req3 := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"maya@example.com","password":"wrong"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res3.StatusCode)
	}

	// correct credentials return a token
	req4 := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"maya@example.com","password":"hunter2"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for sign-in, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"token"`) {
		t.Fatalf("sign-in response missing token: %s", string(b4))
	}
}

func TestProfileRoutes(t *testing.T) {
	seed := []User{{ID: 7, Email: "j@example.com", Password: "hash", FirstName: "Jenny", LastName: "Test", Phone: "123"}}
	repo := NewInMemoryRepository(seed)
	handler := NewHandler(NewService(repo))
	app := makeAppWithUserHandler(handler)

	// unauthorized request should yield 401
	req := httptest.NewRequest("GET", "/api/v1/profile", nil)
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("profile request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected unauthorized status, got %d", res.StatusCode)
	}

	// authorized request using X-User-ID header
	req2 := httptest.NewRequest("GET", "/api/v1/profile", nil)
	req2.Header.Set("X-User-ID", "7")
	res2, err := app.Test(req2)
	if err != nil {
		t.Fatalf("authorized profile request failed: %v", err)
	}
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 OK for authorized profile, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "j@example.com") {
		t.Fatalf("response body does not contain expected email, got %s", string(b2))
	}
	if strings.Contains(string(b2), "password") {
		t.Fatalf("response body should not expose password field")
	}

	// a partial PATCH only touches the fields it names
	req3 := httptest.NewRequest("PATCH", "/api/v1/profile", strings.NewReader(`{"address":"12 Willow Lane","city":"Portland"}`))
	req3.Header.Set("X-User-ID", "7")
	req3.Header.Set("Content-Type", "application/json")
	res3, err := app.Test(req3)
	if err != nil {
		t.Fatalf("PATCH update request failed: %v", err)
	}
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 OK on PATCH update, got %d", res3.StatusCode)
	}
	u, _ := repo.GetByID(context.Background(), 7)
	if u.Address != "12 Willow Lane" || u.City != "Portland" {
		t.Fatalf("address not persisted: %+v", u)
	}
	if u.FirstName != "Jenny" {
		t.Fatalf("unnamed field overwritten: %+v", u)
	}

	// full PUT replaces the named fields the same way
	req4 := httptest.NewRequest("PUT", "/api/v1/profile", strings.NewReader(`{"first_name":"New","last_name":"Name","phone":"999"}`))
	req4.Header.Set("X-User-ID", "7")
	req4.Header.Set("Content-Type", "application/json")
	res4, err := app.Test(req4)
	if err != nil {
		t.Fatalf("PUT update request failed: %v", err)
	}
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 OK on PUT update, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), "New") {
		t.Fatalf("updated response missing new name: %s", string(b4))
	}
}

func TestUpsertShipping_WritesProfileFields(t *testing.T) {
	seed := []User{{ID: 7, Email: "j@example.com", FirstName: "Jenny"}}
	repo := NewInMemoryRepository(seed)
	service := NewService(repo)

	err := service.UpsertShipping(context.Background(), 7, ShippingProfile{
		FirstName: "June", LastName: "Carver", Phone: "555-0101",
		Address: "12 Willow Lane", City: "Portland", State: "OR",
		PostalCode: "97035", Country: "United States",
	})
	if err != nil {
		t.Fatal(err)
	}

	u, _ := repo.GetByID(context.Background(), 7)
	if u.Address != "12 Willow Lane" || u.PostalCode != "97035" || u.FirstName != "June" {
		t.Fatalf("shipping profile not written: %+v", u)
	}
}
