package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/craftroots/crafts-shop-backend/internal/cart"
	"github.com/craftroots/crafts-shop-backend/internal/order"
	"github.com/craftroots/crafts-shop-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/checkout", h.placeOrder)
	app.Post("/api/v1/checkout/quote", h.quote)
}

func (h *Handler) placeOrder(c *fiber.Ctx) error {
	payload := new(Form)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, err := h.service.PlaceOrder(c.UserContext(), userID, *payload)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":        "missing required fields",
				"missing_fields": verr.MissingFields,
			})
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case errors.Is(err, cart.ErrStoreUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "store unavailable, please retry"})
		case errors.Is(err, ErrOrderCreationFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to place your order, please try again"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order_id":     ord.ID,
		"total_amount": ord.TotalAmount,
		"status":       ord.Status,
	})
}

type quoteRequest struct {
	ShippingMethod string `json:"shipping_method"`
}

// quote prices the current cart for a shipping method without writing
// anything, so the UI can show the same breakdown checkout will persist.
func (h *Handler) quote(c *fiber.Ctx) error {
	payload := new(quoteRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.ShippingMethod == "" {
		payload.ShippingMethod = order.ShippingStandard
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	crt, err := h.service.carts.Load(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, cart.ErrStoreUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "store unavailable, please retry"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(NewQuote(crt.Subtotal, payload.ShippingMethod))
}
