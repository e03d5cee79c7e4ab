package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const sessionCartKey = "cart_id"

type CartController struct {
	Service  CartService
	Sessions *session.Store
}

func NewCartController(service CartService, sessions *session.Store) *CartController {
	return &CartController{
		Service:  service,
		Sessions: sessions,
	}
}

// resolveCart binds the session to a cart row, creating both on demand.
func (ctrl *CartController) resolveCart(c *fiber.Ctx) (*Cart, error) {
	sess, err := ctrl.Sessions.Get(c)
	if err != nil {
		return nil, err
	}

	var cartID int64
	if raw := sess.Get(sessionCartKey); raw != nil {
		if id, ok := raw.(int64); ok {
			cartID = id
		}
	}

	cart, err := ctrl.Service.GetOrCreate(c.UserContext(), cartID)
	if err != nil {
		return nil, err
	}

	if cart.ID != cartID {
		sess.Set(sessionCartKey, cart.ID)
		if err := sess.Save(); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

// GetCart godoc
// @Summary View cart
// @Description Current session's cart with per-item subtotals and total
// @Tags cart
// @Produce json
// @Success 200 {object} CartView
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *fiber.Ctx) error {
	cart, err := ctrl.resolveCart(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	view, err := ctrl.Service.View(c.UserContext(), cart.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(view)
}

type addItemRequest struct {
	Type      string `json:"type"` // "local" or "api"
	ProductID int64  `json:"product_id"`
	ExternalItem
}

// AddItem godoc
// @Summary Add to cart
// @Description Add a local product by id, or an external product by payload
// @Tags cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Item to add"
// @Success 200 {object} CartView
// @Failure 400 {object} map[string]interface{}
// @Router /api/cart/items [post]
func (ctrl *CartController) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	cart, err := ctrl.resolveCart(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	switch req.Type {
	case "local":
		err = ctrl.Service.AddLocal(c.UserContext(), cart.ID, req.ProductID)
	case "api":
		err = ctrl.Service.AddExternal(c.UserContext(), cart.ID, req.ExternalItem)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be 'local' or 'api'",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	view, err := ctrl.Service.View(c.UserContext(), cart.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(view)
}

// RemoveItem godoc
// @Summary Remove from cart
// @Tags cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item id",
		})
	}

	cart, err := ctrl.resolveCart(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := ctrl.Service.RemoveItem(c.UserContext(), cart.ID, itemID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Item removed successfully",
	})
}
