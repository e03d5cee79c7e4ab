package cart

import (
	"github.com/gofiber/fiber/v2"
)

type CartApi struct {
	controller *CartController
}

func NewCartApi(controller *CartController) *CartApi {
	return &CartApi{
		controller: controller,
	}
}

func (h *CartApi) Setup(app *fiber.App) {
	group := app.Group("/api/cart")

	group.Get("/", h.controller.GetCart)
	group.Post("/items", h.controller.AddItem)
	group.Delete("/items/:id", h.controller.RemoveItem)
}
