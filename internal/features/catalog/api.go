package catalog

import (
	"github.com/gofiber/fiber/v2"
)

type CatalogApi struct {
	controller *ProductController
}

func NewCatalogApi(controller *ProductController) *CatalogApi {
	return &CatalogApi{
		controller: controller,
	}
}

func (h *CatalogApi) Setup(app *fiber.App) {
	app.Get("/api/store", h.controller.GetStorefront)

	group := app.Group("/api/catalog")
	group.Post("/", h.controller.CreateProduct)
	group.Get("/", h.controller.ListProducts)
	group.Get("/:id", h.controller.GetProduct)
	group.Put("/:id", h.controller.UpdateProduct)
	group.Delete("/:id", h.controller.DeleteProduct)
}
