package sync

import (
	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
}

func NewSyncApi(controller *SyncController) *SyncApi {
	return &SyncApi{
		controller: controller,
	}
}

func (h *SyncApi) Setup(app *fiber.App) {
	products := app.Group("/api/products")

	products.Post("/sync", h.controller.SyncProducts)
	products.Post("/refresh-prices", h.controller.RefreshPrices)
	products.Get("/synced", h.controller.ListSynced)
	products.Get("/synced/export", h.controller.ExportSynced)
	products.Get("/synced/:id", h.controller.GetSynced)
	products.Delete("/synced/:id", h.controller.DeleteSynced)

	app.Get("/api/search", h.controller.SearchRemote)
	app.Get("/api/rates", h.controller.GetRates)
	app.Get("/api/convert", h.controller.ConvertAmount)
}
