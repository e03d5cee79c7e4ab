package history

import (
	"github.com/gofiber/fiber/v2"
)

type HistoryApi struct {
	controller *HistoryController
}

func NewHistoryApi(controller *HistoryController) *HistoryApi {
	return &HistoryApi{
		controller: controller,
	}
}

func (h *HistoryApi) Setup(app *fiber.App) {
	group := app.Group("/api/history")

	group.Get("/", h.controller.GetHistory)
	group.Get("/queries", h.controller.GetQueries)
}
