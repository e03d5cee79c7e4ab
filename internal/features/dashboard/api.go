package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
}

func NewDashboardApi(controller *DashboardController) *DashboardApi {
	return &DashboardApi{
		controller: controller,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	app.Get("/api/dashboard", h.controller.GetDashboard)
}
