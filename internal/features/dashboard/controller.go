package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	Service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{Service: service}
}

// GetDashboard godoc
// @Summary Storefront dashboard
// @Description Counts of local, synced and active products plus recent API activity
// @Tags dashboard
// @Produce json
// @Success 200 {object} Summary
// @Router /api/dashboard [get]
func (ctrl *DashboardController) GetDashboard(c *fiber.Ctx) error {
	summary, err := ctrl.Service.Summarize(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}
