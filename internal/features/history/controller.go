package history

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type HistoryController struct {
	Service HistoryService
}

func NewHistoryController(service HistoryService) *HistoryController {
	return &HistoryController{
		Service: service,
	}
}

// GetHistory godoc
// @Summary Remote-call history
// @Description List recent audit records from both remote API histories
// @Tags history
// @Produce json
// @Param limit query int false "Max records per API"
// @Success 200 {object} map[string]interface{}
// @Router /api/history [get]
func (ctrl *HistoryController) GetHistory(c *fiber.Ctx) error {
	limit := queryLimit(c, 20)

	products, err := ctrl.Service.ListRecent(c.UserContext(), CollectionProductHistory, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	exchange, err := ctrl.Service.ListRecent(c.UserContext(), CollectionExchangeHistory, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"products": products,
		"exchange": exchange,
	})
}

// GetQueries godoc
// @Summary Pipeline run summaries
// @Description List recent per-run summary records
// @Tags history
// @Produce json
// @Param limit query int false "Max records"
// @Success 200 {object} map[string]interface{}
// @Router /api/history/queries [get]
func (ctrl *HistoryController) GetQueries(c *fiber.Ctx) error {
	records, err := ctrl.Service.ListRecent(c.UserContext(), CollectionQueries, queryLimit(c, 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": records,
	})
}

func queryLimit(c *fiber.Ctx, fallback int64) int64 {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
