package sync

import (
	"context"
	"strconv"

	"go-shop/internal/clients/exchangerate"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// RateConverter extends RateFetcher with single-amount conversion for
// the rates endpoints.
type RateConverter interface {
	RateFetcher
	Convert(ctx context.Context, amountUSD decimal.Decimal) (*exchangerate.Conversion, error)
}

type SyncController struct {
	Service SyncService
	Rates   RateConverter
}

func NewSyncController(service SyncService, rates RateConverter) *SyncController {
	return &SyncController{
		Service: service,
		Rates:   rates,
	}
}

// SyncProducts godoc
// @Summary Synchronize products
// @Description Pull shoe products from the remote catalog and upsert them locally
// @Tags sync
// @Produce json
// @Param limit query int false "Max products to sync"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/products/sync [post]
func (ctrl *SyncController) SyncProducts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	result, err := ctrl.Service.Synchronize(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Synchronization finished",
		"data":    result,
	})
}

// RefreshPrices godoc
// @Summary Refresh COP prices
// @Description Recompute every synced product's COP price at the current rate
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/products/refresh-prices [post]
func (ctrl *SyncController) RefreshPrices(c *fiber.Ctx) error {
	updated, err := ctrl.Service.RefreshPrices(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   err.Error(),
			"updated": updated,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Prices refreshed",
		"updated": updated,
	})
}

// ListSynced godoc
// @Summary List synced products
// @Description List active synced products, optionally filtered
// @Tags sync
// @Produce json
// @Param category query string false "Category filter"
// @Param q query string false "Title filter"
// @Success 200 {array} SyncedProduct
// @Router /api/products/synced [get]
func (ctrl *SyncController) ListSynced(c *fiber.Ctx) error {
	products, err := ctrl.Service.ListProducts(c.UserContext(), c.Query("category"), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": products,
	})
}

// GetSynced godoc
// @Summary Get synced product
// @Tags sync
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SyncedProduct
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/synced/{id} [get]
func (ctrl *SyncController) GetSynced(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	product, err := ctrl.Service.GetProduct(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(product)
}

// DeleteSynced godoc
// @Summary Delete synced product
// @Description Administrative hard delete of one synced product
// @Tags sync
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/products/synced/{id} [delete]
func (ctrl *SyncController) DeleteSynced(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	if err := ctrl.Service.DeleteProduct(c.UserContext(), id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// ExportSynced godoc
// @Summary Export synced products
// @Description Download the active synced products as an xlsx workbook
// @Tags sync
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /api/products/synced/export [get]
func (ctrl *SyncController) ExportSynced(c *fiber.Ctx) error {
	data, err := ctrl.Service.ExportToExcel(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="synced_products.xlsx"`)
	return c.Send(data)
}

// SearchRemote godoc
// @Summary Search the remote catalog
// @Description Free-text remote search with COP prices attached
// @Tags sync
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} RemoteListing
// @Router /api/search [get]
func (ctrl *SyncController) SearchRemote(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.JSON(fiber.Map{
			"query": "",
			"data":  []RemoteListing{},
		})
	}

	listings, err := ctrl.Service.Search(c.UserContext(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"query": query,
		"data":  listings,
	})
}

// GetRates godoc
// @Summary Current exchange rates
// @Description Current USD rate table from the exchange-rate API
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/rates [get]
func (ctrl *SyncController) GetRates(c *fiber.Ctx) error {
	rate, err := ctrl.Rates.GetRate(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(rate)
}

// ConvertAmount godoc
// @Summary Convert USD to COP
// @Description Convert a USD amount at the current rate, rounded to 2 places
// @Tags sync
// @Produce json
// @Param amount query number true "Amount in USD"
// @Success 200 {object} exchangerate.Conversion
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/convert [get]
func (ctrl *SyncController) ConvertAmount(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || amount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid amount",
		})
	}

	conversion, err := ctrl.Rates.Convert(c.UserContext(), amount)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(conversion)
}
