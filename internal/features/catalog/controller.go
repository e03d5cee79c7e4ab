package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ProductController struct {
	Service ProductService
}

func NewProductController(service ProductService) *ProductController {
	return &ProductController{
		Service: service,
	}
}

// GetStorefront godoc
// @Summary Storefront
// @Description Native products plus a live remote catalog fetch
// @Tags catalog
// @Produce json
// @Param q query string false "Name filter for native products"
// @Success 200 {object} StorefrontView
// @Router /api/store [get]
func (ctrl *ProductController) GetStorefront(c *fiber.Ctx) error {
	view, err := ctrl.Service.Storefront(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(view)
}

// CreateProduct godoc
// @Summary Create product
// @Tags catalog
// @Accept json
// @Produce json
// @Param product body Product true "Product Details"
// @Success 201 {object} Product
// @Failure 400 {object} map[string]interface{}
// @Router /api/catalog [post]
func (ctrl *ProductController) CreateProduct(c *fiber.Ctx) error {
	var product Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if product.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	if err := ctrl.Service.CreateProduct(c.UserContext(), &product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// ListProducts godoc
// @Summary List native products
// @Tags catalog
// @Produce json
// @Param q query string false "Name filter"
// @Success 200 {array} Product
// @Router /api/catalog [get]
func (ctrl *ProductController) ListProducts(c *fiber.Ctx) error {
	products, err := ctrl.Service.ListProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": products,
	})
}

// GetProduct godoc
// @Summary Get native product
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Product
// @Failure 404 {object} map[string]interface{}
// @Router /api/catalog/{id} [get]
func (ctrl *ProductController) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
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

// UpdateProduct godoc
// @Summary Update native product
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body Product true "Product Updates"
// @Success 200 {object} Product
// @Failure 404 {object} map[string]interface{}
// @Router /api/catalog/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}

	var product Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	product.ID = id

	if err := ctrl.Service.UpdateProduct(c.UserContext(), &product); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct godoc
// @Summary Delete native product
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/catalog/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
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

func parseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
