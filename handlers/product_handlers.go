package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ngim/utils"
)

// HandleListProducts returns a page of the catalog snapshot, for dropdowns
// and reports.
func HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 50)

	products := GetEngine().Products()
	pagination := utils.CreatePagination(len(products), page, pageSize)

	start := (pagination.CurrentPage - 1) * pagination.PageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pagination.PageSize
	if end > len(products) {
		end = len(products)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       products[start:end],
		"pagination": pagination,
	})
}

// HandleHealth reports liveness plus the size of the loaded snapshot.
func HandleHealth(c *fiber.Ctx) error {
	e := GetEngine()
	return c.JSON(fiber.Map{
		"success":      true,
		"products":     len(e.Products()),
		"monthly_rows": len(e.Monthly()),
	})
}
