package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"ngim/engine"
)

// HandleRefreshData reloads the snapshot from the store and rebuilds the
// whole pipeline engine. In-flight requests keep the engine they started
// with.
func HandleRefreshData(c *fiber.Ctx) error {
	if loadFn == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "No data loader configured",
		})
	}

	ds, err := loadFn()
	if err != nil {
		log.Printf("❌ [DATA] Reload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to reload data",
		})
	}

	e := engine.New(ds, GetEngine().Options())
	SetEngine(e)

	return c.JSON(fiber.Map{
		"success":      true,
		"products":     len(e.Products()),
		"monthly_rows": len(e.Monthly()),
	})
}
