package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"ngim/engine"
)

// RecommendationRequest is the payload of the recommendation endpoint.
// CurrentStock accepts any numeric-coercible JSON value.
type RecommendationRequest struct {
	ProductID     int         `json:"product_id" validate:"required,gt=0"`
	ForecastMonth string      `json:"forecast_month" validate:"required"`
	CurrentStock  interface{} `json:"current_stock"`
}

// HandleGetRecommendation assembles the full decision-support result for one
// product and forecast month.
func HandleGetRecommendation(c *fiber.Ctx) error {
	var req RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "product_id and forecast_month are required",
		})
	}

	stock := coerceStock(req.CurrentStock)

	result, err := GetEngine().Recommend(req.ProductID, req.ForecastMonth, stock)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidMonth) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		log.Printf("❌ [RECOMMEND] Failed for product %d: %v", req.ProductID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to generate recommendation",
		})
	}

	log.Printf("✅ [RECOMMEND] Product %d, month %s, stock %.1f", req.ProductID, req.ForecastMonth, stock)
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// HandleTopForecast runs the forecast across the catalog and returns the
// top-N products for the requested month.
func HandleTopForecast(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "month query parameter is required",
		})
	}
	limit := c.QueryInt("limit", 10)

	rows, err := GetEngine().TopForecast(month, limit)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// HandleMineCombos mines product bundles, optionally conditioned on a
// forecast month.
func HandleMineCombos(c *fiber.Ctx) error {
	e := GetEngine()
	opts := e.Options()
	if v := c.Query("minSupport"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinSupport = f
		}
	}
	if v := c.Query("minConfidence"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.MinConfidence = f
		}
	}
	opts.MaxCombos = c.QueryInt("maxCombos", opts.MaxCombos)

	outcome, err := e.MineCombos(c.Query("month"), opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": outcome})
}

// HandleRefreshCombos recomputes the cached unconditioned combo result.
func HandleRefreshCombos(c *fiber.Ctx) error {
	combos := GetEngine().RefreshCombos()
	return c.JSON(fiber.Map{"success": true, "data": combos})
}

// coerceStock turns whatever JSON value the client sent into a float64,
// defaulting to 0 when it cannot be read as a number.
func coerceStock(v interface{}) float64 {
	switch s := v.(type) {
	case float64:
		return s
	case int:
		return float64(s)
	case string:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}
