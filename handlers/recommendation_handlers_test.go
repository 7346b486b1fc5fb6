package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"ngim/engine"
	"ngim/models"
	"ngim/store"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatal(err)
		}
		return d
	}
	sales := []models.SalesRecord{
		{InvoiceID: "I1", ProductID: 1, InvoiceDate: date("2024-05-01"), Quantity: 100, UnitPrice: 10},
		{InvoiceID: "I1", ProductID: 2, InvoiceDate: date("2024-05-01"), Quantity: 1, UnitPrice: 5},
		{InvoiceID: "I2", ProductID: 1, InvoiceDate: date("2024-06-01"), Quantity: 120, UnitPrice: 10},
		{InvoiceID: "I2", ProductID: 2, InvoiceDate: date("2024-06-01"), Quantity: 2, UnitPrice: 5},
		{InvoiceID: "I3", ProductID: 1, InvoiceDate: date("2024-07-01"), Quantity: 80, UnitPrice: 10},
	}
	products := []models.ProductRecord{
		{ID: 1, Name: "Tea", Category: "Beverages", BasePrice: 10},
		{ID: 2, Name: "Sugar", Category: "Grocery", BasePrice: 5},
	}
	store.AssignCategoryIDs(products)

	SetEngine(engine.New(&store.Dataset{Sales: sales, Products: products}, engine.MiningOptions{}))

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/health", HandleHealth)
	api.Get("/products", HandleListProducts)
	rec := api.Group("/recommendations")
	rec.Post("/", HandleGetRecommendation)
	rec.Get("/top", HandleTopForecast)
	rec.Get("/combos", HandleMineCombos)
	rec.Post("/combos/refresh", HandleRefreshCombos)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, data
}

func TestHandleGetRecommendation(t *testing.T) {
	app := testApp(t)

	code, body := postJSON(t, app, "/api/v1/recommendations/", map[string]interface{}{
		"product_id":     1,
		"forecast_month": "2024-08",
		"current_stock":  50,
	})
	assert.Equal(t, 200, code)

	var payload struct {
		Success bool                        `json:"success"`
		Data    models.RecommendationResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.True(t, payload.Success)
	assert.Len(t, payload.Data.ForecastList, 30)
	assert.Equal(t, 50.0, payload.Data.Stock)
	assert.NotEmpty(t, payload.Data.Bundles)
}

func TestHandleGetRecommendationStockCoercion(t *testing.T) {
	app := testApp(t)

	// Stock sent as a string still coerces; garbage defaults to 0.
	code, body := postJSON(t, app, "/api/v1/recommendations/", map[string]interface{}{
		"product_id":     1,
		"forecast_month": "2024-08",
		"current_stock":  "25.5",
	})
	assert.Equal(t, 200, code)

	var payload struct {
		Data models.RecommendationResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 25.5, payload.Data.Stock)

	code, body = postJSON(t, app, "/api/v1/recommendations/", map[string]interface{}{
		"product_id":     1,
		"forecast_month": "2024-08",
		"current_stock":  "lots",
	})
	assert.Equal(t, 200, code)
	assert.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, 0.0, payload.Data.Stock)
}

func TestHandleGetRecommendationBadInput(t *testing.T) {
	app := testApp(t)

	// Malformed month is a user error, not a server error.
	code, _ := postJSON(t, app, "/api/v1/recommendations/", map[string]interface{}{
		"product_id":     1,
		"forecast_month": "August 2024",
	})
	assert.Equal(t, 400, code)

	// Missing required fields.
	code, _ = postJSON(t, app, "/api/v1/recommendations/", map[string]interface{}{})
	assert.Equal(t, 400, code)
}

func TestHandleTopForecast(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations/top?month=2024-08&limit=1", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var payload struct {
		Data []models.TopForecastRow `json:"data"`
	}
	data, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(data, &payload))
	assert.Len(t, payload.Data, 1)
	assert.Equal(t, 1, payload.Data[0].ProductID)

	req = httptest.NewRequest("GET", "/api/v1/recommendations/top", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleMineCombosAndRefresh(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/api/v1/recommendations/combos?month=2025-05&minSupport=0.1&minConfidence=0.1", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var payload struct {
		Data engine.ComboOutcome `json:"data"`
	}
	data, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, engine.WindowPrevYearMonth, payload.Data.Window)
	assert.NotEmpty(t, payload.Data.Combos)

	req = httptest.NewRequest("POST", "/api/v1/recommendations/combos/refresh", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Malformed month on the combos endpoint is a 400.
	req = httptest.NewRequest("GET", "/api/v1/recommendations/combos?month=bad", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleListProducts(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/api/v1/products?page=1&pageSize=1", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var payload struct {
		Data       []models.ProductRecord `json:"data"`
		Pagination struct {
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	data, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(data, &payload))
	assert.Len(t, payload.Data, 1)
	assert.Equal(t, 2, payload.Pagination.TotalItems)
	assert.Equal(t, 2, payload.Pagination.TotalPages)
}

func TestHandleHealth(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
