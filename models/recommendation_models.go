package models

// Combo is a mined product bundle, exposed by product name only.
type Combo struct {
	Products []string `json:"products"`
}

// ComboRule is a scored association between two products; AID < BID always.
type ComboRule struct {
	AID        int     `json:"product_a_id"`
	BID        int     `json:"product_b_id"`
	Support    float64 `json:"support"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
}

// DailyForecast represents the predicted sales for a single day.
type DailyForecast struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
	Trend    string `json:"trend"`
}

// InventoryMetrics carries reorder guidance derived from a monthly forecast
// and the current stock level.
type InventoryMetrics struct {
	AvgDaily       float64 `json:"avg_daily"`
	DaysOfSupply   float64 `json:"days_of_supply"`
	TargetStock    int     `json:"target_stock"`
	SuggestedOrder int     `json:"suggested_order"`
}

// SeasonSummary names the strongest and weakest calendar months for a
// product, or "—" when there is no history.
type SeasonSummary struct {
	PeakMonth string `json:"peak_month"`
	LowMonth  string `json:"low_month"`
}

// RecommendationResult is the complete decision-support payload for one
// product and forecast month.
type RecommendationResult struct {
	Product        ProductRecord    `json:"product"`
	ForecastList   []int            `json:"forecast_list"`
	ForecastTotal  int              `json:"forecast_total"`
	DailyBreakdown []DailyForecast  `json:"daily_breakdown"`
	DailyAvg       int              `json:"daily_avg"`
	DailyMin       int              `json:"daily_min"`
	DailyMax       int              `json:"daily_max"`
	Inventory      InventoryMetrics `json:"inventory"`
	Season         SeasonSummary    `json:"season"`
	Bundles        []Combo          `json:"bundles"`
	Days           int              `json:"days"`
	Stock          float64          `json:"stock"`
	ForecastMonth  string           `json:"forecast_month"`
}

// TopForecastRow is one entry of the top-N forecast report.
type TopForecastRow struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	ForecastQty int    `json:"forecast_qty"`
}
