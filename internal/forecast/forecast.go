package forecast

import (
	"fmt"
	"strings"
)

// Row is one forecast entry for a product category.
type Row struct {
	Category         string  `json:"category"`
	ProductID        string  `json:"product_id"`
	ForecastedDemand int     `json:"forecasted_demand"`
	ConfidenceLevel  float64 `json:"confidence_level"`
	ForecastDate     string  `json:"forecast_date"`
}

// Result is the payload for POST /forecast_demand.
type Result struct {
	ForecastData []Row    `json:"forecast_data"`
	Categories   []string `json:"categories"`
	TotalRecords int      `json:"total_records"`
}

// Demand returns two mock forecast rows per category.
func Demand(categories []string) Result {
	rows := make([]Row, 0, 2*len(categories))
	for _, category := range categories {
		id := strings.ReplaceAll(strings.ToUpper(category), " ", "_")
		rows = append(rows,
			Row{
				Category:         category,
				ProductID:        fmt.Sprintf("PROD_%s_001", id),
				ForecastedDemand: 150,
				ConfidenceLevel:  0.85,
				ForecastDate:     "2024-01-15",
			},
			Row{
				Category:         category,
				ProductID:        fmt.Sprintf("PROD_%s_002", id),
				ForecastedDemand: 200,
				ConfidenceLevel:  0.92,
				ForecastDate:     "2024-01-15",
			},
		)
	}
	if categories == nil {
		categories = []string{}
	}
	return Result{ForecastData: rows, Categories: categories, TotalRecords: len(rows)}
}
