package forecast

import "testing"

func TestDemand_TwoRowsPerCategory(t *testing.T) {
	res := Demand([]string{"Electronics", "Home Goods"})

	if res.TotalRecords != 4 {
		t.Errorf("TotalRecords: got %d, want 4", res.TotalRecords)
	}
	if len(res.ForecastData) != 4 {
		t.Fatalf("ForecastData: got %d rows, want 4", len(res.ForecastData))
	}
	if len(res.Categories) != 2 || res.Categories[0] != "Electronics" {
		t.Errorf("Categories: got %v", res.Categories)
	}

	first := res.ForecastData[0]
	if first.ProductID != "PROD_ELECTRONICS_001" {
		t.Errorf("ProductID: got %q", first.ProductID)
	}
	if first.ForecastedDemand != 150 || first.ConfidenceLevel != 0.85 {
		t.Errorf("row values: got %d/%v", first.ForecastedDemand, first.ConfidenceLevel)
	}

	third := res.ForecastData[2]
	if third.ProductID != "PROD_HOME_GOODS_001" {
		t.Errorf("ProductID with space: got %q", third.ProductID)
	}
}

func TestDemand_Empty(t *testing.T) {
	res := Demand(nil)
	if res.TotalRecords != 0 {
		t.Errorf("TotalRecords: got %d, want 0", res.TotalRecords)
	}
	if res.ForecastData == nil || res.Categories == nil {
		t.Error("slices must be empty, not nil")
	}
}
