// Package forecast generates the mock demand forecast served by
// POST /forecast_demand. The numbers are deterministic placeholders — two
// rows per requested product category — until a real forecasting backend
// exists.
package forecast
