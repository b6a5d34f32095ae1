package entities

// DashboardResponse backs the admin landing page counters.
type DashboardResponse struct {
	TotalCars   int `json:"totalCars"`
	ActiveUsers int `json:"activeUsers"`
	CarsRented  int `json:"carsRented"`
}

type MetricsResponse struct {
	TotalSales  float64 `json:"totalSales"`
	TotalCosts  float64 `json:"totalCosts"`
	TotalOrders int     `json:"totalOrders"`
}

// ChartDataset matches the shape the charting frontend consumes directly.
type ChartDataset struct {
	Label string    `json:"label,omitempty"`
	Data  []float64 `json:"data"`
}

type ChartResponse struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type RecentOrder struct {
	ID       int     `json:"id"`
	Customer string  `json:"customer"`
	Status   string  `json:"status"`
	Total    float64 `json:"total"`
}
