package repository

import (
	"context"
	"database/sql"
	"fmt"

	"diabcar/internal/entities"
)

type AnalyticsRepository struct {
	DB *sql.DB
}

func NewAnalyticsRepository(database *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: database}
}

func (r *AnalyticsRepository) DashboardCounts(ctx context.Context) (*entities.DashboardResponse, error) {
	var d entities.DashboardResponse
	query := `
		SELECT
			(SELECT COUNT(*) FROM cars),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM bookings)`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&d.TotalCars, &d.ActiveUsers, &d.CarsRented); err != nil {
		return nil, fmt.Errorf("error querying dashboard counts: %w", err)
	}
	return &d, nil
}

func (r *AnalyticsRepository) Metrics(ctx context.Context) (*entities.MetricsResponse, error) {
	var m entities.MetricsResponse
	query := `
		SELECT
			COALESCE((SELECT SUM(total_price) FROM bookings WHERE status = 'completed'), 0),
			COALESCE((SELECT SUM(price_per_day) FROM cars), 0),
			(SELECT COUNT(*) FROM bookings)`
	if err := r.DB.QueryRowContext(ctx, query).Scan(&m.TotalSales, &m.TotalCosts, &m.TotalOrders); err != nil {
		return nil, fmt.Errorf("error querying metrics: %w", err)
	}
	return &m, nil
}

// SalesOverview returns completed-booking revenue per day for the line
// chart.
func (r *AnalyticsRepository) SalesOverview(ctx context.Context) ([]string, []float64, error) {
	query := `
		SELECT DATE(created_at)::text AS date, SUM(total_price) AS sales
		FROM bookings
		WHERE status = 'completed'
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)`
	return r.labelledSums(ctx, query, "sales overview")
}

// SalesByLocation groups booking revenue by the car's location for the
// bar chart.
func (r *AnalyticsRepository) SalesByLocation(ctx context.Context) ([]string, []float64, error) {
	query := `
		SELECT c.location, SUM(b.total_price) AS sales
		FROM bookings b
		JOIN cars c ON b.car_id = c.id
		GROUP BY c.location
		ORDER BY sales DESC`
	return r.labelledSums(ctx, query, "sales by location")
}

// TopFuelTypes counts bookings per fuel type for the pie chart.
func (r *AnalyticsRepository) TopFuelTypes(ctx context.Context) ([]string, []float64, error) {
	query := `
		SELECT c.fuel_type, COUNT(*)::float AS count
		FROM bookings b
		JOIN cars c ON b.car_id = c.id
		GROUP BY c.fuel_type
		ORDER BY count DESC`
	return r.labelledSums(ctx, query, "top categories")
}

func (r *AnalyticsRepository) labelledSums(ctx context.Context, query, what string) ([]string, []float64, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying %s: %w", what, err)
	}
	defer rows.Close()

	var labels []string
	var data []float64
	for rows.Next() {
		var label string
		var value float64
		if err := rows.Scan(&label, &value); err != nil {
			return nil, nil, fmt.Errorf("error scanning %s row: %w", what, err)
		}
		labels = append(labels, label)
		data = append(data, value)
	}
	return labels, data, rows.Err()
}

func (r *AnalyticsRepository) RecentOrders(ctx context.Context, limit int) ([]entities.RecentOrder, error) {
	query := `
		SELECT b.id, u.name AS customer, b.status, b.total_price AS total
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC
		LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent orders: %w", err)
	}
	defer rows.Close()

	var orders []entities.RecentOrder
	for rows.Next() {
		var o entities.RecentOrder
		if err := rows.Scan(&o.ID, &o.Customer, &o.Status, &o.Total); err != nil {
			return nil, fmt.Errorf("error scanning recent order row: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
