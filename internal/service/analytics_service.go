package service

import (
	"context"

	"diabcar/internal/entities"
	"diabcar/internal/repository"
)

const recentOrdersLimit = 10

type AnalyticsService struct {
	repo *repository.AnalyticsRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*entities.DashboardResponse, error) {
	return s.repo.DashboardCounts(ctx)
}

func (s *AnalyticsService) Metrics(ctx context.Context) (*entities.MetricsResponse, error) {
	return s.repo.Metrics(ctx)
}

func (s *AnalyticsService) SalesOverview(ctx context.Context) (*entities.ChartResponse, error) {
	labels, data, err := s.repo.SalesOverview(ctx)
	if err != nil {
		return nil, err
	}
	return chart(labels, data, "Sales"), nil
}

func (s *AnalyticsService) SalesByCountry(ctx context.Context) (*entities.ChartResponse, error) {
	labels, data, err := s.repo.SalesByLocation(ctx)
	if err != nil {
		return nil, err
	}
	return chart(labels, data, "Sales by Country"), nil
}

func (s *AnalyticsService) TopCategories(ctx context.Context) (*entities.ChartResponse, error) {
	labels, data, err := s.repo.TopFuelTypes(ctx)
	if err != nil {
		return nil, err
	}
	return chart(labels, data, ""), nil
}

func (s *AnalyticsService) RecentOrders(ctx context.Context) ([]entities.RecentOrder, error) {
	return s.repo.RecentOrders(ctx, recentOrdersLimit)
}

func chart(labels []string, data []float64, label string) *entities.ChartResponse {
	return &entities.ChartResponse{
		Labels:   labels,
		Datasets: []entities.ChartDataset{{Label: label, Data: data}},
	}
}
