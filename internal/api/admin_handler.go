package api

import (
	"net/http"

	"diabcar/internal/service"
)

// AdminHandler serves the dashboard counters and the analytics
// aggregates behind the admin area.
type AdminHandler struct {
	Service *service.AnalyticsService
}

func NewAdminHandler(svc *service.AnalyticsService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":     true,
		"message":     "Dashboard data fetched successfully!",
		"totalCars":   data.TotalCars,
		"activeUsers": data.ActiveUsers,
		"carsRented":  data.CarsRented,
	})
}

func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.Service.Metrics(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Metrics fetched successfully!",
		"metrics": metrics,
	})
}

func (h *AdminHandler) SalesOverview(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.SalesOverview(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Sales overview fetched successfully!",
		"labels":   chart.Labels,
		"datasets": chart.Datasets,
	})
}

func (h *AdminHandler) SalesByCountry(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.SalesByCountry(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Sales by country fetched successfully!",
		"labels":   chart.Labels,
		"datasets": chart.Datasets,
	})
}

func (h *AdminHandler) TopCategories(w http.ResponseWriter, r *http.Request) {
	chart, err := h.Service.TopCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Top categories fetched successfully!",
		"labels":   chart.Labels,
		"datasets": chart.Datasets,
	})
}

func (h *AdminHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.RecentOrders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, envelope{
		"success": true,
		"message": "Recent orders fetched successfully!",
		"orders":  orders,
	})
}
