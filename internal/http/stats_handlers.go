package httpapi

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"deliverypro-backend-go/internal/services"
)

type DriverStatsResponse struct {
	services.DriverStats
	RatingStars services.RatingStars `json:"rating_stars"`
	RatingHTML  string               `json:"rating_html"`
}

func (s *Server) DriverStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetDriverStats(s.DB, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, DriverStatsResponse{
		DriverStats: stats,
		RatingStars: services.SplitRating(stats.Rating),
		RatingHTML:  services.FormatRating(stats.Rating, true),
	})
}

type OrderDTO struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customerName"`
	Status       string  `json:"status"`
	Badge        string  `json:"badge"`
	Icon         string  `json:"icon"`
	PointsCost   float64 `json:"pointsCost"`
	CreatedLabel string  `json:"createdLabel"`
}

// DriverRecentOrders lists the newest orders with their display tokens
// already resolved for the active locale.
func (s *Server) DriverRecentOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := services.RecentDriverOrders(s.DB, CurrentUserID(r), parseInt(r.URL.Query().Get("limit"), 10))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	lang := CurrentLocale(r).Lang
	now := time.Now()
	items := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		items = append(items, OrderDTO{
			ID:           order.ID,
			CustomerName: services.Escape(&order.CustomerName),
			Status:       string(order.Status),
			Badge:        services.StatusBadge(order.Status),
			Icon:         services.StatusIcon(order.Status),
			PointsCost:   order.PointsCost,
			CreatedLabel: services.FormatDate(lang, order.CreatedAt, now),
		})
	}
	WriteJSON(w, http.StatusOK, map[string][]OrderDTO{"items": items})
}

func (s *Server) DriverActiveOrders(w http.ResponseWriter, r *http.Request) {
	count, err := services.CountActiveOrders(s.DB, CurrentUserID(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"active_orders": count})
}

func (s *Server) ClientStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetClientStats(s.DB, CurrentUserID(r), CurrentUsername(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// VisitorStats never fails the page: an aggregation error is logged and the
// dashboard gets zeros.
func (s *Server) VisitorStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.GetVisitorStats(s.DB)
	if err != nil {
		logrus.WithError(err).Warn("visitor stats unavailable")
		stats = services.VisitorStats{}
	}
	WriteJSON(w, http.StatusOK, stats)
}
