package services

import (
	"math"

	"github.com/jmoiron/sqlx"
)

// DriverStats mirrors the driver dashboard cards. total_delivered and
// this_month duplicate total_orders and earnings_month under their legacy
// field names; older dashboard views still read them.
type DriverStats struct {
	TotalOrders     int     `json:"total_orders"`
	TotalDelivered  int     `json:"total_delivered"`
	CompletedToday  int     `json:"completed_today"`
	OrdersThisMonth int     `json:"orders_this_month"`
	EarningsToday   float64 `json:"earnings_today"`
	EarningsWeek    float64 `json:"earnings_week"`
	EarningsMonth   float64 `json:"earnings_month"`
	ThisMonth       float64 `json:"this_month"`
	TotalEarnings   float64 `json:"total_earnings"`
	ActiveOrders    int     `json:"active_orders"`
	Rating          float64 `json:"rating"`
}

// GetDriverStats computes each figure with its own query. The dashboard shows
// one driver at a time, so independent small scans beat a single clever pass.
func GetDriverStats(db *sqlx.DB, driverID string) (DriverStats, error) {
	stats := DriverStats{Rating: 5.0}

	if err := db.Get(&stats.TotalOrders, `
SELECT count(*) FROM orders WHERE driver_id = $1 AND status = 'delivered'`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "delivered total")
	}
	stats.TotalDelivered = stats.TotalOrders

	if err := db.Get(&stats.CompletedToday, `
SELECT count(*) FROM orders
WHERE driver_id = $1 AND status = 'delivered' AND delivered_at::date = CURRENT_DATE`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "delivered today")
	}

	if err := db.Get(&stats.OrdersThisMonth, `
SELECT count(*) FROM orders
WHERE driver_id = $1 AND status = 'delivered'
  AND date_trunc('month', delivered_at) = date_trunc('month', now())`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "delivered this month")
	}

	if err := db.Get(&stats.EarningsToday, `
SELECT COALESCE(SUM(points_cost), 0) FROM orders
WHERE driver_id = $1 AND status = 'delivered' AND delivered_at::date = CURRENT_DATE`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "earnings today")
	}

	if err := db.Get(&stats.EarningsWeek, `
SELECT COALESCE(SUM(points_cost), 0) FROM orders
WHERE driver_id = $1 AND status = 'delivered'
  AND date_trunc('week', delivered_at) = date_trunc('week', now())`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "earnings this week")
	}

	if err := db.Get(&stats.EarningsMonth, `
SELECT COALESCE(SUM(points_cost), 0) FROM orders
WHERE driver_id = $1 AND status = 'delivered'
  AND date_trunc('month', delivered_at) = date_trunc('month', now())`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "earnings this month")
	}
	stats.ThisMonth = stats.EarningsMonth

	if err := db.Get(&stats.TotalEarnings, `
SELECT COALESCE(SUM(points_cost), 0) FROM orders
WHERE driver_id = $1 AND status = 'delivered'`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "earnings total")
	}

	active, err := CountActiveOrders(db, driverID)
	if err != nil {
		return DriverStats{}, err
	}
	stats.ActiveOrders = active

	var avg *float64
	if err := db.Get(&avg, `SELECT AVG(score) FROM ratings WHERE ratee_id = $1`, driverID); err != nil {
		return DriverStats{}, WrapError(err, "average rating")
	}
	if avg != nil {
		stats.Rating = math.Round(*avg*100) / 100
	}

	return stats, nil
}

// ClientStats mirrors the customer dashboard cards.
type ClientStats struct {
	TotalOrders int `json:"total_orders"`
	Active      int `json:"active"`
	Delivered   int `json:"delivered"`
	ThisMonth   int `json:"this_month"`
}

// GetClientStats matches orders by linked client id OR by the legacy
// free-text customer name; historical orders predate the user link. SQL OR is
// per-row, so an order matching both conditions is still counted once.
func GetClientStats(db *sqlx.DB, clientID, username string) (ClientStats, error) {
	var stats ClientStats

	if err := db.Get(&stats.TotalOrders, `
SELECT count(*) FROM orders WHERE client_id = $1 OR customer_name = $2`, clientID, username); err != nil {
		return ClientStats{}, WrapError(err, "client total")
	}

	if err := db.Get(&stats.Active, `
SELECT count(*) FROM orders
WHERE (client_id = $1 OR customer_name = $2)
  AND status IN ('pending', 'accepted', 'picked_up')`, clientID, username); err != nil {
		return ClientStats{}, WrapError(err, "client active")
	}

	if err := db.Get(&stats.Delivered, `
SELECT count(*) FROM orders
WHERE (client_id = $1 OR customer_name = $2) AND status = 'delivered'`, clientID, username); err != nil {
		return ClientStats{}, WrapError(err, "client delivered")
	}

	if err := db.Get(&stats.ThisMonth, `
SELECT count(*) FROM orders
WHERE (client_id = $1 OR customer_name = $2)
  AND date_trunc('month', created_at) = date_trunc('month', now())`, clientID, username); err != nil {
		return ClientStats{}, WrapError(err, "client this month")
	}

	return stats, nil
}

// CountActiveOrders counts a driver's orders currently in flight.
func CountActiveOrders(db *sqlx.DB, driverID string) (int, error) {
	var count int
	if err := db.Get(&count, `
SELECT count(*) FROM orders
WHERE driver_id = $1 AND status IN ('accepted', 'picked_up')`, driverID); err != nil {
		return 0, WrapError(err, "active orders")
	}
	return count, nil
}
