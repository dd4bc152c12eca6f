package services

import (
	"github.com/jmoiron/sqlx"

	"deliverypro-backend-go/internal/models"
)

// RecentDriverOrders returns the driver's newest orders for the dashboard
// list, most recent first.
func RecentDriverOrders(db *sqlx.DB, driverID string, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	err := db.Select(&orders, `
SELECT id, client_id, customer_name, driver_id, status, points_cost, created_at, delivered_at
FROM orders
WHERE driver_id = $1
ORDER BY created_at DESC
LIMIT $2
`, driverID, limit)
	return orders, WrapError(err, "recent driver orders")
}
