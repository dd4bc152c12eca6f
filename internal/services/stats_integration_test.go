package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverypro-backend-go/internal/db"
	"deliverypro-backend-go/internal/migrations"
	"deliverypro-backend-go/internal/models"
)

// integrationDB connects to the database named by DATABASE_URL. These tests
// create their own rows under random ids, so they are safe to run against a
// shared dev database.
func integrationDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("RUN_DB_INTEGRATION") != "true" {
		t.Skip("set RUN_DB_INTEGRATION=true to run this integration test")
	}
	_ = godotenv.Load("../../.env")
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Fatal("DATABASE_URL is required")
	}
	conn, err := db.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, migrations.Apply(conn, "../../migrations"))
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func seedUser(t *testing.T, conn *sqlx.DB, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.NewString(),
		Username: fmt.Sprintf("t_%s_%d", role, time.Now().UnixNano()),
		Role:     role,
	}
	_, err := conn.Exec(`
INSERT INTO users (id, username, password_hash, role) VALUES ($1, $2, 'x', $3)`,
		user.ID, user.Username, user.Role)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM orders WHERE driver_id = $1 OR client_id = $1 OR customer_name = $2`, user.ID, user.Username)
		_, _ = conn.Exec(`DELETE FROM ratings WHERE ratee_id = $1`, user.ID)
		_, _ = conn.Exec(`DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

func seedOrder(t *testing.T, conn *sqlx.DB, order models.Order) {
	t.Helper()
	_, err := conn.Exec(`
INSERT INTO orders (id, client_id, customer_name, driver_id, status, points_cost, created_at, delivered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.NewString(), order.ClientID, order.CustomerName, order.DriverID,
		order.Status, order.PointsCost, order.CreatedAt, order.DeliveredAt)
	require.NoError(t, err)
}

func TestDriverStatsEmptyIntegration(t *testing.T) {
	conn := integrationDB(t)
	driver := seedUser(t, conn, models.RoleDriver)

	stats, err := GetDriverStats(conn, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)
	assert.Equal(t, 0, stats.TotalDelivered)
	assert.Equal(t, 0, stats.CompletedToday)
	assert.Equal(t, 0, stats.ActiveOrders)
	assert.Equal(t, 0.0, stats.TotalEarnings)
	assert.Equal(t, 5.0, stats.Rating, "no ratings defaults to 5.0")
}

func TestDriverStatsIntegration(t *testing.T) {
	conn := integrationDB(t)
	driver := seedUser(t, conn, models.RoleDriver)
	now := time.Now().UTC()

	seedOrder(t, conn, models.Order{
		CustomerName: "walk-in", DriverID: &driver.ID,
		Status: models.StatusDelivered, PointsCost: 50, CreatedAt: now, DeliveredAt: &now,
	})
	old := now.AddDate(0, -2, 0)
	seedOrder(t, conn, models.Order{
		CustomerName: "walk-in", DriverID: &driver.ID,
		Status: models.StatusDelivered, PointsCost: 30, CreatedAt: old, DeliveredAt: &old,
	})
	seedOrder(t, conn, models.Order{
		CustomerName: "walk-in", DriverID: &driver.ID,
		Status: models.StatusAccepted, PointsCost: 10, CreatedAt: now,
	})

	for _, score := range []float64{4, 5} {
		_, err := conn.Exec(`INSERT INTO ratings (id, ratee_id, score) VALUES ($1, $2, $3)`,
			uuid.NewString(), driver.ID, score)
		require.NoError(t, err)
	}

	stats, err := GetDriverStats(conn, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, stats.TotalOrders, stats.TotalDelivered)
	assert.Equal(t, 1, stats.CompletedToday)
	assert.Equal(t, 50.0, stats.EarningsToday)
	assert.Equal(t, 80.0, stats.TotalEarnings)
	assert.Equal(t, stats.EarningsMonth, stats.ThisMonth)
	assert.Equal(t, 1, stats.ActiveOrders)
	assert.Equal(t, 4.5, stats.Rating)

	active, err := CountActiveOrders(conn, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, active)
}

func TestClientStatsLegacyNameIntegration(t *testing.T) {
	conn := integrationDB(t)
	client := seedUser(t, conn, models.RoleCustomer)
	now := time.Now().UTC()

	// Matches both the linked id and the legacy name: must count once.
	seedOrder(t, conn, models.Order{
		ClientID: &client.ID, CustomerName: client.Username,
		Status: models.StatusPending, CreatedAt: now,
	})
	// Legacy order: no linked id, name only.
	seedOrder(t, conn, models.Order{
		CustomerName: client.Username,
		Status:       models.StatusDelivered, CreatedAt: now, DeliveredAt: &now,
	})

	stats, err := GetClientStats(conn, client.ID, client.Username)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalOrders, "an order matching id AND name counts once")
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Delivered)
	assert.Equal(t, 2, stats.ThisMonth)
}

func TestVisitorUpsertIntegration(t *testing.T) {
	conn := integrationDB(t)
	user := seedUser(t, conn, models.RoleCustomer)
	ip := "10.0.0." + fmt.Sprint(time.Now().UnixNano()%250)
	// Randomize further to dodge collisions across runs on the same day.
	ip = fmt.Sprintf("%s.%d", ip, time.Now().UnixNano()%250)
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM site_visitors WHERE ip_address = $1`, ip)
	})

	require.NoError(t, RecordVisit(conn, Visit{
		IP: ip, UserAgent: "test-agent", PageURL: "/first", UserID: &user.ID,
	}))
	// Second anonymous visit the same day: page_url moves, user stays.
	require.NoError(t, RecordVisit(conn, Visit{
		IP: ip, UserAgent: "test-agent", PageURL: "/second",
	}))

	var rows []models.SiteVisitor
	require.NoError(t, conn.Select(&rows, `
SELECT ip_address, visit_date, user_agent, page_url, referrer, user_id
FROM site_visitors WHERE ip_address = $1`, ip))
	require.Len(t, rows, 1, "same ip and day must upsert into one row")
	assert.Equal(t, "/second", rows[0].PageURL)

	// The row's date matches the database's own CURRENT_DATE, so the "today"
	// counter sees it regardless of the session timezone.
	var sameDay int
	require.NoError(t, conn.Get(&sameDay, `
SELECT count(*) FROM site_visitors WHERE ip_address = $1 AND visit_date = CURRENT_DATE`, ip))
	assert.Equal(t, 1, sameDay)
	require.NotNil(t, rows[0].UserID)
	assert.Equal(t, user.ID, *rows[0].UserID)

	stats, err := GetVisitorStats(conn)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Total, 1)
	assert.GreaterOrEqual(t, stats.Today, 1)
	assert.GreaterOrEqual(t, stats.ThisWeek, stats.Today)
}
