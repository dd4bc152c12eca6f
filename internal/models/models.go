package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleDriver   UserRole = "driver"
	RoleCustomer UserRole = "customer"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusPickedUp  OrderStatus = "picked_up"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type User struct {
	ID            string     `db:"id"`
	Username      string     `db:"username"`
	FullName      *string    `db:"full_name"`
	PasswordHash  string     `db:"password_hash"`
	Role          UserRole   `db:"role"`
	Phone         *string    `db:"phone"`
	PhoneVerified bool       `db:"phone_verified"`
	AvatarURL     *string    `db:"avatar_url"`
	CreatedAt     time.Time  `db:"created_at"`
	LastLoginAt   *time.Time `db:"last_login_at"`
	LastSeenAt    *time.Time `db:"last_seen_at"`
}

type Order struct {
	ID           string      `db:"id"`
	ClientID     *string     `db:"client_id"`
	CustomerName string      `db:"customer_name"`
	DriverID     *string     `db:"driver_id"`
	Status       OrderStatus `db:"status"`
	PointsCost   float64     `db:"points_cost"`
	CreatedAt    time.Time   `db:"created_at"`
	DeliveredAt  *time.Time  `db:"delivered_at"`
}

type Rating struct {
	ID        string    `db:"id"`
	RateeID   string    `db:"ratee_id"`
	Score     float64   `db:"score"`
	CreatedAt time.Time `db:"created_at"`
}

// SiteVisitor rows are unique per (ip_address, visit_date).
type SiteVisitor struct {
	IPAddress string    `db:"ip_address"`
	VisitDate time.Time `db:"visit_date"`
	UserAgent string    `db:"user_agent"`
	PageURL   string    `db:"page_url"`
	Referrer  *string   `db:"referrer"`
	UserID    *string   `db:"user_id"`
}

type ServerHealthSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessMemBytes   int64     `db:"process_mem_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCPULoad    float64   `db:"process_cpu_load"`
	SystemCPULoad     float64   `db:"system_cpu_load"`
}
