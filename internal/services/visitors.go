package services

import (
	"github.com/jmoiron/sqlx"
)

// Visit is one page view as derived from the incoming request.
type Visit struct {
	IP        string
	UserAgent string
	PageURL   string
	Referrer  *string
	UserID    *string
}

// RecordVisit upserts the visitor row for (ip, today). A later visit on the
// same day overwrites page_url and attaches a user id only when one is known;
// an anonymous repeat visit never clears a previously attached user. The
// ON CONFLICT arm keeps concurrent requests from the same IP race-free.
// visit_date comes from the database's CURRENT_DATE so inserts and the stats
// queries share one clock. Callers log and discard the error: tracking must
// never fail a request.
func RecordVisit(db *sqlx.DB, v Visit) error {
	_, err := db.Exec(`
INSERT INTO site_visitors (ip_address, visit_date, user_agent, page_url, referrer, user_id)
VALUES ($1, CURRENT_DATE, $2, $3, $4, $5)
ON CONFLICT (ip_address, visit_date) DO UPDATE
SET page_url = EXCLUDED.page_url,
    user_id  = COALESCE(EXCLUDED.user_id, site_visitors.user_id)
`, v.IP, v.UserAgent, v.PageURL, v.Referrer, v.UserID)
	return err
}

// VisitorStats are the dashboard's aggregate visit counters.
type VisitorStats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

// GetVisitorStats counts distinct IPs all-time plus rows for today, the last
// seven days and the current calendar month. On error the caller logs and
// renders zeros.
func GetVisitorStats(db *sqlx.DB) (VisitorStats, error) {
	var stats VisitorStats
	if err := db.Get(&stats.Total, `SELECT count(DISTINCT ip_address) FROM site_visitors`); err != nil {
		return VisitorStats{}, WrapError(err, "visitor total")
	}
	if err := db.Get(&stats.Today, `SELECT count(*) FROM site_visitors WHERE visit_date = CURRENT_DATE`); err != nil {
		return VisitorStats{}, WrapError(err, "visitors today")
	}
	if err := db.Get(&stats.ThisWeek, `
SELECT count(*) FROM site_visitors WHERE visit_date >= CURRENT_DATE - INTERVAL '7 days'`); err != nil {
		return VisitorStats{}, WrapError(err, "visitors this week")
	}
	if err := db.Get(&stats.ThisMonth, `
SELECT count(*) FROM site_visitors
WHERE date_trunc('month', visit_date) = date_trunc('month', CURRENT_DATE)`); err != nil {
		return VisitorStats{}, WrapError(err, "visitors this month")
	}
	return stats, nil
}
