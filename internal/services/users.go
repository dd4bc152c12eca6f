package services

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"deliverypro-backend-go/internal/models"
)

func GetUser(db *sqlx.DB, userID string) (models.User, error) {
	var user models.User
	err := db.Get(&user, `
SELECT id, username, full_name, password_hash, role, phone, phone_verified,
       avatar_url, created_at, last_login_at, last_seen_at
FROM users
WHERE id = $1
`, userID)
	return user, err
}

func GetUserByUsername(db *sqlx.DB, username string) (models.User, error) {
	var user models.User
	err := db.Get(&user, `
SELECT id, username, full_name, password_hash, role, phone, phone_verified,
       avatar_url, created_at, last_login_at, last_seen_at
FROM users
WHERE lower(username) = lower($1)
`, strings.TrimSpace(username))
	return user, err
}

// PhoneVerified requires both a phone number on file and the verified flag.
func PhoneVerified(user models.User) bool {
	return user.Phone != nil && strings.TrimSpace(*user.Phone) != "" && user.PhoneVerified
}

func TouchLastSeen(db *sqlx.DB, userID string) error {
	_, err := db.Exec(`UPDATE users SET last_seen_at = $1 WHERE id = $2`, time.Now().UTC(), userID)
	return err
}

func SetLastLogin(db *sqlx.DB, userID string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE users SET last_login_at = $1, last_seen_at = $1 WHERE id = $2`, now, userID)
	return err
}

// SetAvatarPath records the user's current avatar location, relative to the
// uploads root.
func SetAvatarPath(db *sqlx.DB, userID, path string) error {
	_, err := db.Exec(`UPDATE users SET avatar_url = $1 WHERE id = $2`, path, userID)
	return WrapError(err, "store avatar path")
}
