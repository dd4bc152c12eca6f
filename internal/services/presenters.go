package services

import (
	"fmt"
	"html"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deliverypro-backend-go/internal/models"
)

// Escape encodes a value for safe embedding in markup. Nil maps to "".
func Escape(value *string) string {
	if value == nil {
		return ""
	}
	return html.EscapeString(*value)
}

var arabicMonths = [...]string{"", "يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"}

// FormatDate renders a timestamp the way the dashboard shows it: relative
// phrases under a day old, a localized calendar string otherwise.
func FormatDate(lang string, value, now time.Time) string {
	diff := now.Sub(value)
	switch {
	case diff < time.Minute:
		if lang == LangArabic {
			return "الآن"
		}
		return "Maintenant"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if lang == LangArabic {
			return fmt.Sprintf("منذ %d دقيقة", mins)
		}
		return fmt.Sprintf("Il y a %d min", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if lang == LangArabic {
			return fmt.Sprintf("منذ %d ساعة", hours)
		}
		return fmt.Sprintf("Il y a %dh", hours)
	}
	if lang == LangArabic {
		return fmt.Sprintf("%02d %s %d - %s",
			value.Day(), arabicMonths[int(value.Month())], value.Year(), value.Format("03:04 PM"))
	}
	return value.Format("02/01/2006 15:04")
}

// StatusBadge maps an order status to its CSS badge token.
func StatusBadge(status models.OrderStatus) string {
	switch status {
	case models.StatusPending, models.StatusAccepted, models.StatusPickedUp,
		models.StatusDelivered, models.StatusCancelled:
		return "badge-" + string(status)
	default:
		return "bg-secondary"
	}
}

// StatusIcon maps an order status to its icon token.
func StatusIcon(status models.OrderStatus) string {
	switch status {
	case models.StatusPending:
		return "clock"
	case models.StatusAccepted:
		return "truck"
	case models.StatusPickedUp:
		return "box"
	case models.StatusDelivered:
		return "check-double"
	case models.StatusCancelled:
		return "times-circle"
	default:
		return "circle"
	}
}

// AvatarURL returns the public URL for a user's avatar with a cache-busting
// parameter derived from the file's mtime, or "" when there is no usable
// avatar and the caller should render initials instead.
func AvatarURL(user models.User, uploadsRoot string) string {
	if user.AvatarURL == nil || *user.AvatarURL == "" {
		return ""
	}
	info, err := os.Stat(filepath.Join(uploadsRoot, filepath.FromSlash(*user.AvatarURL)))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("/uploads/%s?v=%d", *user.AvatarURL, info.ModTime().Unix())
}

// Initials derives up to two upper-cased initials from the user's display
// name. Works on runes so multi-byte names come out right.
func Initials(user models.User) string {
	name := user.Username
	if user.FullName != nil && strings.TrimSpace(*user.FullName) != "" {
		name = *user.FullName
	}
	if strings.TrimSpace(name) == "" {
		name = "U"
	}
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		return strings.ToUpper(firstRunes(parts[0], 1) + firstRunes(parts[1], 1))
	}
	return strings.ToUpper(firstRunes(parts[0], 2))
}

func firstRunes(value string, n int) string {
	runes := []rune(value)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// AvatarColor picks the initials-avatar background for a role.
func AvatarColor(role models.UserRole) string {
	switch role {
	case models.RoleAdmin:
		return "#dc2626"
	case models.RoleDriver:
		return "#0891b2"
	case models.RoleCustomer:
		return "#059669"
	default:
		return "#6366f1"
	}
}

// RatingStars is the star breakdown for a 0-5 score.
type RatingStars struct {
	Full  int    `json:"full"`
	Half  bool   `json:"half"`
	Empty int    `json:"empty"`
	Label string `json:"label"`
}

func SplitRating(score float64) RatingStars {
	full := int(math.Floor(score))
	half := score-float64(full) >= 0.5
	empty := 5 - full
	if half {
		empty--
	}
	return RatingStars{
		Full:  full,
		Half:  half,
		Empty: empty,
		Label: fmt.Sprintf("%.1f", score),
	}
}

// FormatRating renders the star markup, optionally with the numeric label.
func FormatRating(score float64, showNumber bool) string {
	stars := SplitRating(score)
	var b strings.Builder
	b.WriteString(`<span class="rating-stars">`)
	for i := 0; i < stars.Full; i++ {
		b.WriteString(`<i class="fas fa-star text-warning"></i>`)
	}
	if stars.Half {
		b.WriteString(`<i class="fas fa-star-half-alt text-warning"></i>`)
	}
	for i := 0; i < stars.Empty; i++ {
		b.WriteString(`<i class="far fa-star text-warning"></i>`)
	}
	if showNumber {
		b.WriteString(` <small class="text-muted">(` + stars.Label + `)</small>`)
	}
	b.WriteString(`</span>`)
	return b.String()
}
