package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverypro-backend-go/internal/models"
)

func strPtr(value string) *string {
	return &value
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "", Escape(nil))
	assert.Equal(t, "&lt;b&gt;hi&lt;/b&gt;", Escape(strPtr("<b>hi</b>")))
}

func TestFormatDateRelative(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "الآن", FormatDate(LangArabic, now.Add(-30*time.Second), now))
	assert.Equal(t, "Maintenant", FormatDate(LangFrench, now.Add(-30*time.Second), now))

	assert.Equal(t, "منذ 5 دقيقة", FormatDate(LangArabic, now.Add(-5*time.Minute), now))
	assert.Equal(t, "Il y a 5 min", FormatDate(LangFrench, now.Add(-5*time.Minute), now))

	assert.Equal(t, "منذ 3 ساعة", FormatDate(LangArabic, now.Add(-3*time.Hour), now))
	assert.Equal(t, "Il y a 3h", FormatDate(LangFrench, now.Add(-3*time.Hour), now))
}

func TestFormatDateCalendar(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	value := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "05/01/2026 14:30", FormatDate(LangFrench, value, now))
	assert.Equal(t, "05 يناير 2026 - 02:30 PM", FormatDate(LangArabic, value, now))
}

func TestStatusBadgeAndIcon(t *testing.T) {
	assert.Equal(t, "badge-pending", StatusBadge(models.StatusPending))
	assert.Equal(t, "badge-delivered", StatusBadge(models.StatusDelivered))
	assert.Equal(t, "bg-secondary", StatusBadge(models.OrderStatus("bogus")))

	assert.Equal(t, "clock", StatusIcon(models.StatusPending))
	assert.Equal(t, "truck", StatusIcon(models.StatusAccepted))
	assert.Equal(t, "box", StatusIcon(models.StatusPickedUp))
	assert.Equal(t, "check-double", StatusIcon(models.StatusDelivered))
	assert.Equal(t, "times-circle", StatusIcon(models.StatusCancelled))
	assert.Equal(t, "circle", StatusIcon(models.OrderStatus("bogus")))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JS", Initials(models.User{FullName: strPtr("John Smith")}))
	assert.Equal(t, "MA", Initials(models.User{Username: "madonna"}))
	// Multi-byte names must split on runes, not bytes.
	assert.Equal(t, "مع", Initials(models.User{FullName: strPtr("محمد علي")}))
	assert.Equal(t, "ŁU", Initials(models.User{Username: "łukasz"}))
	// Full name wins over username; blank full name falls back.
	assert.Equal(t, "JS", Initials(models.User{FullName: strPtr("John Smith"), Username: "driver9"}))
	assert.Equal(t, "DR", Initials(models.User{FullName: strPtr("  "), Username: "driver9"}))
	assert.Equal(t, "U", Initials(models.User{}))
}

func TestAvatarColor(t *testing.T) {
	assert.Equal(t, "#dc2626", AvatarColor(models.RoleAdmin))
	assert.Equal(t, "#0891b2", AvatarColor(models.RoleDriver))
	assert.Equal(t, "#059669", AvatarColor(models.RoleCustomer))
	assert.Equal(t, "#6366f1", AvatarColor(models.UserRole("ghost")))
}

func TestSplitRating(t *testing.T) {
	stars := SplitRating(3.7)
	assert.Equal(t, 3, stars.Full)
	assert.True(t, stars.Half)
	assert.Equal(t, 1, stars.Empty)
	assert.Equal(t, "3.7", stars.Label)

	stars = SplitRating(5.0)
	assert.Equal(t, 5, stars.Full)
	assert.False(t, stars.Half)
	assert.Equal(t, 0, stars.Empty)
	assert.Equal(t, "5.0", stars.Label)

	stars = SplitRating(4.2)
	assert.Equal(t, 4, stars.Full)
	assert.False(t, stars.Half)
	assert.Equal(t, 1, stars.Empty)
}

func TestFormatRating(t *testing.T) {
	markup := FormatRating(3.7, true)
	assert.Equal(t, 3, strings.Count(markup, `fas fa-star text-warning`))
	assert.Equal(t, 1, strings.Count(markup, `fa-star-half-alt`))
	assert.Equal(t, 1, strings.Count(markup, `far fa-star`))
	assert.Contains(t, markup, "(3.7)")

	markup = FormatRating(3.7, false)
	assert.NotContains(t, markup, "3.7")
}

func TestAvatarURL(t *testing.T) {
	root := t.TempDir()
	rel := "avatars/u1/avatar_1.png"
	require.NoError(t, os.MkdirAll(filepath.Join(root, "avatars", "u1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte("png"), 0o644))

	url := AvatarURL(models.User{AvatarURL: &rel}, root)
	assert.True(t, strings.HasPrefix(url, "/uploads/avatars/u1/avatar_1.png?v="), url)

	// No stored path, or a stale one, means "render initials".
	assert.Equal(t, "", AvatarURL(models.User{}, root))
	missing := "avatars/u1/gone.png"
	assert.Equal(t, "", AvatarURL(models.User{AvatarURL: &missing}, root))
}
