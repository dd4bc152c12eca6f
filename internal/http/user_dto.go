package httpapi

import (
	"time"

	"deliverypro-backend-go/internal/models"
	"deliverypro-backend-go/internal/services"
)

// UserDTO carries everything the frontend needs to render a user chip:
// either the avatar URL (with cache buster) or the initials fallback plus its
// role color.
type UserDTO struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	FullName      *string         `json:"fullName,omitempty"`
	Role          models.UserRole `json:"role"`
	Phone         *string         `json:"phone,omitempty"`
	PhoneVerified bool            `json:"phoneVerified"`
	AvatarURL     string          `json:"avatarUrl,omitempty"`
	Initials      string          `json:"initials"`
	AvatarColor   string          `json:"avatarColor"`
	LastSeenAt    *time.Time      `json:"lastSeenAt,omitempty"`
}

func buildUserDTO(user models.User, uploadsRoot string) *UserDTO {
	return &UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		FullName:      user.FullName,
		Role:          user.Role,
		Phone:         user.Phone,
		PhoneVerified: services.PhoneVerified(user),
		AvatarURL:     services.AvatarURL(user, uploadsRoot),
		Initials:      services.Initials(user),
		AvatarColor:   services.AvatarColor(user.Role),
		LastSeenAt:    user.LastSeenAt,
	}
}
