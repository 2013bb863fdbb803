package responses

import (
	"time"

	"github.com/faizxmak/latilong/internal/domain/user"
)

// UserPayload is the public account shape.
type UserPayload struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Provider        string    `json:"provider,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AuthPayload bundles a user with a freshly issued token.
type AuthPayload struct {
	User  UserPayload `json:"user"`
	Token string      `json:"token"`
}

// NewUserPayload converts a domain user.
func NewUserPayload(u *user.User) UserPayload {
	return UserPayload{
		ID:              u.PublicID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Provider:        u.Provider,
		CreatedAt:       u.CreatedAt,
	}
}
