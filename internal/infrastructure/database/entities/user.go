package entities

import (
	"time"

	"github.com/faizxmak/latilong/internal/domain/user"
)

// User represents the database schema for accounts.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PublicID        string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email           string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string `gorm:"type:varchar(255)"`
	FirstName       string `gorm:"type:varchar(100)"`
	LastName        string `gorm:"type:varchar(100)"`
	ProfileImageURL string `gorm:"type:text"`
	Provider        string `gorm:"type:varchar(32);not null;default:'local'"`

	Conversations []Conversation `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts database entity to domain model
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:              u.ID,
		PublicID:        u.PublicID,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Provider:        u.Provider,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// NewSchemaUser creates a database entity from domain model
func NewSchemaUser(u *user.User) *User {
	return &User{
		ID:              u.ID,
		PublicID:        u.PublicID,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		Provider:        u.Provider,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
