package models

import (
	"time"
)

// User is a login account. Members reference users weakly; the account is
// not part of the tenancy model itself.
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Members []Member `gorm:"foreignKey:UserID" json:"-"`
}
