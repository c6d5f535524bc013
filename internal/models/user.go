package models

import (
	"time"
)

// User is the owner reference for products, votes and comments. Account
// management (credentials, sessions) belongs to the upstream gateway; this
// service only needs a stable identity row to hang ownership off.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
