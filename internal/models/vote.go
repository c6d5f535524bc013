package models

import (
	"time"
)

// Vote is one user's upvote on one product. The composite unique index is
// the concurrency guard for vote toggling: a lost race on insert fails at
// the storage layer instead of being counted twice.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_product_user_vote" json:"product_id"`
	Product   Product   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_product_user_vote;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
