package models

import (
	"time"
)

// Product lifecycle status values. Submissions start as pending and are
// promoted by moderation, which lives outside this service.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       User      `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`
	CategoryID  *uint     `gorm:"index" json:"category_id"` // Nullable for uncategorized submissions
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category,omitempty"`
	Title       string    `gorm:"not null" json:"title"`
	Tagline     string    `gorm:"size:200" json:"tagline"`
	URL         string    `json:"url"` // Optional
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;default:'pending';not null" json:"status"`
	// Cached aggregates. Kept in lockstep with the vote/comment tables by
	// the services layer: every mutation happens in the same transaction
	// as the child-row insert or delete.
	UpvoteCount  int       `gorm:"default:0;not null" json:"upvote_count"`
	CommentCount int       `gorm:"default:0;not null" json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
