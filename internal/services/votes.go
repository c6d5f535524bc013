package services

import (
	"context"
	"errors"
	"fmt"

	"huntboard/internal/models"

	"gorm.io/gorm"
)

// errAlreadyVoted aborts the toggle transaction when a concurrent insert
// won the race; the outcome is reinterpreted as "now upvoted" outside the
// transaction instead of being counted twice.
var errAlreadyVoted = errors.New("vote already exists")

// VoteLedger owns the one-vote-per-(product,user) invariant and the cached
// upvote_count aggregate on the product row. The existence check, the vote
// row mutation and the counter adjustment always run inside one
// transaction; the counter expression is evaluated by the storage engine,
// never read-modify-written in Go.
type VoteLedger struct {
	db *gorm.DB
}

func NewVoteLedger(db *gorm.DB) *VoteLedger {
	return &VoteLedger{db: db}
}

// Toggle flips userID's vote on productID and returns whether the user is
// upvoted afterwards. Concurrent toggles for the same pair serialize on
// the (product_id, user_id) unique index: a duplicate insert surfaces as
// gorm.ErrDuplicatedKey and is absorbed without touching the counter.
func (l *VoteLedger) Toggle(ctx context.Context, productID, userID uint) (bool, error) {
	upvoted := false

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", productID, ErrNotFound)
			}
			return err
		}

		var vote models.Vote
		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&vote).Error
		switch {
		case err == nil:
			// Already voted: remove the row and take the counter down with
			// it. RowsAffected guards against a racing un-vote having
			// deleted the row first, so the decrement happens exactly once
			// per row that actually existed.
			res := tx.Delete(&models.Vote{}, vote.ID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				upvoted = false
				return nil
			}
			return tx.Model(&models.Product{}).Where("id = ?", productID).
				UpdateColumn("upvote_count", gorm.Expr("upvote_count - ?", 1)).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			newVote := models.Vote{
				ProductID: productID,
				UserID:    userID,
			}
			if err := tx.Create(&newVote).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errAlreadyVoted
				}
				return err
			}
			upvoted = true
			return tx.Model(&models.Product{}).Where("id = ?", productID).
				UpdateColumn("upvote_count", gorm.Expr("upvote_count + ?", 1)).Error

		default:
			return err
		}
	})

	if errors.Is(err, errAlreadyVoted) {
		// Lost the insert race: the vote exists and the winning
		// transaction already incremented the counter.
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return upvoted, nil
}

// Count returns the current cached upvote count for a product.
func (l *VoteLedger) Count(ctx context.Context, productID uint) (int, error) {
	var product models.Product
	if err := l.db.WithContext(ctx).Select("id", "upvote_count").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return 0, err
	}
	return product.UpvoteCount, nil
}
