package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"huntboard/internal/models"
	"huntboard/internal/utils"

	"gorm.io/gorm"
)

// CommentNode is one entry of an assembled thread: a root comment and its
// direct replies. Reply nodes never carry replies of their own; the write
// path rejects deeper parent chains and the read path flattens defensively
// on top of that.
type CommentNode struct {
	models.Comment
	ContentHTML template.HTML `json:"content_html"`
	Replies     []CommentNode `json:"replies"`
}

// CommentService creates comments and assembles the two-level thread for a
// product, keeping the cached comment_count aggregate in lockstep with the
// comment table.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Create inserts a comment and bumps the product's comment_count in the
// same transaction. parentID, when non-nil, must reference a root comment
// on the same product; anything else fails with ErrInvalidParent.
func (s *CommentService) Create(ctx context.Context, productID, userID uint, content string, parentID *uint) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment := models.Comment{
		ProductID: productID,
		UserID:    userID,
		Content:   content,
		ParentID:  parentID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", productID, ErrNotFound)
			}
			return err
		}

		if parentID != nil {
			var parent models.Comment
			if err := tx.First(&parent, *parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("parent %d: %w", *parentID, ErrInvalidParent)
				}
				return err
			}
			if parent.ProductID != productID {
				return fmt.Errorf("parent %d belongs to another product: %w", *parentID, ErrInvalidParent)
			}
			if !parent.IsRoot() {
				// Replies to replies would silently deepen the tree, so the
				// write path refuses them outright.
				return fmt.Errorf("parent %d is itself a reply: %w", *parentID, ErrInvalidParent)
			}
		}

		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", productID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment owned by userID together with its direct
// replies, decrementing comment_count by the number of rows removed. The
// owning product (id and slug) is returned so callers can invalidate both
// the thread and detail read caches.
func (s *CommentService) Delete(ctx context.Context, commentID, userID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
			}
			return err
		}
		if comment.UserID != userID {
			return fmt.Errorf("comment %d: %w", commentID, ErrForbidden)
		}
		if err := tx.Select("id", "slug").First(&product, comment.ProductID).Error; err != nil {
			return err
		}

		removed := int64(1)
		if comment.IsRoot() {
			res := tx.Where("parent_id = ?", comment.ID).Delete(&models.Comment{})
			if res.Error != nil {
				return res.Error
			}
			removed += res.RowsAffected
		}
		if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", comment.ProductID).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", removed)).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetThread returns the product's comments as a two-level tree: roots
// newest-first, each root's replies oldest-first. Replies are fetched in
// one batched query rather than per root.
func (s *CommentService) GetThread(ctx context.Context, productID uint) ([]CommentNode, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	var roots []models.Comment
	if err := s.db.WithContext(ctx).Preload("User").
		Where("product_id = ? AND parent_id IS NULL", productID).
		Order("created_at DESC").
		Find(&roots).Error; err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return []CommentNode{}, nil
	}

	rootIDs := make([]uint, len(roots))
	for i, root := range roots {
		rootIDs[i] = root.ID
	}

	var replies []models.Comment
	if err := s.db.WithContext(ctx).Preload("User").
		Where("product_id = ? AND parent_id IN ?", productID, rootIDs).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}

	replyMap := make(map[uint][]CommentNode)
	for _, reply := range replies {
		node := CommentNode{
			Comment:     reply,
			ContentHTML: utils.RenderMarkdown(reply.Content),
			Replies:     []CommentNode{},
		}
		replyMap[*reply.ParentID] = append(replyMap[*reply.ParentID], node)
	}

	thread := make([]CommentNode, len(roots))
	for i, root := range roots {
		children := replyMap[root.ID]
		if children == nil {
			children = []CommentNode{}
		}
		thread[i] = CommentNode{
			Comment:     root,
			ContentHTML: utils.RenderMarkdown(root.Content),
			Replies:     children,
		}
	}
	return thread, nil
}
