package services

import (
	"context"
	"errors"
	"fmt"

	"huntboard/internal/models"

	"gorm.io/gorm"
)

// CategoryService manages the category taxonomy. Categories share the slug
// resolver contract with products but keep their own slug namespace.
type CategoryService struct {
	db    *gorm.DB
	slugs *SlugResolver
}

func NewCategoryService(db *gorm.DB, slugs *SlugResolver) *CategoryService {
	return &CategoryService{db: db, slugs: slugs}
}

// Create adds a category with a resolver-derived unique slug. Name
// uniqueness is enforced by the table constraint and surfaced as
// ErrConflict.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	slug, err := s.slugs.Resolve(ctx, &models.Category{}, name, 0)
	if err != nil {
		return nil, err
	}

	category := models.Category{
		Name: name,
		Slug: slug,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("category %q: %w", name, ErrConflict)
		}
		return nil, err
	}
	return &category, nil
}

// List returns all categories in insertion order.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
