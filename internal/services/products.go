package services

import (
	"context"
	"errors"
	"fmt"

	"huntboard/internal/models"

	"gorm.io/gorm"
)

// ProductInput carries the caller-editable fields of a submission.
type ProductInput struct {
	Title       string `json:"title"`
	Tagline     string `json:"tagline"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CategoryID  uint   `json:"category_id"`
}

/// ProductService is the CRUD glue around product rows: slug resolution on
// create/update and the transactional cascade on delete. Moderation that
// moves a product out of pending lives upstream.
type ProductService struct {
	db    *gorm.DB
	slugs *SlugResolver
}

func NewProductService(db *gorm.DB, slugs *SlugResolver) *ProductService {
	return &ProductService{db: db, slugs: slugs}
}

// Create stores a new submission in pending state under a unique slug
// derived from its title. The unique index on slug backs up the resolver:
// losing a creation race surfaces as gorm.ErrDuplicatedKey and the slug is
// re-resolved with a fresh suffix.
func (s *ProductService) Create(ctx context.Context, ownerID uint, in ProductInput) (*models.Product, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("create product: %w", ErrInvalidSlugSource)
	}

	categoryID, err := s.categoryRef(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.slugs.Resolve(ctx, &models.Product{}, in.Title, 0)
		if err != nil {
			return nil, err
		}

		product := models.Product{
			Slug:        slug,
			OwnerID:     ownerID,
			CategoryID:  categoryID,
			Title:       in.Title,
			Tagline:     in.Tagline,
			URL:         in.URL,
			Description: in.Description,
			Status:      models.StatusPending,
		}
		err = s.db.WithContext(ctx).Create(&product).Error
		if err == nil {
			return &product, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("create product %q: %w", in.Title, ErrConflict)
}

// Update edits a product owned by userID. A changed title re-resolves the
// slug, excluding the product's own row so an unchanged title never
// collides with itself.
func (s *ProductService) Update(ctx context.Context, slug string, userID uint, in ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
		}
		return nil, err
	}
	if product.OwnerID != userID {
		return nil, fmt.Errorf("product %q: %w", slug, ErrForbidden)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("update product: %w", ErrInvalidSlugSource)
	}

	newSlug, err := s.slugs.Resolve(ctx, &models.Product{}, in.Title, product.ID)
	if err != nil {
		return nil, err
	}

	product.Slug = newSlug
	product.Title = in.Title
	product.Tagline = in.Tagline
	product.URL = in.URL
	product.Description = in.Description
	if in.CategoryID != 0 {
		categoryID, err := s.categoryRef(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("update product %q: %w", slug, ErrConflict)
		}
		return nil, err
	}
	return &product, nil
}

// Delete removes a product owned by userID together with its votes and
// comments in one transaction, so no orphan rows or dangling counters
// survive the row they hang off.
func (s *ProductService) Delete(ctx context.Context, slug string, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("slug = ?", slug).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %q: %w", slug, ErrNotFound)
			}
			return err
		}
		if product.OwnerID != userID {
			return fmt.Errorf("product %q: %w", slug, ErrForbidden)
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, product.ID).Error
	})
}

// categoryRef validates an optional category id. Zero means uncategorized;
// anything else must reference an existing category so a bad id fails with
// ErrNotFound instead of a foreign-key fault at insert time.
func (s *ProductService) categoryRef(ctx context.Context, categoryID uint) (*uint, error) {
	if categoryID == 0 {
		return nil, nil
	}
	var category models.Category
	if err := s.db.WithContext(ctx).Select("id").First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
		}
		return nil, err
	}
	return &categoryID, nil
}

// GetBySlug loads one product with its owner and category.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Owner").Preload("Category").
		Where("slug = ?", slug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}

// List returns approved products newest-first with the total count for
// pagination.
func (s *ProductService) List(ctx context.Context, page, perPage int) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}

	base := s.db.WithContext(ctx).Model(&models.Product{}).Where("status = ?", models.StatusApproved)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := s.db.WithContext(ctx).Preload("Owner").Preload("Category").
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
