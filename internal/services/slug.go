package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// maxSlugAttempts bounds the collision-retry loop. The suffix space makes a
// repeat collision unlikely, so exhausting the budget means something is
// actively racing us and the caller should see a conflict.
const maxSlugAttempts = 5

// SlugResolver derives URL-safe unique identifiers from free-text titles.
// Uniqueness is scoped per table: products and categories each own a slug
// namespace, identified by the model passed to Resolve.
type SlugResolver struct {
	db *gorm.DB
}

func NewSlugResolver(db *gorm.DB) *SlugResolver {
	return &SlugResolver{db: db}
}

// Slugify normalizes free text to a URL-safe token: lowercase, runs of
// non-alphanumerics collapsed to a single hyphen, leading and trailing
// hyphens trimmed. Returns "" when nothing survives.
func Slugify(text string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// Resolve returns a slug for candidate that is unused in model's table.
// excludeID skips the row being updated, so re-saving an unchanged title
// does not collide with itself. On collision a fresh 4-digit time-derived
// suffix is appended and the result re-checked; the first suffixed
// candidate is never accepted blindly.
func (r *SlugResolver) Resolve(ctx context.Context, model interface{}, candidate string, excludeID uint) (string, error) {
	base := Slugify(candidate)
	if base == "" {
		return "", fmt.Errorf("resolve slug for %q: %w", candidate, ErrInvalidSlugSource)
	}

	slug := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		taken, err := r.taken(ctx, model, slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%04d", base, time.Now().UnixNano()%10000)
	}
	return "", fmt.Errorf("resolve slug %q: %w", base, ErrConflict)
}

func (r *SlugResolver) taken(ctx context.Context, model interface{}, slug string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
