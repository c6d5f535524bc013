package services

import (
	"errors"
)

// Sentinel errors returned by the engagement services. Handlers map these
// to HTTP statuses; anything else is treated as a storage fault and
// surfaced as a generic failure the caller may retry.
var (
	// ErrNotFound means a referenced entity (product, comment) is absent.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidParent means a comment's parent does not exist, belongs to
	// a different product, or is itself a reply.
	ErrInvalidParent = errors.New("invalid parent comment")
	// ErrEmptyContent means a comment body was blank after trimming.
	ErrEmptyContent = errors.New("empty comment content")
	// ErrInvalidSlugSource means a title normalized to an empty slug.
	ErrInvalidSlugSource = errors.New("title does not yield a valid slug")
	// ErrConflict means a uniqueness race could not be resolved within the
	// retry budget.
	ErrConflict = errors.New("uniqueness conflict")
	// ErrForbidden means the acting user does not own the target entity.
	ErrForbidden = errors.New("not the owner")
)
