package repositories

import "inkpress/app/models"

// ListFilter constrains a List call. Published is tri-state: nil matches
// both published and unpublished posts. Search is matched
// case-insensitively as a substring of title, content, or excerpt.
type ListFilter struct {
	Published *bool
	Tag       string
	Search    string
}

// PostRepository defines the interface for post data access. The
// implementation must enforce slug uniqueness as the authoritative guard;
// callers treat ErrSlugTaken as a retryable collision.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) error
	List(filter ListFilter, offset, limit int) ([]*models.Post, int, error)
	SlugExists(slug, excludeID string) (bool, error)
}
