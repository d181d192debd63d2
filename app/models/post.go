package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate assigns the id and timestamps and normalizes defaults
// before the post is first persisted.
func (p *Post) BeforeCreate() {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// ApplyPatch copies the fields present in the patch onto the post and
// refreshes UpdatedAt. Slug changes are handled by the caller since they
// require a uniqueness check.
func (p *Post) ApplyPatch(patch *UpdatePostRequest) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	if patch.CoverImageURL != nil {
		p.CoverImageURL = *patch.CoverImageURL
	}
	p.UpdatedAt = time.Now().UTC()
}

// HasTag reports whether the post carries the given tag.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
