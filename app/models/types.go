package models

import "time"

// Post is the single persisted entity: a blog post addressed by an opaque
// id and a unique, URL-safe slug.
type Post struct {
	ID            string    `json:"id" validate:"required"`
	Title         string    `json:"title" validate:"required,max=200"`
	Slug          string    `json:"slug" validate:"required"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content" validate:"required"`
	Tags          []string  `json:"tags"`
	Published     bool      `json:"published"`
	CoverImageURL string    `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreatePostRequest is the payload accepted by the create endpoint.
// Slug, when set, overrides the title as the slug source.
type CreatePostRequest struct {
	Title         string   `json:"title" validate:"required"`
	Content       string   `json:"content" validate:"required"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
	Published     bool     `json:"published"`
	CoverImageURL string   `json:"coverImageUrl"`
	Slug          string   `json:"slug"`
}

// UpdatePostRequest is a partial patch. Every optional field is
// pointer-typed so an omitted field and an explicit zero value are
// distinguishable: nil leaves the field untouched, a pointer to false
// really unpublishes.
type UpdatePostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	Tags          []string `json:"tags"`
	Published     *bool    `json:"published"`
	CoverImageURL *string  `json:"coverImageUrl"`
	NewSlug       *string  `json:"newSlug"`
}

// LoginRequest is the payload accepted by the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PostPage is one page of list results. Total counts every post matching
// the filter, ignoring the pagination window.
type PostPage struct {
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Posts    []*Post `json:"posts"`
}
