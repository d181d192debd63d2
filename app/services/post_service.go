package services

import (
	"errors"
	"fmt"
	"strings"

	"inkpress/app/models"
	"inkpress/app/repositories"

	"github.com/google/uuid"
)

// maxSlugAttempts bounds the retry loop when concurrent writers race for
// the same slug. The repository's uniqueness guard is authoritative; the
// probe in allocateSlug only picks a likely-free candidate.
const maxSlugAttempts = 100

// PostService handles business logic for blog posts
type PostService struct {
	repo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(repo repositories.PostRepository) *PostService {
	return &PostService{repo: repo}
}

// CreatePost validates the request, derives a unique slug from the
// provided override or the title, and persists the post.
func (s *PostService) CreatePost(req *models.CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, validationErr("title and content are required")
	}

	source := req.Title
	if req.Slug != "" {
		source = req.Slug
	}
	base := ToSlug(source)
	if base == "" {
		return nil, validationErr("unable to derive slug from title")
	}

	post := &models.Post{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Tags:          req.Tags,
		Published:     req.Published,
		CoverImageURL: req.CoverImageURL,
	}
	post.BeforeCreate()

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.allocateSlug(base, "")
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		if err := post.Validate(); err != nil {
			return nil, validationErr(err.Error())
		}
		err = s.repo.Create(post)
		if errors.Is(err, repositories.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return post, nil
	}
	return nil, fmt.Errorf("could not allocate a unique slug for %q", base)
}

// GetPost resolves a post by id or slug. A key that parses as a UUID is
// tried as an id first, falling back to slug lookup.
func (s *PostService) GetPost(key string) (*models.Post, error) {
	if key == "" {
		return nil, validationErr("provide id or slug")
	}
	if _, err := uuid.Parse(key); err == nil {
		post, err := s.repo.GetByID(key)
		if err == nil || !errors.Is(err, repositories.ErrNotFound) {
			return post, err
		}
	}
	return s.repo.GetBySlug(key)
}

// UpdatePost applies a partial patch to the post identified by id or
// slug. Only fields present in the patch change; a requested slug change
// re-derives uniqueness excluding the post's own id.
func (s *PostService) UpdatePost(key string, patch *models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.GetPost(key)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, validationErr("title cannot be empty")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, validationErr("content cannot be empty")
	}

	post.ApplyPatch(patch)

	if patch.NewSlug == nil || strings.TrimSpace(*patch.NewSlug) == "" {
		if err := post.Validate(); err != nil {
			return nil, validationErr(err.Error())
		}
		if err := s.repo.Update(post); err != nil {
			return nil, err
		}
		return post, nil
	}

	base := ToSlug(*patch.NewSlug)
	if base == "" {
		return nil, validationErr("unable to derive slug from newSlug")
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.allocateSlug(base, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		if err := post.Validate(); err != nil {
			return nil, validationErr(err.Error())
		}
		err = s.repo.Update(post)
		if errors.Is(err, repositories.ErrSlugTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return post, nil
	}
	return nil, fmt.Errorf("could not allocate a unique slug for %q", base)
}

// DeletePost removes the post identified by id or slug permanently.
func (s *PostService) DeletePost(key string) error {
	post, err := s.GetPost(key)
	if err != nil {
		return err
	}
	return s.repo.Delete(post.ID)
}

// ListPosts retrieves a filtered, paginated page of posts, newest first.
// Page is floored at 1 and pageSize clamped to [1, 100].
func (s *PostService) ListPosts(filter repositories.ListFilter, page, pageSize int) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	offset := (page - 1) * pageSize
	posts, total, err := s.repo.List(filter, offset, pageSize)
	if err != nil {
		return nil, err
	}
	return &models.PostPage{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Posts:    posts,
	}, nil
}

// allocateSlug probes the repository for the first free suffix of base.
// Deterministic given a consistent slug set: the same base and the same
// existing slugs always yield the same result.
func (s *PostService) allocateSlug(base, excludeID string) (string, error) {
	slug := base
	for n := 1; ; n++ {
		taken, err := s.repo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
