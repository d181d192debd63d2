package mock

import (
	"sort"
	"strings"
	"sync"

	"inkpress/app/models"
	"inkpress/app/repositories"
)

// PostRepository is an in-memory PostRepository used in tests. It mirrors
// the Badger implementation's semantics, including slug uniqueness.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
	slugs map[string]string
}

// NewPostRepository creates an empty in-memory repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
		slugs: make(map[string]string),
	}
}

func (m *PostRepository) Create(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.slugs[post.Slug]; taken {
		return repositories.ErrSlugTaken
	}
	cp := *post
	m.posts[post.ID] = &cp
	m.slugs[post.Slug] = post.ID
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *post
	return &cp, nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.slugs[slug]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *m.posts[id]
	return &cp, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.posts[post.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if existing.Slug != post.Slug {
		if owner, taken := m.slugs[post.Slug]; taken && owner != post.ID {
			return repositories.ErrSlugTaken
		}
		delete(m.slugs, existing.Slug)
		m.slugs[post.Slug] = post.ID
	}
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *PostRepository) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(m.slugs, post.Slug)
	delete(m.posts, id)
	return nil
}

func (m *PostRepository) List(filter repositories.ListFilter, offset, limit int) ([]*models.Post, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*models.Post
	for _, post := range m.posts {
		if matches(post, filter) {
			cp := *post
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *PostRepository) SlugExists(slug, excludeID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.slugs[slug]
	return ok && owner != excludeID, nil
}

func matches(post *models.Post, filter repositories.ListFilter) bool {
	if filter.Published != nil && post.Published != *filter.Published {
		return false
	}
	if filter.Tag != "" && !post.HasTag(filter.Tag) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) &&
			!strings.Contains(strings.ToLower(post.Excerpt), needle) {
			return false
		}
	}
	return true
}
