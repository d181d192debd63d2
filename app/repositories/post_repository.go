package repositories

import (
	"sort"
	"strings"

	"inkpress/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB. Slug
// uniqueness is enforced inside the write transaction via the slug index
// key space, so two concurrent creates with the same slug cannot both
// commit.
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create persists a new post and claims its slug in one transaction.
// Returns ErrSlugTaken if another post already holds the slug.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(slugKey(post.Slug))
		if err == nil {
			return ErrSlugTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(slugKey(post.Slug), []byte(post.ID))
	})
}

// GetByID retrieves a post by id
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		return readPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post through the slug index
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.View(func(txn *badger.Txn) error {
		id, err := slugOwner(txn, slug)
		if err != nil {
			return err
		}
		return readPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Update rewrites an existing post. When the slug changed, the old index
// key is released and the new one claimed in the same transaction;
// ErrSlugTaken if the target slug belongs to another post.
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var existing models.Post
		if err := readPost(txn, post.ID, &existing); err != nil {
			return err
		}

		if existing.Slug != post.Slug {
			owner, err := slugOwner(txn, post.Slug)
			if err == nil && owner != post.ID {
				return ErrSlugTaken
			}
			if err != nil && err != ErrNotFound {
				return err
			}
			if err := txn.Delete(slugKey(existing.Slug)); err != nil {
				return err
			}
			if err := txn.Set(slugKey(post.Slug), []byte(post.ID)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// Delete removes a post and its slug index entry permanently
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.Post
		if err := readPost(txn, id, &post); err != nil {
			return err
		}
		if err := txn.Delete(slugKey(post.Slug)); err != nil {
			return err
		}
		return txn.Delete(postKey(id))
	})
}

// List retrieves the page of posts matching the filter, ordered by
// creation time descending, along with the total match count.
func (r *BadgerPostRepository) List(filter ListFilter, offset, limit int) ([]*models.Post, int, error) {
	var matched []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if matchesFilter(&post, filter) {
				matched = append(matched, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
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

// SlugExists reports whether the slug is held by a post other than
// excludeID. It is a pre-check only; Create and Update remain the
// authoritative guard.
func (r *BadgerPostRepository) SlugExists(slug, excludeID string) (bool, error) {
	var taken bool
	err := r.db.View(func(txn *badger.Txn) error {
		owner, err := slugOwner(txn, slug)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		taken = owner != excludeID
		return nil
	})
	return taken, err
}

func readPost(txn *badger.Txn, id string, post *models.Post) error {
	item, err := txn.Get(postKey(id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}

func slugOwner(txn *badger.Txn, slug string) (string, error) {
	item, err := txn.Get(slugKey(slug))
	if err == badger.ErrKeyNotFound {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	var id string
	err = item.Value(func(val []byte) error {
		id = string(val)
		return nil
	})
	return id, err
}

func matchesFilter(post *models.Post, filter ListFilter) bool {
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
