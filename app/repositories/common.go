package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrSlugTaken = errors.New("slug already in use")
)

const (
	// Key prefixes for the two key spaces: post documents and the slug
	// uniqueness index. A slug key's value is the owning post id.
	postKeyPrefix = "post:"
	slugKeyPrefix = "slug:"
)

func postKey(id string) []byte {
	return []byte(postKeyPrefix + id)
}

func slugKey(slug string) []byte {
	return []byte(slugKeyPrefix + slug)
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}

// Open opens the Badger database at the given path. An empty path opens
// an in-memory database, which tests rely on.
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path).
			WithNumVersionsToKeep(1).
			WithSyncWrites(false)
	}
	return badger.Open(opts.WithLogger(nil))
}
