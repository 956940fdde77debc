package repository

import (
	"sync"

	"javiradio/logger"
	"javiradio/model"
)

// CatalogRepository defines the interface for the song catalog store.
type CatalogRepository interface {
	// Load returns the persisted catalog, empty when the backing file is
	// missing or malformed.
	Load() model.Catalog
	// Replace runs fn under the store lock with the current catalog and
	// persists whatever fn returns. The save is best effort: on failure
	// the returned in-memory catalog is still the caller's result.
	Replace(fn func(prev model.Catalog) model.Catalog) model.Catalog
}

type fileCatalogRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileCatalogRepository creates a catalog repository backed by a
// pretty-printed JSON object keyed by song id.
func NewFileCatalogRepository(path string) CatalogRepository {
	return &fileCatalogRepository{path: path}
}

func (r *fileCatalogRepository) Load() model.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileCatalogRepository) Replace(fn func(prev model.Catalog) model.Catalog) model.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := fn(r.load())
	if next == nil {
		next = model.Catalog{}
	}
	logWriteFailure("catalog", writeJSONFile(r.path, next))
	return next
}

func (r *fileCatalogRepository) load() model.Catalog {
	catalog := model.Catalog{}
	if err := readJSONFile(r.path, &catalog); err != nil {
		// Malformed persisted data recovers to an empty catalog; the
		// next rebuild repopulates it from the audio directory.
		logger.Warn("song catalog unreadable, starting empty", logger.ErrorField(err))
		return model.Catalog{}
	}
	for key, song := range catalog {
		if song == nil {
			delete(catalog, key)
		}
	}
	return catalog
}
