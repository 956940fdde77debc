package repository

import (
	"sync"

	"javiradio/logger"
	"javiradio/model"
)

// RatingRepository defines the interface for the rating ledger store.
type RatingRepository interface {
	// Load returns the persisted rating book, empty when the backing
	// file is missing or malformed.
	Load() model.RatingBook
	// Update runs fn under the store lock with the current book and
	// persists it afterwards, best effort.
	Update(fn func(book model.RatingBook)) model.RatingBook
}

type fileRatingRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileRatingRepository creates a rating repository backed by a
// pretty-printed JSON object keyed by song id.
func NewFileRatingRepository(path string) RatingRepository {
	return &fileRatingRepository{path: path}
}

func (r *fileRatingRepository) Load() model.RatingBook {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileRatingRepository) Update(fn func(book model.RatingBook)) model.RatingBook {
	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.load()
	fn(book)
	logWriteFailure("ratings", writeJSONFile(r.path, book))
	return book
}

func (r *fileRatingRepository) load() model.RatingBook {
	book := model.RatingBook{}
	if err := readJSONFile(r.path, &book); err != nil {
		logger.Warn("rating book unreadable, starting empty", logger.ErrorField(err))
		return model.RatingBook{}
	}
	for key, ledger := range book {
		if ledger == nil {
			delete(book, key)
		}
	}
	return book
}
