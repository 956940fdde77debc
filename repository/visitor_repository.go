package repository

import (
	"strconv"
	"strings"
	"sync"

	"javiradio/logger"
)

// VisitorRepository defines the interface for the visitor counter store.
type VisitorRepository interface {
	// Count returns the current visitor count, 0 when the backing file
	// is missing or unreadable.
	Count() int
	// Increment adds one visit and returns the new count.
	Increment() int
}

// fileVisitorRepository persists the count as a bare decimal integer in
// a text file.
type fileVisitorRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileVisitorRepository creates a visitor repository backed by path.
func NewFileVisitorRepository(path string) VisitorRepository {
	return &fileVisitorRepository{path: path}
}

func (r *fileVisitorRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *fileVisitorRepository) Increment() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.load() + 1
	logWriteFailure("visitors", writeTextFile(r.path, strconv.Itoa(count)))
	return count
}

func (r *fileVisitorRepository) load() int {
	content, err := readTextFile(r.path)
	if err != nil {
		logger.Warn("visitor count unreadable, using 0", logger.ErrorField(err))
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil || count < 0 {
		return 0
	}
	return count
}
