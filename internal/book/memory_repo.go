package book

import (
	"context"
	"fmt"
	"sync"
)

var _ Repository = (*MemoryRepo)(nil)

// MemoryRepo is the process-lifetime catalog. Books are kept in insertion
// order and indexed by id; all access goes through the mutex.
type MemoryRepo struct {
	mu    sync.RWMutex
	books []Book
	index map[int]int // id -> position in books
}

// NewMemoryRepo returns an empty catalog.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		books: []Book{},
		index: make(map[int]int),
	}
}

// List returns a copy of all books in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id int) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		return Book{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return r.books[pos], nil
}

// Create appends b unless its id is already present.
func (r *MemoryRepo) Create(ctx context.Context, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[b.ID]; exists {
		return Book{}, fmt.Errorf("%w: id %d", ErrConflict, b.ID)
	}
	r.index[b.ID] = len(r.books)
	r.books = append(r.books, b)
	return b, nil
}

// Replace overwrites the book stored under id. The body id must equal id.
func (r *MemoryRepo) Replace(ctx context.Context, id int, b Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return Book{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if b.ID != id {
		return Book{}, fmt.Errorf("%w: path id %d, body id %d", ErrIDMismatch, id, b.ID)
	}
	r.books[pos] = b
	return b, nil
}

// Delete removes the book stored under id; later books shift down by one.
func (r *MemoryRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	r.books = append(r.books[:pos], r.books[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.books); i++ {
		r.index[r.books[i].ID] = i
	}
	return nil
}

func (r *MemoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}
