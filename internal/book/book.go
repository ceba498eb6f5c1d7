package book

import (
	"errors"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")
	// ErrConflict is returned when creating a book whose id is already taken.
	ErrConflict = errors.New("book id already exists")
	// ErrIDMismatch is returned when a replacement body carries a different id than the path.
	ErrIDMismatch = errors.New("book id in body does not match path")
)

// Book represents a catalog entry. The id is supplied by the client.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}
