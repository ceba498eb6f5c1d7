package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for catalog storage.
// Implementations must keep at most one book per id and preserve insertion order in List.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id int) (Book, error)
	Create(ctx context.Context, b Book) (Book, error)
	Replace(ctx context.Context, id int, b Book) (Book, error)
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}
