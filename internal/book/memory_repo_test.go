package book

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBook = Book{ID: 1, Title: "A", Author: "X", Year: 2000}

func TestMemoryRepo_ListEmpty(t *testing.T) {
	repo := NewMemoryRepo()

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestMemoryRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	created, err := repo.Create(ctx, testBook)
	require.NoError(t, err)
	assert.Equal(t, testBook, created)

	got, err := repo.Get(ctx, testBook.ID)
	require.NoError(t, err)
	assert.Equal(t, testBook, got)
}

func TestMemoryRepo_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.Create(ctx, testBook)
	require.NoError(t, err)

	_, err = repo.Create(ctx, Book{ID: testBook.ID, Title: "Other", Author: "Y", Year: 1999})
	assert.ErrorIs(t, err, ErrConflict)

	books, _ := repo.List(ctx)
	assert.Equal(t, []Book{testBook}, books)
}

func TestMemoryRepo_GetMissing(t *testing.T) {
	repo := NewMemoryRepo()

	_, err := repo.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "42")
}

func TestMemoryRepo_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	ids := []int{5, 3, 9, 1}
	for _, id := range ids {
		_, err := repo.Create(ctx, Book{ID: id, Title: fmt.Sprintf("T%d", id)})
		require.NoError(t, err)
	}

	books, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, books[i].ID)
	}
}

func TestMemoryRepo_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	_, _ = repo.Create(ctx, testBook)

	books, _ := repo.List(ctx)
	books[0].Title = "mutated"

	got, _ := repo.Get(ctx, testBook.ID)
	assert.Equal(t, "A", got.Title)
}

func TestMemoryRepo_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites in place", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, _ = repo.Create(ctx, Book{ID: 1, Title: "first"})
		_, _ = repo.Create(ctx, testBook.withID(2))
		_, _ = repo.Create(ctx, Book{ID: 3, Title: "third"})

		nb := Book{ID: 2, Title: "B", Author: "Z", Year: 2024}
		got, err := repo.Replace(ctx, 2, nb)
		require.NoError(t, err)
		assert.Equal(t, nb, got)

		books, _ := repo.List(ctx)
		require.Len(t, books, 3)
		assert.Equal(t, nb, books[1])
	})

	t.Run("missing id", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, err := repo.Replace(ctx, 7, testBook.withID(7))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing id wins over mismatch", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, err := repo.Replace(ctx, 7, testBook.withID(8))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("body id differs from path id", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, _ = repo.Create(ctx, testBook.withID(1))
		_, _ = repo.Create(ctx, testBook.withID(2))

		_, err := repo.Replace(ctx, 1, testBook.withID(2))
		assert.ErrorIs(t, err, ErrIDMismatch)

		books, _ := repo.List(ctx)
		assert.Equal(t, []Book{testBook.withID(1), testBook.withID(2)}, books)
	})
}

func TestMemoryRepo_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("shifts later books down", func(t *testing.T) {
		repo := NewMemoryRepo()
		for _, id := range []int{1, 2, 3, 4} {
			_, _ = repo.Create(ctx, testBook.withID(id))
		}

		require.NoError(t, repo.Delete(ctx, 2))

		books, _ := repo.List(ctx)
		assert.Equal(t, []Book{testBook.withID(1), testBook.withID(3), testBook.withID(4)}, books)

		// index must follow the shift
		got, err := repo.Get(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, got.ID)
		_, err = repo.Replace(ctx, 3, Book{ID: 3, Title: "new"})
		require.NoError(t, err)
		books, _ = repo.List(ctx)
		assert.Equal(t, "new", books[1].Title)
	})

	t.Run("missing id leaves catalog unchanged", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, _ = repo.Create(ctx, testBook)

		err := repo.Delete(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)

		n, _ := repo.Count(ctx)
		assert.Equal(t, 1, n)
	})

	t.Run("id can be reused after delete", func(t *testing.T) {
		repo := NewMemoryRepo()
		_, _ = repo.Create(ctx, testBook)
		require.NoError(t, repo.Delete(ctx, testBook.ID))

		_, err := repo.Create(ctx, testBook)
		assert.NoError(t, err)
	})
}

func TestMemoryRepo_Scenario(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, err := repo.Create(ctx, testBook)
	require.NoError(t, err)

	_, err = repo.Create(ctx, testBook)
	require.ErrorIs(t, err, ErrConflict)
	n, _ := repo.Count(ctx)
	require.Equal(t, 1, n)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, testBook, got)

	require.NoError(t, repo.Delete(ctx, 1))
	n, _ = repo.Count(ctx)
	require.Equal(t, 0, n)

	_, err = repo.Get(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_ConcurrentCreateSameID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Create(ctx, Book{ID: 1, Title: fmt.Sprintf("writer-%d", i)})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	n, _ := repo.Count(ctx)
	assert.Equal(t, 1, n)
}

func TestMemoryRepo_ConcurrentMixed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(3)
		go func(id int) {
			defer wg.Done()
			_, _ = repo.Create(ctx, testBook.withID(id))
		}(i)
		go func(id int) {
			defer wg.Done()
			_ = repo.Delete(ctx, id-1)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = repo.List(ctx)
		}()
	}
	wg.Wait()

	books, _ := repo.List(ctx)
	seen := make(map[int]bool)
	for _, b := range books {
		assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
		seen[b.ID] = true
		got, err := repo.Get(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func (b Book) withID(id int) Book {
	b.ID = id
	return b
}
