// Command seed bulk-loads generated books into the postgres catalog store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var words = []string{
	"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
	"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
	"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
	"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
}

var surnames = []string{
	"Austen", "Borges", "Calvino", "Dickens", "Eliot", "Faulkner", "Garcia",
	"Hugo", "Ishiguro", "Joyce", "Kafka", "Le Guin", "Morrison", "Nabokov",
}

type options struct {
	dsn     string
	count   int
	startID int
	seed    int64
}

func main() {
	var opts options
	flag.IntVar(&opts.count, "count", 10000, "Number of books to generate")
	flag.IntVar(&opts.startID, "start-id", 1, "First id to assign")
	flag.Int64Var(&opts.seed, "seed", 1, "Random seed")
	flag.Parse()

	config.LoadEnvFiles()
	logger.Setup(os.Stderr, os.Getenv("LOG_LEVEL"), "text")

	opts.dsn = os.Getenv("DB_DSN")
	if opts.dsn == "" {
		opts.dsn = config.DefaultDSN
	}

	if err := run(context.Background(), opts); err != nil {
		slog.Error("seed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.count <= 0 {
		return fmt.Errorf("count must be positive, got %d", opts.count)
	}

	pool, err := pgxpool.New(ctx, opts.dsn)
	if err != nil {
		return fmt.Errorf("connect %s: %w", config.RedactDSN(opts.dsn), err)
	}
	defer pool.Close()

	books := generate(rand.New(rand.NewSource(opts.seed)), opts.startID, opts.count)
	slog.Info("inserting books", "count", len(books))

	n, err := pool.CopyFrom(ctx, pgx.Identifier{"books"}, []string{"id", "title", "author", "year"}, pgx.CopyFromRows(rows(books)))
	if err != nil {
		return fmt.Errorf("copy books: %w", err)
	}
	slog.Info("inserted books", "count", n)

	total, err := book.NewPostgresRepo(pool, config.DefaultDBTimeout).Count(ctx)
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	slog.Info("catalog size", "total", total)
	return nil
}

// generate returns count books with consecutive ids starting at startID.
func generate(rng *rand.Rand, startID, count int) []book.Book {
	books := make([]book.Book, 0, count)
	for i := 0; i < count; i++ {
		books = append(books, book.Book{
			ID:     startID + i,
			Title:  fmt.Sprintf("The %s of %s", words[rng.Intn(len(words))], words[rng.Intn(len(words))]),
			Author: surnames[rng.Intn(len(surnames))],
			Year:   1950 + rng.Intn(75),
		})
	}
	return books
}

func rows(books []book.Book) [][]any {
	out := make([][]any, len(books))
	for i, b := range books {
		out[i] = []any{int64(b.ID), b.Title, b.Author, int32(b.Year)}
	}
	return out
}
