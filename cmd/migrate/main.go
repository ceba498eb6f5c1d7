// Command migrate applies the goose migrations under db/migrations to the
// postgres catalog store.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var errUnknownCommand = errors.New("unknown command")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	logger.Setup(os.Stderr, os.Getenv("LOG_LEVEL"), "text")

	dir := migrationsDir()

	// create only touches the filesystem.
	if *command == "create" {
		if err := run(nil, *command, dir, *name); err != nil {
			slog.Error("migrate", "command", *command, "err", err)
			os.Exit(1)
		}
		return
	}

	dsn := databaseDSN()
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("connect", "dsn", config.RedactDSN(dsn), "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := run(db, *command, dir, *name); err != nil {
		slog.Error("migrate", "command", *command, "err", err)
		os.Exit(1)
	}
}

func run(db *sql.DB, command, dir, name string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		slog.Info("migrations applied", "dir", dir)
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		slog.Info("migration rolled back", "dir", dir)
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	case "create":
		if name == "" {
			return errors.New("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		slog.Info("migration created", "name", name, "dir", dir)
	default:
		return fmt.Errorf("%w %q: use up, down, status, create", errUnknownCommand, command)
	}
	return nil
}
