// Package database applies schema migrations at startup.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Migrator runs *.up.sql files in lexical order, one transaction per file.
// There is no down path and no version table; files must be idempotent
// (CREATE TABLE IF NOT EXISTS and friends).
type Migrator struct {
	db  *sql.DB
	log *slog.Logger
}

// NewMigrator constructs a Migrator.
func NewMigrator(db *sql.DB, log *slog.Logger) *Migrator {
	if log == nil {
		log = slog.Default()
	}

	return &Migrator{db: db, log: log}
}

// ApplyDir runs every up migration found directly in dir, in lexical order.
func (m *Migrator) ApplyDir(ctx context.Context, dir string) error {
	names, err := ListMigrations(os.DirFS("."), dir)
	if err != nil {
		return fmt.Errorf("read migrations dir %q: %w", dir, err)
	}

	log := m.log.With(slog.String("dir", dir))

	if len(names) == 0 {
		log.Warn("no up migrations found")
		return nil
	}

	for _, name := range names {
		if err := m.apply(ctx, log, filepath.Join(dir, name)); err != nil {
			return err
		}
	}

	log.Info("migrations applied", slog.Int("count", len(names)))

	return nil
}

func (m *Migrator) apply(ctx context.Context, log *slog.Logger, path string) error {
	// #nosec G304: migration paths are controlled by deployment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %q: %w", path, err)
	}

	statement := strings.TrimSpace(string(data))
	if statement == "" {
		log.Warn("skipping empty migration", slog.String("file", filepath.Base(path)))
		return nil
	}

	log.Info("applying migration", slog.String("file", filepath.Base(path)))

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for %q: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, statement); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Error("rollback failed", slog.Any("error", rbErr))
		}
		return fmt.Errorf("execute migration %q: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %q: %w", path, err)
	}

	return nil
}

func isUpMigration(name string) bool {
	return strings.HasSuffix(name, ".up.sql")
}

// ListMigrations returns the .up.sql files directly under root, sorted
// lexically.
func ListMigrations(dir fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(dir, root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && isUpMigration(e.Name()) {
			names = append(names, e.Name())
		}
	}

	sort.Strings(names)

	return names, nil
}
