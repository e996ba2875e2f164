// Package collection implements the embedded profile store: notes, note
// types, decks, and the media directory of a single profile.
package collection

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/ajatt-tools/cropro/db/migrations"
	"github.com/ajatt-tools/cropro/internal/config"

	// Import SQLite driver for database/sql
	_ "modernc.org/sqlite"
)

// Collection is an open handle to one profile's store. It owns the record
// tables and the media directory path.
type Collection struct {
	DB       *sql.DB
	Name     string
	MediaDir string
}

// Open opens the collection of an existing profile. It fails with
// ErrProfileNotFound when the profile has no collection on disk.
func Open(profile string) (*Collection, error) {
	dbPath := config.GetCollectionPath(profile)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profile)
		}
		return nil, fmt.Errorf("failed to stat collection: %w", err)
	}
	return open(profile, dbPath)
}

// Create opens the collection of the named profile, creating the profile
// directory, database, and media directory as needed.
func Create(profile string) (*Collection, error) {
	dbPath := config.GetCollectionPath(profile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return open(profile, dbPath)
}

func open(profile, dbPath string) (*Collection, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve collection path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", filepath.ToSlash(absPath))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping collection: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	mediaDir := config.GetMediaDir(profile)
	if err := os.MkdirAll(mediaDir, 0o750); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &Collection{
		DB:       db,
		Name:     profile,
		MediaDir: mediaDir,
	}, nil
}

// Close releases the database handle. It is safe to call more than once.
func (c *Collection) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	err := c.DB.Close()
	c.DB = nil
	return err
}

// IsOpen reports whether the handle still owns a live database connection.
func (c *Collection) IsOpen() bool {
	return c != nil && c.DB != nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to initialise migrate driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	defer func() {
		_ = sourceDriver.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
