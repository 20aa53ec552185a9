package database

import (
	"embed"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies the schema for the selected dialect using
// golang-migrate. It is idempotent and runs once at process start.
func RunMigrations(driver, dsn string) error {
	var sourceDir, databaseURL string
	switch driver {
	case "pgx":
		sourceDir = "migrations/postgres"
		databaseURL = dsn
	case "sqlite":
		sourceDir = "migrations/sqlite"
		databaseURL = fmt.Sprintf("sqlite://%s", dsn)
	default:
		return fmt.Errorf("unknown database driver %q", driver)
	}

	d, err := iofs.New(migrationsFS, sourceDir)
	if err != nil {
		return fmt.Errorf("failed to create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("Database migrations applied successfully")
	return nil
}
