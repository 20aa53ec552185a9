package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/essalvador31/ShoppingListManager/internal/config"
)

// DBService represents a service that interacts with a database.
type DBService struct {
	DB     *sql.DB
	Driver string
}

// NewDBService opens the store selected by the configuration: a networked
// Postgres instance when DatabaseURL is set, an embedded SQLite file
// otherwise. Schema migrations run before the connection is handed out.
func NewDBService(cfg *config.Config) (*DBService, error) {
	driver, dsn := resolveTarget(cfg)

	if err := RunMigrations(driver, dsn); err != nil {
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	db, err := sql.Open(driver, openDSN(driver, dsn))
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %v", err)
	}

	if driver == "pgx" {
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else {
		// SQLite serializes writers; a single connection avoids
		// SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("could not connect to the database: %v", err)
	}

	return &DBService{DB: db, Driver: driver}, nil
}

func resolveTarget(cfg *config.Config) (driver, dsn string) {
	if cfg.DatabaseURL != "" {
		return "pgx", cfg.DatabaseURL
	}
	return "sqlite", cfg.SQLitePath
}

func openDSN(driver, dsn string) string {
	if driver == "sqlite" {
		return dsn + "?_pragma=foreign_keys(1)"
	}
	return dsn
}

// Health checks the health of the database connection by pinging the database.
func (s *DBService) Health() map[string]string {
	stats := make(map[string]string)

	err := s.DB.Ping()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close closes the database connection.
func (s *DBService) Close() error {
	log.Println("Closing database connection")
	return s.DB.Close()
}
