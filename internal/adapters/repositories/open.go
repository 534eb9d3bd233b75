package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"label-batch-service/internal/config"
	"label-batch-service/internal/platform/db"
	"label-batch-service/internal/ports"
)

// Store is everything the commands need from a database.
type Store interface {
	ports.LabelRepository
	ports.DocumentStore
	LabelWriter
	ListDocuments(ctx context.Context) ([]ports.StoredDocument, error)
}

// OpenStore connects to the configured database, ensures its schema and
// returns the matching repository. The caller closes the *sql.DB.
func OpenStore(cfg config.Config) (*sql.DB, Store, error) {
	switch cfg.DBDriver {
	case "sqlite", "":
		conn, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return conn, NewSqliteLabelRepository(conn), nil

	case "pgx", "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("open store: DATABASE_URL is required for driver %q", cfg.DBDriver)
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := InitPostgresSchema(conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return conn, NewSQLLabelRepository(conn), nil
	}

	return nil, nil, fmt.Errorf("open store: unknown DB_DRIVER %q (want sqlite or pgx)", cfg.DBDriver)
}
