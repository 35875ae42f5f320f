package database

import (
	"database/sql"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/uptrace/bun/driver/pgdriver"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_create_models",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS models (
					id BIGSERIAL PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL,
					status TEXT NOT NULL DEFAULT 'training',
					training_progress INT NOT NULL DEFAULT 0,
					rating DOUBLE PRECISION NOT NULL DEFAULT 0,
					reviews INT NOT NULL DEFAULT 0,
					price DOUBLE PRECISION NOT NULL DEFAULT 0,
					image_url TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)
			`},
			Down: []string{`DROP TABLE IF EXISTS models`},
		},
	},
}

// NewPostgres opens the registry database and applies pending migrations.
// When url is empty a local development DSN is derived from host.
func NewPostgres(url, host string) (*sql.DB, error) {
	if url == "" {
		url = fmt.Sprintf("postgres://postgres:postgres@%s/modelmart?sslmode=disable", host)
	}

	db := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(url)))
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging db: %w", err)
	}

	if _, err := migrate.Exec(db, "postgres", migrations, migrate.Up); err != nil {
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	return db, nil
}
