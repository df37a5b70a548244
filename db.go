package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jxs13/timespan/migrations"
	"modernc.org/sqlite"
)

const migrationsTable = "timespan_schema_migrations"

var registerPragmas sync.Once

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	registerPragmas.Do(func() {
		pragmas := strings.Join(
			[]string{
				"PRAGMA journal_mode=WAL;",
				"PRAGMA encoding = 'UTF-8';",
				"PRAGMA busy_timeout = 300000;",
				"PRAGMA synchronous = NORMAL;",
			}, " ")
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			_, err := conn.ExecContext(context.Background(), pragmas, nil)
			if err != nil {
				return fmt.Errorf("failed to set PRAGMA: %w", err)
			}
			return nil
		})
	})

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(30 * time.Minute)

	// the history may live in a database shared with other tools
	err = migrations.Migrate(ctx, db, migrations.WithMigrationTableName(migrationsTable))
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
