package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	nurl "net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "modernc.org/sqlite"
)

func init() {
	database.Register("sqlite", &sqliteDriver{config: &config{Context: context.Background()}})
}

var (
	DefaultMigrationsTable = "schema_migrations"
	ErrNilConfig           = errors.New("no config")
)

type config struct {
	Context         context.Context
	MigrationsTable string
	NoTxWrap        bool
}

// sqliteDriver is a golang-migrate database driver for modernc.org/sqlite,
// which does not need cgo unlike the upstream sqlite3 driver.
type sqliteDriver struct {
	db       *sql.DB
	isLocked atomic.Bool
	config   *config
}

func withInstance(db *sql.DB, cfg *config) (*sqliteDriver, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.MigrationsTable == "" {
		cfg.MigrationsTable = DefaultMigrationsTable
	}

	if err := db.PingContext(cfg.Context); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	d := &sqliteDriver{
		db:     db,
		config: cfg,
	}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

// ensureVersionTable locks the driver itself, unlike the other methods
// which expect the caller to hold the lock.
func (d *sqliteDriver) ensureVersionTable() (err error) {
	if err = d.Lock(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, d.Unlock())
	}()

	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %[1]s (version uint64, dirty bool);
	CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_version_unique ON %[1]s (version);
	`, d.config.MigrationsTable)

	if _, err := d.db.ExecContext(d.config.Context, query); err != nil {
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}
	return nil
}

// Open supports urls like sqlite://path/to/history.db?x-migrations-table=name&x-no-tx-wrap=true
func (d *sqliteDriver) Open(url string) (database.Driver, error) {
	purl, err := nurl.Parse(url)
	if err != nil {
		return nil, err
	}

	dsn := strings.Replace(migrate.FilterCustomQuery(purl).String(), "sqlite://", "", 1)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	qv := purl.Query()
	noTxWrap := false
	if v := qv.Get("x-no-tx-wrap"); v != "" {
		noTxWrap, err = strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("x-no-tx-wrap: %w", err), db.Close())
		}
	}

	driver, err := withInstance(db, &config{
		Context:         d.config.Context,
		MigrationsTable: qv.Get("x-migrations-table"),
		NoTxWrap:        noTxWrap,
	})
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return driver, nil
}

func (d *sqliteDriver) Close() error {
	return d.db.Close()
}

func (d *sqliteDriver) Drop() (err error) {
	ctx := d.config.Context
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%';`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Join(err, rows.Close())
		}
		tables = append(tables, name)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}

	if len(tables) == 0 {
		return nil
	}

	for _, t := range tables {
		if err := d.exec("DROP TABLE " + t); err != nil {
			return err
		}
	}

	query = "VACUUM"
	if _, err := d.db.ExecContext(ctx, query); err != nil {
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}
	return nil
}

func (d *sqliteDriver) Lock() error {
	if !d.isLocked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (d *sqliteDriver) Unlock() error {
	if !d.isLocked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

func (d *sqliteDriver) Run(migration io.Reader) error {
	data, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	query := string(data)

	if d.config.NoTxWrap {
		if _, err := d.db.ExecContext(d.config.Context, query); err != nil {
			return &database.Error{OrigErr: err, Query: data}
		}
		return nil
	}
	return d.exec(query)
}

// exec runs the query in its own transaction.
func (d *sqliteDriver) exec(query string, args ...any) (err error) {
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(d.config.Context, query, args...); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(query)}
		}
		return nil
	})
}

func (d *sqliteDriver) inTx(f func(tx *sql.Tx) error) (err error) {
	tx, err := d.db.BeginTx(d.config.Context, nil)
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if err = f(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

func (d *sqliteDriver) SetVersion(version int, dirty bool) error {
	return d.inTx(func(tx *sql.Tx) error {
		query := "DELETE FROM " + d.config.MigrationsTable
		if _, err := tx.ExecContext(d.config.Context, query); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(query)}
		}

		// a dirty nil version is kept so that a failed first down migration stays visible
		if version < 0 && !(version == database.NilVersion && dirty) {
			return nil
		}

		query = fmt.Sprintf(`INSERT INTO %s (version, dirty) VALUES (?, ?)`, d.config.MigrationsTable)
		if _, err := tx.ExecContext(d.config.Context, query, version, dirty); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(query)}
		}
		return nil
	})
}

func (d *sqliteDriver) Version() (version int, dirty bool, err error) {
	query := "SELECT version, dirty FROM " + d.config.MigrationsTable + " LIMIT 1"
	err = d.db.QueryRowContext(d.config.Context, query).Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return 0, false, &database.Error{OrigErr: err, Query: []byte(query)}
	}
	return version, dirty, nil
}
