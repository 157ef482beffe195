package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/docu3c/autocodex/schema"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateHistory moves the history schema to targetVersion. Negative means
// latest, zero rolls everything back, positive pins an exact version.
func MigrateHistory(backend schema.DatabaseBackend, connStr string, targetVersion int) error {
	if backend == schema.NoneBackend {
		return fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openMigrationDB(backend, connStr)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", backend, err)
	}

	m, err := newMigrator(backend, db)
	if err != nil {
		return err
	}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("history schema is dirty at version %d, force a version before retrying", from)
	}

	return applyMigration(m, from, targetVersion)
}

func openMigrationDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	var driverName string
	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite3"
		if connStr == "" {
			connStr = GetHistoryDBFilePath()
		}
	case schema.MySQLBackend:
		driverName = "mysql"
	case schema.PostgreSQLBackend:
		driverName = "pgx"
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", backend, err)
	}
	return db, nil
}

func newMigrator(backend schema.DatabaseBackend, db *sql.DB) (*migrate.Migrate, error) {
	var (
		driver database.Driver
		err    error
	)
	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s migration driver: %w", backend, err)
	}

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("access embedded migrations: %w", err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "autocodex", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func applyMigration(m *migrate.Migrate, from uint, target int) error {
	var (
		err  error
		goal string
	)
	switch {
	case target < 0:
		goal = "latest"
		err = m.Up()
	case target == 0:
		goal = "0"
		err = m.Down()
	default:
		goal = fmt.Sprintf("%d", target)
		err = m.Migrate(uint(target))
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Printf("History schema already at version %d, nothing to apply\n", from)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate history schema to %s: %w", goal, err)
	}

	to, _, _ := m.Version()
	fmt.Printf("Migrated history schema from version %d to %d\n", from, to)
	return nil
}
