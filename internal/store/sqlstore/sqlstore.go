package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fittrack/internal/store"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

var _ store.Store = (*SQLStore)(nil)

// SQLStore implements the Store interface for SQL databases
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

// New opens a pooled connection with the given driver and connection string.
// It does not create tables; call Migrate once at startup.
func New(driver, connStr string) (*SQLStore, error) {
	dbType := DBType(driver)
	if dbType != SQLite && dbType != Postgres {
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	if dbType == SQLite {
		connStr = sqliteDSN(connStr)
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLStore{
		db:     db,
		dbType: dbType,
	}

	if dbType == SQLite {
		// One writer at a time; also keeps a :memory: database shared.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return s, nil
}

// Driver reports which dialect the store speaks.
func (s *SQLStore) Driver() DBType {
	return s.dbType
}

// sqliteDefaults are go-sqlite3 DSN parameters applied to every connection
// the pool opens. Values already present in the DSN win.
var sqliteDefaults = []struct{ key, value string }{
	{"_busy_timeout", "5000"},
	{"_journal_mode", "WAL"},
}

func sqliteDSN(connStr string) string {
	var b strings.Builder
	b.WriteString(connStr)
	sep := "?"
	if strings.Contains(connStr, "?") {
		sep = "&"
	}
	for _, p := range sqliteDefaults {
		if strings.Contains(connStr, p.key+"=") {
			continue
		}
		b.WriteString(sep + p.key + "=" + p.value)
		sep = "&"
	}
	return b.String()
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// insert runs an INSERT and returns the id assigned by the database.
func (s *SQLStore) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dbType == Postgres {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	result, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, s.rebind(query), args...)
	return err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
