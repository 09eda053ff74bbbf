package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed sqlite_schema.sql
var sqliteSchema string

// sqliteDriverName registers connections whose lower() folds case with Go's
// Unicode tables. The built-in one only folds ASCII, so "CERÁMICA" would not
// match a "cerámica" filter.
const sqliteDriverName = "sqlite3_artesanos"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", foldLower, true)
		},
	})
}

func foldLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// OpenSQLite opens a SQLite database and applies the marketplace schema. It
// backs the dev SQLite flag and repository tests. The pool is pinned to one
// connection so in-memory databases survive and writes serialize.
func OpenSQLite(ctx context.Context, dsn string) (*Client, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}

	conn, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	for _, stmt := range append([]string{"PRAGMA foreign_keys = ON"}, splitStatements(sqliteSchema)...) {
		if err := conn.WithContext(ctx).Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("applying sqlite schema: %w", err)
		}
	}

	return &Client{conn: conn}, nil
}

func splitStatements(schema string) []string {
	parts := strings.Split(schema, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
