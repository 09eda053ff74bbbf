package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigrationBumpsPastNewestVersion(t *testing.T) {
	dir := t.TempDir()
	future := "20991231235959_future_change.sql"
	if err := os.WriteFile(filepath.Join(dir, future), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("seed migration: %v", err)
	}
	restore := now
	now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = restore })

	path, err := CreateSQLMigration(dir, "Add review flags")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if got := filepath.Base(path); got != "21000101000000_add_review_flags.sql" {
		t.Fatalf("expected version after %s, got %s", future, got)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if !strings.Contains(string(body), "sqlite_schema.sql") {
		t.Fatalf("template should point at the sqlite schema:\n%s", body)
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestCreateSQLMigrationRejectsTakenName(t *testing.T) {
	dir := t.TempDir()
	if _, err := CreateSQLMigration(dir, "create_favorites"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := CreateSQLMigration(dir, "Create Favorites"); err == nil {
		t.Fatal("expected a repeated slug to be rejected")
	}
	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected an empty slug to be rejected")
	}
}
