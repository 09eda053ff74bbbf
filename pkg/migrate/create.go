package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var slugRe = regexp.MustCompile(`[^a-z0-9_]+`)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// CreateSQLMigration writes <dir>/<version>_<slug>.sql with goose markers.
// The version is the current UTC timestamp, bumped past the newest existing
// migration so goose never sees an out-of-order file. A slug already used in
// dir is rejected.
func CreateSQLMigration(dir string, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return "", fmt.Errorf("name %q has no usable characters", name)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	latest, err := latestVersion(dir, slug)
	if err != nil {
		return "", err
	}
	version := now()
	if last, ok := parseVersion(latest); ok && !version.After(last) {
		version = last.Add(time.Second)
	}

	fullpath := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", version.Format(versionLayout), slug))
	template := fmt.Sprintf(`-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- mirror table changes in pkg/db/sqlite_schema.sql for the dev SQLite mode
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s
-- +goose StatementEnd
`, slug)

	if err := os.WriteFile(fullpath, []byte(template), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", fullpath, err)
	}
	return fullpath, nil
}

func migrationSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}

// latestVersion returns the highest version in dir and fails when slug is
// already taken.
func latestVersion(dir, slug string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read dir %q: %w", dir, err)
	}
	latest := ""
	for _, e := range entries {
		m := sqlFileRe.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		if strings.TrimSuffix(strings.TrimPrefix(e.Name(), m[1]+"_"), ".sql") == slug {
			return "", fmt.Errorf("migration %q already exists as %s", slug, e.Name())
		}
		if m[1] > latest {
			latest = m[1]
		}
	}
	return latest, nil
}

func parseVersion(v string) (time.Time, bool) {
	if _, err := strconv.ParseUint(v, 10, 64); err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(versionLayout, v)
	return t, err == nil
}
