package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
)

const (
	versionLayout = "20060102150405"
	upMarker      = "-- +goose Up"
	downMarker    = "-- +goose Down"
)

var (
	unsafeNameRe = regexp.MustCompile(`[^a-z0-9_]+`)
	fileNameRe   = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)
)

const sqlTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- revert %[1]s
-- +goose StatementEnd
`

// MigrationFile is one SQL migration on disk.
type MigrationFile struct {
	Version int64
	Name    string
	Path    string
}

// CreateSQLMigration writes an empty goose migration named
// <YYYYMMDDHHMMSS>_<slug>.sql under dir and returns its path.
func CreateSQLMigration(dir, name string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := slugify(name)
	if slug == "" {
		return "", fmt.Errorf("migration name %q is empty after sanitizing", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", time.Now().UTC().Format(versionLayout), slug))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create migration %q: %w", path, err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, sqlTemplate, slug); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}

// ListSQLMigrations returns the SQL migrations in dir ordered by version.
// Versions are parsed the same way goose parses them.
func ListSQLMigrations(dir string) ([]MigrationFile, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	files := make([]MigrationFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".sql" {
			continue
		}
		if !fileNameRe.MatchString(e.Name()) {
			return nil, fmt.Errorf("invalid migration filename %q (want YYYYMMDDHHMMSS_name.sql)", e.Name())
		}
		version, err := goose.NumericComponent(e.Name())
		if err != nil {
			return nil, fmt.Errorf("migration %q: %w", e.Name(), err)
		}
		files = append(files, MigrationFile{
			Version: version,
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// ValidateDir checks that every migration in dir has a unique version and
// declares an Up section ahead of its Down section.
func ValidateDir(dir string) error {
	files, err := ListSQLMigrations(dir)
	if err != nil {
		return err
	}
	for i, file := range files {
		if i > 0 && files[i-1].Version == file.Version {
			return fmt.Errorf("duplicate migration version %d in %q and %q", file.Version, files[i-1].Name, file.Name)
		}
		raw, err := os.ReadFile(file.Path)
		if err != nil {
			return fmt.Errorf("read %q: %w", file.Path, err)
		}
		body := string(raw)
		up := strings.Index(body, upMarker)
		down := strings.Index(body, downMarker)
		switch {
		case up < 0:
			return fmt.Errorf("migration %q missing %q", file.Name, upMarker)
		case down < 0:
			return fmt.Errorf("migration %q missing %q", file.Name, downMarker)
		case down < up:
			return fmt.Errorf("migration %q declares Down before Up", file.Name)
		}
	}
	return nil
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = unsafeNameRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}
