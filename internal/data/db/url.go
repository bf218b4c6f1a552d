package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"

// Target is a parsed DATABASE_URL.
type Target struct {
	Dialect  Dialect
	DSN      string
	Path     string
	InMemory bool
}

// ParseURL accepts postgres:// and postgresql:// URLs, sqlite:path,
// sqlite://path, file: URIs and bare filesystem paths.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("database url is empty")
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return Target{Dialect: DialectPostgres, DSN: raw}, nil
	}

	rest := raw
	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		rest = raw[len("sqlite://"):]
	case strings.HasPrefix(lower, "sqlite:"):
		rest = raw[len("sqlite:"):]
	}
	if rest == "" {
		return Target{}, fmt.Errorf("database url %q has no path", raw)
	}

	path, query, _ := strings.Cut(rest, "?")
	t := Target{Dialect: DialectSQLite}
	fsPath := strings.TrimPrefix(path, "file:")
	if fsPath == ":memory:" || strings.Contains(query, "mode=memory") {
		t.InMemory = true
	} else {
		t.Path = fsPath
	}

	params := sqlitePragmas
	if query != "" {
		params = query + "&" + sqlitePragmas
	}
	t.DSN = path + "?" + params
	return t, nil
}

func (t Target) ensureDir() error {
	if t.Dialect != DialectSQLite || t.InMemory || t.Path == "" {
		return nil
	}
	dir := filepath.Dir(t.Path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
