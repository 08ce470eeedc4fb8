package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/romangod6/news-site/internal/models"
)

// ErrUnknownSource is returned by Open for an unrecognised source kind.
var ErrUnknownSource = errors.New("unknown data source")

// Source provides the full article collection, in display order.
type Source interface {
	LoadArticles(ctx context.Context) ([]models.Article, error)
}

// Seeder is implemented by sources backed by a writable database.
type Seeder interface {
	Source
	Initialize() error
	ReplaceArticles(ctx context.Context, articles []models.Article) error
	Close() error
}

// Source kinds understood by Open.
const (
	KindStatic   = "static"
	KindFile     = "file"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
)

// Open returns the source for kind. location is the file path for "file",
// the database path for "sqlite" and the connection string for "postgres";
// it is ignored for "static". The returned close function is never nil.
func Open(kind, location string) (Source, func() error, error) {
	noop := func() error { return nil }

	switch kind {
	case KindStatic, "":
		return NewStaticSource(), noop, nil
	case KindFile:
		return NewFileSource(location), noop, nil
	case KindSQLite:
		s, err := NewSQLiteStore(location)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite %s: %w", location, err)
		}
		return s, s.Close, nil
	case KindPostgres:
		s, err := NewPostgresStore(location)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// OpenSeeder is like Open but only accepts database-backed kinds.
func OpenSeeder(kind, location string) (Seeder, error) {
	switch kind {
	case KindSQLite:
		return NewSQLiteStore(location)
	case KindPostgres:
		return NewPostgresStore(location)
	default:
		return nil, fmt.Errorf("%w: %q cannot be seeded", ErrUnknownSource, kind)
	}
}
