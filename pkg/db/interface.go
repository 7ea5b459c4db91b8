package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/byxorna/sieve/pkg/types/v1"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFamily = errors.New("unknown family")
	ErrNoListing     = errors.New("no listing found")
)

// Store is the interface any data source satisfies to hand listings of a
// family to the sections that display them.
type Store interface {
	// Read returns the raw listing for a family, or ErrNoListing.
	Read(v1.Family) ([]byte, error)
	StoragePath(v1.Family) string
}

// Watcher is implemented by stores that can report when a family's listing
// changed underneath us.
type Watcher interface {
	// Watch delivers the family of every changed listing until ctx is done.
	Watch(ctx context.Context) (<-chan v1.Family, <-chan error, error)
}

// Load reads and validates one family's listing. A missing listing is an
// empty one.
func Load[T any](s Store, f v1.Family) (*v1.Listing[T], error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, f)
	}

	l := v1.Listing[T]{Items: []T{}}
	raw, err := s.Read(f)
	if errors.Is(err, ErrNoListing) {
		return &l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", f, err)
	}

	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("unable to unmarshal %s: %w", s.StoragePath(f), err)
	}
	if l.Items == nil {
		l.Items = []T{}
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%s validation error: %w", s.StoragePath(f), err)
	}
	return &l, nil
}
