package app

import (
	"context"
	"fmt"
	"log"

	"github.com/byxorna/sieve/pkg/config"
	"github.com/byxorna/sieve/pkg/db"
	"github.com/byxorna/sieve/pkg/db/fs"
	"github.com/byxorna/sieve/pkg/section"
	"github.com/byxorna/sieve/pkg/types/v1"
)

var (
	// CreateDirectoryIfMissing creates config.Directory if not already existing
	CreateDirectoryIfMissing = true
)

// Directory is the searchable list of every configured section, fed from a
// store. It is not safe for concurrent use; the TUI only touches it from its
// Update loop.
type Directory struct {
	store      db.Store
	bindings   []*binding
	controller *section.Controller
}

func NewDirectory(cfg *config.Config, store db.Store) (*Directory, error) {
	d := Directory{
		store:      store,
		controller: section.NewController(),
	}

	tag := cfg.Language()
	for _, cs := range cfg.Sections {
		b, err := newBinding(cs, tag)
		if err != nil {
			return nil, err
		}
		d.bindings = append(d.bindings, b)
		d.controller.AddSection(b.group)
	}

	if err := d.ReloadAll(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReloadAll reads every family again.
func (d *Directory) ReloadAll() error {
	for _, b := range d.bindings {
		if err := b.reload(d.store); err != nil {
			return fmt.Errorf("unable to load section %s: %w", b.Name, err)
		}
	}
	d.controller.Refresh()
	return nil
}

// Reload reads one family again and refreshes the sections it feeds. The
// active query is applied to the new items.
func (d *Directory) Reload(f v1.Family) error {
	found := false
	for _, b := range d.bindings {
		if b.Family != f {
			continue
		}
		found = true
		if err := b.reload(d.store); err != nil {
			return fmt.Errorf("unable to reload section %s: %w", b.Name, err)
		}
	}
	if !found {
		log.Printf("no section shows %s, ignoring change", f)
		return nil
	}
	d.controller.Refresh()
	return nil
}

// ApplyFilter narrows every section to query and returns the total number of
// matching items.
func (d *Directory) ApplyFilter(query string) int {
	total := d.controller.ApplyFilter(query)
	if d.controller.Filtered() {
		log.Printf("filter %q matched %d items", d.controller.Query(), total)
	}
	return total
}

func (d *Directory) Controller() *section.Controller { return d.controller }
func (d *Directory) Store() db.Store                 { return d.store }

// Families lists the families shown by at least one section.
func (d *Directory) Families() []v1.Family {
	seen := map[v1.Family]bool{}
	var out []v1.Family
	for _, b := range d.bindings {
		if !seen[b.Family] {
			seen[b.Family] = true
			out = append(out, b.Family)
		}
	}
	return out
}

// Open loads the configuration at path and the directory it points at.
func Open(path string) (*config.Config, *Directory, error) {
	cfg, err := config.NewFromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load configuration: %w", err)
	}

	store, err := fs.New(cfg.Directory, CreateDirectoryIfMissing)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing storage provider: %w", err)
	}

	dir, err := NewDirectory(cfg, store)
	if err != nil {
		return nil, nil, err
	}
	return cfg, dir, nil
}

// New builds the interactive application for the configuration at path.
// When the store can report changes, they are watched until ctx is done.
func New(ctx context.Context, path string, useAltScreen bool) (*Application, error) {
	cfg, dir, err := Open(path)
	if err != nil {
		return nil, err
	}

	m := newApplication(cfg, dir)
	m.UseAltScreen = useAltScreen

	if w, ok := dir.Store().(db.Watcher); ok {
		changes, errs, err := w.Watch(ctx)
		if err != nil {
			return nil, fmt.Errorf("unable to create watcher: %w", err)
		}
		m.changes, m.watchErrs = changes, errs
	}

	return m, nil
}
