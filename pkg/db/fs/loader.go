package fs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/byxorna/sieve/pkg/db"
	"github.com/byxorna/sieve/pkg/types/v1"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
)

var (
	StorageExtension = ".yaml"
)

// Loader reads family listings from one yaml file per family in a
// directory, e.g. rooms.yaml and public_rooms.yaml.
type Loader struct {
	sync.Mutex
	Directory string `validate:"required"`

	mtimeMap map[v1.Family]time.Time
}

func New(dir string, createDirIfMissing bool) (*Loader, error) {
	expandedPath, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}

	l := Loader{
		Directory: expandedPath,
		mtimeMap:  map[v1.Family]time.Time{},
	}

	finfo, err := os.Stat(expandedPath)
	switch {
	case err == nil && !finfo.IsDir():
		return nil, fmt.Errorf("%s must be a directory", expandedPath)
	case err != nil && createDirIfMissing:
		if err := os.MkdirAll(expandedPath, 0700); err != nil {
			return nil, fmt.Errorf("error creating %s: %w", expandedPath, err)
		}
	case err != nil:
		return nil, fmt.Errorf("unable to open %s: %w", expandedPath, err)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("error validating storage provider: %w", err)
	}
	return &l, nil
}

func (x *Loader) Validate() error {
	validate := validator.New()
	return validate.Struct(x)
}

func (x *Loader) StoragePath(f v1.Family) string {
	return filepath.Join(x.Directory, string(f)+StorageExtension)
}

// FamilyFromPath maps a listing file back to its family.
func (x *Loader) FamilyFromPath(p string) (v1.Family, bool) {
	if filepath.Clean(filepath.Dir(p)) != filepath.Clean(x.Directory) {
		return "", false
	}
	base := filepath.Base(p)
	if !strings.HasSuffix(base, StorageExtension) {
		return "", false
	}
	f := v1.Family(strings.TrimSuffix(base, StorageExtension))
	return f, f.Valid()
}

func (x *Loader) Read(f v1.Family) ([]byte, error) {
	x.Lock()
	defer x.Unlock()

	p := x.StoragePath(f)
	finfo, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, db.ErrNoListing
	}
	if err != nil {
		return nil, err
	}
	x.mtimeMap[f] = finfo.ModTime()
	return os.ReadFile(p)
}

// ShouldReloadFromDisk reports whether the listing changed on disk since it
// was last read.
func (x *Loader) ShouldReloadFromDisk(f v1.Family) bool {
	x.Lock()
	defer x.Unlock()

	finfo, err := os.Stat(x.StoragePath(f))
	if err != nil {
		// a removed listing needs reloading too, as an empty one
		_, seen := x.mtimeMap[f]
		return seen
	}
	last, seen := x.mtimeMap[f]
	return !seen || last.Before(finfo.ModTime())
}

// Watch reports families whose listing file was written, created or removed.
// Events are delivered from a separate goroutine; consumers hand them to
// their own event loop before touching any section.
func (x *Loader) Watch(ctx context.Context) (<-chan v1.Family, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(x.Directory); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("unable to watch %s: %w", x.Directory, err)
	}

	changed := make(chan v1.Family)
	errs := make(chan error)

	go func() {
		defer watcher.Close()
		defer close(changed)
		defer close(errs)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				f, ok := x.FamilyFromPath(event.Name)
				if !ok || !x.ShouldReloadFromDisk(f) {
					continue
				}
				log.Printf("%s changed (%s)", f, event.Op)
				select {
				case changed <- f:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changed, errs, nil
}

var (
	_ db.Store   = &Loader{}
	_ db.Watcher = &Loader{}
)
