package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"nkl/internal/project"
)

// Watcher reports changes to nkl sources under a set of roots. Roots may
// be files or directories; directories are watched recursively.
type Watcher struct {
	w     *fsnotify.Watcher
	files map[string]struct{} // roots given as files
	dirs  []string            // roots given as directories
}

// NewWatcher registers every root before returning, so changes made after
// it returns are observed by Run.
func NewWatcher(roots []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{w: fw, files: make(map[string]struct{})}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		st, err := os.Stat(abs)
		if err != nil {
			_ = fw.Close()
			return nil, err
		}
		if !st.IsDir() {
			// редакторы часто заменяют файл целиком, поэтому следим за каталогом
			w.files[abs] = struct{}{}
			err = fw.Add(filepath.Dir(abs))
		} else {
			w.dirs = append(w.dirs, abs)
			err = w.addTree(abs)
		}
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", root, err)
		}
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.w.Add(path)
		}
		return nil
	})
}

func (w *Watcher) relevant(path string) bool {
	if _, ok := w.files[path]; ok {
		return true
	}
	if !strings.HasSuffix(path, project.SourceExt) {
		return false
	}
	for _, dir := range w.dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run calls onChange with the sorted set of changed paths once no new
// change arrived for debounce. It returns when ctx is done.
func (w *Watcher) Run(ctx context.Context, debounce time.Duration, onChange func([]string)) error {
	pending := make(map[string]struct{})
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
					_ = w.addTree(ev.Name)
					continue
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			fire = time.After(debounce)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			clear(pending)
			sort.Strings(changed)
			onChange(changed)
		}
	}
}

func (w *Watcher) Close() error {
	return w.w.Close()
}
