package codebase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher keeps a Codebase in sync with the markup files on disk.
type FileWatcher struct {
	codebase *Codebase
	watcher  *fsnotify.Watcher
	onChange func(*FileInfo)
	onRemove func(path string)
}

// NewFileWatcher watches every directory below the codebase root. New
// directories are picked up as they are created.
func NewFileWatcher(c *Codebase) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &FileWatcher{codebase: c, watcher: watcher}
	if err := w.addTree(c.RootDir()); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// OnChange registers fn to be called after a file is reparsed.
func (w *FileWatcher) OnChange(fn func(*FileInfo)) {
	w.onChange = fn
}

// OnRemove registers fn to be called after a file is dropped.
func (w *FileWatcher) OnRemove(fn func(path string)) {
	w.onRemove = fn
}

// Run handles file system events until ctx is done, then closes the
// watcher.
func (w *FileWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch %s: %s", w.codebase.RootDir(), err)
		}
	}
}

func (w *FileWatcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if event.Has(fsnotify.Create) {
				if err := w.addTree(event.Name); err != nil {
					log.Warningf("watch %s: %s", event.Name, err)
				}
			}
			return
		}
		if filepath.Ext(event.Name) != Extension {
			return
		}
		log.Debugf("%s %s", event.Op, event.Name)
		content, err := os.ReadFile(event.Name)
		if err != nil {
			log.Warningf("read %s: %s", event.Name, err)
			w.remove(event.Name)
			return
		}
		w.codebase.UpdateFile(event.Name, content)
		if w.onChange != nil {
			w.onChange(w.codebase.GetFile(event.Name))
		}

	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.remove(event.Name)
	}
}

// remove drops path from the codebase if it is known.
func (w *FileWatcher) remove(path string) {
	if w.codebase.GetFile(path) == nil {
		return
	}
	w.codebase.RemoveFile(path)
	if w.onRemove != nil {
		w.onRemove(path)
	}
}

// addTree parses the markup files below dir and watches its directories.
func (w *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !de.IsDir() {
			if filepath.Ext(path) == Extension {
				w.codebase.ScanFile(path)
			}
			return nil
		}
		if path != dir && skipDir(de.Name()) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
