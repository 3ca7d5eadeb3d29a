//go:build !linux && !windows

package watch

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// fsnotifySub adapts a cross-platform fsnotify watcher onto the event
// taxonomy for platforms without a dedicated integration. fsnotify
// reports a rename as a bare Rename on the old path, so MovedFrom
// carries no destination here, and there is no MovedTo.
type fsnotifySub struct {
	watcher   *fsnotify.Watcher
	root      string
	recursive bool
	sink      func(sysEvent)
	log       *zap.Logger
}

// newNativeSub implements the per-platform hook used by nativeFS.
func newNativeSub(root string, recursive bool, log *zap.Logger, sink func(sysEvent)) (*fsnotifySub, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	sub := &fsnotifySub{watcher: watcher, root: root, recursive: recursive, sink: sink, log: log}
	if err := sub.addTree(root, false); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	go sub.run()
	return sub, nil
}

// addTree watches dir and, for recursive subscriptions, every
// directory below it, optionally reporting visited entries as Created.
func (s *fsnotifySub) addTree(dir string, emit bool) error {
	if err := s.watcher.Add(dir); err != nil {
		return err
	}
	if !s.recursive {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if emit {
			s.sink(sysEvent{kind: Created, path: child})
		}
		if entry.IsDir() {
			if err := s.addTree(child, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *fsnotifySub) run() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(ev)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("fsnotify error", zap.String("path", s.root), zap.Error(err))
		}
	}
}

func (s *fsnotifySub) handle(ev fsnotify.Event) {
	switch {
	case ev.Has(fsnotify.Create):
		s.sink(sysEvent{kind: Created, path: ev.Name})
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && s.recursive {
			// A directory created inside the watched tree: report its
			// contents rather than risk missing them.
			if err := s.addTree(ev.Name, true); err != nil {
				s.log.Warn("recursive watch attach failed",
					zap.String("path", ev.Name), zap.Error(err))
			}
		}
	case ev.Has(fsnotify.Remove):
		s.sink(sysEvent{kind: Removed, path: ev.Name})
	case ev.Has(fsnotify.Rename):
		s.sink(sysEvent{kind: MovedFrom, path: ev.Name})
	case ev.Has(fsnotify.Write):
		s.sink(sysEvent{kind: Modified, path: ev.Name, dataChanged: true})
	case ev.Has(fsnotify.Chmod):
		s.sink(sysEvent{kind: Modified, path: ev.Name, metaChanged: true})
	}
}

func (s *fsnotifySub) Close() error {
	return s.watcher.Close()
}
