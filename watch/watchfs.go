package watch

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// Watchable is implemented by filesystems that can notify changes.
type Watchable interface {
	vfsx.FS

	// AddWatcher registers callback for events under path. A zero
	// filter subscribes to AllEvents; recursive extends the
	// subscription beyond direct children to the whole subtree.
	AddWatcher(callback func(Event), path string, filter EventKind, recursive bool) (*Watcher, error)

	// DelWatcher removes a watcher returned by AddWatcher. Removing a
	// watcher twice is a no-op.
	DelWatcher(w *Watcher) error
}

// WatchFS wraps a filesystem and generates events from the mutating
// calls made through it. Changes that reach the same storage by any
// other route are invisible to a plain WatchFS; use NewPolling or a
// native adapter to observe those too.
type WatchFS struct {
	inner vfsx.FS
	reg   *Registry

	// self is the filesystem reported in emitted events: the outermost
	// type when WatchFS is embedded.
	self vfsx.FS
}

var (
	_ Watchable        = (*WatchFS)(nil)
	_ vfsx.SysPathFS   = (*WatchFS)(nil)
	_ vfsx.MkdirAllFS  = (*WatchFS)(nil)
	_ vfsx.RemoveAllFS = (*WatchFS)(nil)
	_ vfsx.CopyFS      = (*WatchFS)(nil)
	_ vfsx.MoveFS      = (*WatchFS)(nil)
	_ vfsx.Unwrapper   = (*WatchFS)(nil)
)

// Wrap makes inner watchable by interception.
func Wrap(inner vfsx.FS, opts ...Option) *WatchFS {
	w := &WatchFS{inner: inner, reg: NewRegistry(opts...)}
	w.self = w
	return w
}

// AddWatcher implements Watchable.
func (w *WatchFS) AddWatcher(callback func(Event), path string, filter EventKind, recursive bool) (*Watcher, error) {
	return w.reg.Add(callback, path, filter, recursive)
}

// DelWatcher implements Watchable.
func (w *WatchFS) DelWatcher(watcher *Watcher) error {
	w.reg.Del(watcher)
	return nil
}

// Unwrap returns the wrapped filesystem.
func (w *WatchFS) Unwrap() vfsx.FS { return w.inner }

func (w *WatchFS) notify(ev Event) {
	ev.FS = w.self
	w.reg.Notify(ev)
}

// abs normalizes name for event reporting. Delegation uses the same
// form, which the inner filesystem accepts unchanged.
func abs(name string) (string, error) {
	p, err := fspath.Normalize(name)
	if err != nil {
		return "", vfsx.FromOS("watch", name, err)
	}
	return fspath.Abs(p), nil
}

func (w *WatchFS) Open(name string) (fs.File, error) {
	return w.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile opens the file and reports Created when a new file appears
// and Accessed for the open itself. The returned handle reports
// Modified once written data is flushed out by Close.
func (w *WatchFS) OpenFile(name string, flag int, perm fs.FileMode) (vfsx.File, error) {
	p, err := abs(name)
	if err != nil {
		return nil, err
	}
	existed := false
	if flag&os.O_CREATE != 0 {
		existed, _ = vfsx.IsFile(w.inner, p)
	}
	f, err := w.inner.OpenFile(p, flag, perm)
	if err != nil {
		return nil, err
	}
	if flag&os.O_CREATE != 0 && !existed {
		w.notify(Event{Kind: Created, Path: p})
	}
	w.notify(Event{Kind: Accessed, Path: p})
	truncated := flag&os.O_TRUNC != 0 && existed
	return &watchedFile{File: f, fs: w, path: p, modified: truncated}, nil
}

func (w *WatchFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return w.inner.ReadDir(name)
}

func (w *WatchFS) Stat(name string) (fs.FileInfo, error) {
	return w.inner.Stat(name)
}

func (w *WatchFS) Mkdir(name string, perm fs.FileMode) error {
	p, err := abs(name)
	if err != nil {
		return err
	}
	if err := w.inner.Mkdir(p, perm); err != nil {
		return err
	}
	w.notify(Event{Kind: Created, Path: p})
	return nil
}

// MkdirAll creates missing directories and reports a Created event for
// each one, parents first.
func (w *WatchFS) MkdirAll(name string, perm fs.FileMode) error {
	p, err := abs(name)
	if err != nil {
		return err
	}
	var created []string
	for _, prefix := range fspath.Ancestry(p) {
		if prefix == "/" {
			continue
		}
		if ok, _ := vfsx.IsDir(w.inner, prefix); !ok {
			created = append(created, prefix)
		}
	}
	if err := vfsx.MkdirAll(w.inner, p, perm); err != nil {
		return err
	}
	for _, dir := range created {
		w.notify(Event{Kind: Created, Path: dir})
	}
	return nil
}

func (w *WatchFS) Remove(name string) error {
	p, err := abs(name)
	if err != nil {
		return err
	}
	if err := w.inner.Remove(p); err != nil {
		return err
	}
	w.notify(Event{Kind: Removed, Path: p})
	return nil
}

// RemoveAll removes the subtree and reports Removed for every entry
// that was in it, children before parents.
func (w *WatchFS) RemoveAll(name string) error {
	p, err := abs(name)
	if err != nil {
		return err
	}
	removed := w.subtree(p)
	if err := vfsx.RemoveAll(w.inner, p); err != nil {
		return err
	}
	for i := len(removed) - 1; i >= 0; i-- {
		w.notify(Event{Kind: Removed, Path: removed[i]})
	}
	return nil
}

// Rename reports the Removed destination (when the rename replaced
// something), then MovedFrom, then MovedTo.
func (w *WatchFS) Rename(oldname, newname string) error {
	src, err := abs(oldname)
	if err != nil {
		return err
	}
	dst, err := abs(newname)
	if err != nil {
		return err
	}
	dstExisted, _ := vfsx.Exists(w.inner, dst)
	if err := w.inner.Rename(src, dst); err != nil {
		return err
	}
	if dstExisted {
		w.notify(Event{Kind: Removed, Path: dst})
	}
	w.notify(Event{Kind: MovedFrom, Path: src, Destination: dst})
	w.notify(Event{Kind: MovedTo, Path: dst, Source: src})
	return nil
}

// Copy copies src to dst through the wrapped filesystem. Events come
// from a walk of both trees before and after the copy: entries present
// on both sides are Modified, new entries Created, and destination
// entries the copy clobbered Removed.
func (w *WatchFS) Copy(src, dst string) error {
	src, err := abs(src)
	if err != nil {
		return err
	}
	dst, err = abs(dst)
	if err != nil {
		return err
	}
	srcPaths, dstPaths := w.preCopy(src, dst)
	if err := vfsx.Copy(w.inner, src, dst, true); err != nil {
		return err
	}
	w.postCopy(dst, srcPaths, dstPaths)
	return nil
}

// Move is Copy followed by Removed events for the vacated source tree.
func (w *WatchFS) Move(src, dst string) error {
	src, err := abs(src)
	if err != nil {
		return err
	}
	dst, err = abs(dst)
	if err != nil {
		return err
	}
	srcPaths, dstPaths := w.preCopy(src, dst)
	if err := vfsx.Move(w.inner, src, dst, true); err != nil {
		return err
	}
	w.postCopy(dst, srcPaths, dstPaths)
	w.postMove(src, srcPaths)
	return nil
}

// SysPath delegates host-path discovery to the wrapped filesystem.
func (w *WatchFS) SysPath(name string) (string, error) {
	return vfsx.SysPath(w.inner, name)
}

// Close closes the wrapped filesystem and delivers a final Closed
// event to every watcher before clearing the registry.
func (w *WatchFS) Close() error {
	err := w.inner.Close()
	w.reg.Close(w.self)
	return err
}

// subtree lists p and everything under it, parents first. Walk errors
// end the listing early; the caller treats the result as best effort.
func (w *WatchFS) subtree(p string) []string {
	var out []string
	_ = vfsx.Walk(w.inner, p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		out = append(out, path)
		return nil
	})
	return out
}

// preCopy snapshots both trees relative to their roots. The map value
// records whether the entry is a directory.
func (w *WatchFS) preCopy(src, dst string) (srcPaths, dstPaths map[string]bool) {
	return w.relTree(src), w.relTree(dst)
}

func (w *WatchFS) relTree(root string) map[string]bool {
	out := make(map[string]bool)
	_ = vfsx.Walk(w.inner, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel := ""
		if path != root {
			rel = strings.TrimPrefix(path[len(root):], "/")
		}
		out[rel] = d.IsDir()
		return nil
	})
	return out
}

func (w *WatchFS) postCopy(dst string, srcPaths, dstPaths map[string]bool) {
	rels := make([]string, 0, len(srcPaths))
	for rel := range srcPaths {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	for _, rel := range rels {
		path, err := fspath.Join(dst, rel)
		if err != nil {
			continue
		}
		if _, ok := dstPaths[rel]; ok {
			w.notify(Event{Kind: Modified, Path: path, DataChanged: !srcPaths[rel]})
		} else {
			w.notify(Event{Kind: Created, Path: path})
		}
	}
	gone := make([]string, 0, len(dstPaths))
	for rel := range dstPaths {
		if _, ok := srcPaths[rel]; !ok {
			gone = append(gone, rel)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(gone)))
	for _, rel := range gone {
		path, err := fspath.Join(dst, rel)
		if err != nil {
			continue
		}
		if exists, _ := vfsx.Exists(w.inner, path); !exists {
			w.notify(Event{Kind: Removed, Path: path})
		}
	}
}

func (w *WatchFS) postMove(src string, srcPaths map[string]bool) {
	rels := make([]string, 0, len(srcPaths))
	for rel := range srcPaths {
		rels = append(rels, rel)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(rels)))
	for _, rel := range rels {
		path, err := fspath.Join(src, rel)
		if err != nil {
			continue
		}
		w.notify(Event{Kind: Removed, Path: path})
	}
}

// watchedFile reports a Modified event when data written through it is
// flushed out by Close.
type watchedFile struct {
	vfsx.File
	fs       *WatchFS
	path     string
	modified bool
}

func (f *watchedFile) Write(p []byte) (int, error) {
	n, err := f.File.Write(p)
	if n > 0 {
		f.modified = true
	}
	return n, err
}

func (f *watchedFile) Close() error {
	err := f.File.Close()
	if f.modified {
		f.modified = false
		f.fs.notify(Event{Kind: Modified, Path: f.path, DataChanged: true})
	}
	return err
}
