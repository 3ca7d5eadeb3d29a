package watch

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// sysEvent is a change observed by a platform backend, in host-path
// space. The native filesystem wrapper translates it back to vfsx
// paths before delivery.
type sysEvent struct {
	kind        EventKind
	path        string
	source      string
	destination string
	dataChanged bool
	metaChanged bool
}

// NewNative returns a natively watched view of fsys. fsys must map
// onto host paths (vfsx.SysPathFS); otherwise, and on platforms with
// no native integration, the error is KindUnsupported and the caller
// should fall back to polling.
func NewNative(fsys vfsx.FS, opts ...Option) (Watchable, error) {
	base, err := vfsx.SysPath(fsys, "/")
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	n := &nativeFS{
		FS:   fsys,
		base: filepath.Clean(base),
		reg:  NewRegistry(opts...),
		log:  o.log,
		subs: make(map[*Watcher]io.Closer),
	}
	return n, nil
}

// EnsureWatchable returns a watchable view of fsys: fsys itself when
// it already supports watching, a native adapter when the filesystem
// is backed by host paths, and a polling wrapper otherwise. interval
// only applies to the polling fallback.
func EnsureWatchable(fsys vfsx.FS, interval time.Duration, opts ...Option) Watchable {
	if w, ok := fsys.(Watchable); ok {
		return w
	}
	if n, err := NewNative(fsys, opts...); err == nil {
		return n
	}
	return NewPolling(fsys, interval, opts...)
}

// nativeFS attaches one OS-level subscription per watcher and delivers
// its events to that watcher alone, so overlapping watchers never see
// duplicates from each other's subscriptions.
type nativeFS struct {
	vfsx.FS
	base string
	reg  *Registry
	log  *zap.Logger

	mu   sync.Mutex
	subs map[*Watcher]io.Closer
}

var _ Watchable = (*nativeFS)(nil)

func (n *nativeFS) hostPath(p string) string {
	rel := fspath.Rel(p)
	if rel == "" {
		return n.base
	}
	return filepath.Join(n.base, filepath.FromSlash(rel))
}

func (n *nativeFS) vfsPath(host string) string {
	rel, err := filepath.Rel(n.base, host)
	if err != nil || rel == "." {
		return "/"
	}
	if strings.HasPrefix(rel, "..") {
		return "/"
	}
	return "/" + filepath.ToSlash(rel)
}

// AddWatcher installs an OS-level watch rooted at path (or at its
// parent directory when path is a file) and registers the watcher.
func (n *nativeFS) AddWatcher(callback func(Event), path string, filter EventKind, recursive bool) (*Watcher, error) {
	w, err := n.reg.Add(callback, path, filter, recursive)
	if err != nil {
		return nil, err
	}
	root := w.path
	isDir, _ := vfsx.IsDir(n.FS, root)
	if !isDir {
		root = fspath.Dir(root)
	}
	sub, err := newNativeSub(n.hostPath(root), recursive && isDir, n.log,
		func(se sysEvent) { n.deliver(w, se) })
	if err != nil {
		n.reg.Del(w)
		return nil, vfsx.FromOS("watch", w.path, err)
	}
	n.mu.Lock()
	n.subs[w] = sub
	n.mu.Unlock()
	return w, nil
}

// DelWatcher tears down the watcher's OS-level subscription.
func (n *nativeFS) DelWatcher(w *Watcher) error {
	n.reg.Del(w)
	n.mu.Lock()
	sub := n.subs[w]
	delete(n.subs, w)
	n.mu.Unlock()
	if sub == nil {
		return nil
	}
	return sub.Close()
}

func (n *nativeFS) deliver(w *Watcher, se sysEvent) {
	ev := Event{
		Kind:        se.kind,
		FS:          n,
		DataChanged: se.dataChanged,
		MetaChanged: se.metaChanged,
	}
	if se.path != "" {
		ev.Path = n.vfsPath(se.path)
	}
	if se.source != "" {
		ev.Source = n.vfsPath(se.source)
	}
	if se.destination != "" {
		ev.Destination = n.vfsPath(se.destination)
	}
	n.reg.deliver(w, ev)
}

// Close tears down every subscription, delivers Closed to all
// watchers, then closes the underlying filesystem.
func (n *nativeFS) Close() error {
	n.mu.Lock()
	subs := n.subs
	n.subs = make(map[*Watcher]io.Closer)
	n.mu.Unlock()
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			n.log.Warn("native subscription close failed", zap.Error(err))
		}
	}
	n.reg.Close(n)
	return n.FS.Close()
}

// Unwrap exposes the watched filesystem.
func (n *nativeFS) Unwrap() vfsx.FS { return n.FS }
