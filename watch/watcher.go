package watch

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// Option configures the watch machinery.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger routes internal diagnostics (callback panics, poll pass
// failures, native adapter problems) to log. The default discards them.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Watcher is one registered subscription. A Watcher is created by
// AddWatcher, delivers events matching its path and filter, and is
// terminated by DelWatcher or by the owning filesystem closing. It
// holds no reference to the filesystem it watches.
type Watcher struct {
	callback  func(Event)
	path      string
	filter    EventKind
	recursive bool
	removed   atomic.Bool
}

// Path returns the normalized absolute path the watcher subscribes to.
func (w *Watcher) Path() string { return w.path }

// Filter returns the event kinds the watcher subscribes to.
func (w *Watcher) Filter() EventKind { return w.filter }

// Recursive reports whether the watcher sees the whole subtree rather
// than the path and its direct children.
func (w *Watcher) Recursive() bool { return w.recursive }

// wants reports whether the event falls inside the watcher's
// subscription. Filesystem-wide events always match the path test;
// otherwise a non-recursive watcher only sees its exact path or a
// direct child.
func (w *Watcher) wants(ev Event) bool {
	if w.removed.Load() || ev.Kind&w.filter == 0 {
		return false
	}
	if ev.Kind.global() {
		return true
	}
	if w.recursive {
		return fspath.IsPrefix(w.path, ev.Path)
	}
	return ev.Path == w.path || fspath.Dir(ev.Path) == w.path
}

// Registry holds the watchers of one filesystem, keyed by subscription
// path, and dispatches events to them. All mutation happens under one
// mutex; callbacks run outside it so they may re-enter the registry.
type Registry struct {
	log *zap.Logger

	mu       sync.Mutex
	watchers map[string][]*Watcher
	closed   bool
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{log: o.log, watchers: make(map[string][]*Watcher)}
}

// Add registers callback for events under path. A zero filter
// subscribes to AllEvents. The returned handle is used with Del.
func (r *Registry) Add(callback func(Event), path string, filter EventKind, recursive bool) (*Watcher, error) {
	p, err := fspath.Normalize(path)
	if err != nil {
		return nil, vfsx.FromOS("watch", path, err)
	}
	p = fspath.Abs(p)
	if filter == 0 {
		filter = AllEvents
	}
	w := &Watcher{callback: callback, path: p, filter: filter, recursive: recursive}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, &vfsx.Error{Kind: vfsx.KindClosed, Op: "watch", Path: p}
	}
	r.watchers[p] = append(r.watchers[p], w)
	return w, nil
}

// Del removes the watcher. Deleting a watcher that was already removed
// (or that was never registered here) is a no-op.
func (r *Registry) Del(w *Watcher) {
	if w == nil || w.removed.Swap(true) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.watchers[w.path]
	for i, x := range list {
		if x == w {
			r.watchers[w.path] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(r.watchers[w.path]) == 0 {
		delete(r.watchers, w.path)
	}
}

// Len returns the number of registered watchers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, list := range r.watchers {
		n += len(list)
	}
	return n
}

// Notify delivers the event to every matching watcher before
// returning. For a path-scoped event the candidates are the watchers
// registered at any ancestor prefix of the event path, root first; a
// filesystem-wide event reaches every watcher.
func (r *Registry) Notify(ev Event) {
	for _, w := range r.candidates(ev) {
		r.deliver(w, ev)
	}
}

func (r *Registry) candidates(ev Event) []*Watcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Watcher
	if ev.Kind.global() {
		for _, list := range r.watchers {
			out = append(out, list...)
		}
		return out
	}
	for _, prefix := range fspath.Ancestry(ev.Path) {
		out = append(out, r.watchers[prefix]...)
	}
	return out
}

// deliver runs one callback, recovering panics so one broken consumer
// cannot stall dispatch for the rest.
func (r *Registry) deliver(w *Watcher, ev Event) {
	if !w.wants(ev) {
		return
	}
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("watcher callback panicked",
				zap.Any("panic", p),
				zap.String("path", w.path),
				zap.Stringer("event", ev))
		}
	}()
	w.callback(ev)
}

// Close delivers a terminal Closed event to every still-active watcher
// and empties the registry. Further Add calls fail with KindClosed.
func (r *Registry) Close(fsys vfsx.FS) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	var all []*Watcher
	for _, list := range r.watchers {
		all = append(all, list...)
	}
	r.watchers = make(map[string][]*Watcher)
	r.mu.Unlock()

	ev := Event{Kind: Closed, FS: fsys}
	for _, w := range all {
		r.deliver(w, ev)
		w.removed.Store(true)
	}
}
