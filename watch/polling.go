package watch

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
	"github.com/gwangyi/vfsx/internal"
)

// DefaultPollInterval is used by NewPolling when no interval is given.
const DefaultPollInterval = 5 * time.Minute

// PollingFS makes any filesystem watchable by combining interception
// with a background differencing loop. Changes made through the
// wrapper are reported immediately by the embedded WatchFS, and the
// same events keep the metadata snapshot warm; the polling pass walks
// the tree on a fixed interval and reports whatever reached the
// storage by another route, with a delay of at most one interval.
type PollingFS struct {
	*WatchFS
	interval time.Duration
	log      *zap.Logger

	mu    sync.Mutex
	cache map[string]entryMeta
	pass  chan struct{} // closed after each full pass, then replaced

	stop chan struct{}
	done chan struct{}
}

var _ Watchable = (*PollingFS)(nil)

// NewPolling wraps inner and starts the polling loop. An interval of
// zero or less means DefaultPollInterval. The first pass reports a
// Created event for every entry already present, which is also how the
// snapshot is primed.
func NewPolling(inner vfsx.FS, interval time.Duration, opts ...Option) *PollingFS {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	o := buildOptions(opts)
	p := &PollingFS{
		WatchFS:  Wrap(inner, opts...),
		interval: interval,
		log:      o.log,
		cache:    make(map[string]entryMeta),
		pass:     make(chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	p.self = p

	// The snapshot is maintained through the same events the watchers
	// see, whether they come from interception or from the pass itself.
	_, _ = p.reg.Add(p.onModify, "/", Created|MovedTo|Modified|Accessed, true)
	_, _ = p.reg.Add(p.onDelete, "/", Removed|MovedFrom, true)

	go p.loop()
	return p
}

// WaitForPoll blocks until the next full polling pass completes. It is
// the synchronization point for callers that need "everything up to
// now has been observed" semantics.
func (p *PollingFS) WaitForPoll(ctx context.Context) error {
	p.mu.Lock()
	ch := p.pass
	p.mu.Unlock()
	select {
	case <-ch:
		return nil
	case <-p.done:
		return &vfsx.Error{Kind: vfsx.KindClosed, Op: "watch"}
	case <-ctx.Done():
		return &vfsx.Error{Kind: vfsx.KindTimeout, Op: "watch", Err: ctx.Err()}
	}
}

// Close stops the polling loop, waits for it to finish, and closes the
// wrapped filesystem, delivering the terminal Closed event.
func (p *PollingFS) Close() error {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	<-p.done
	return p.WatchFS.Close()
}

func (p *PollingFS) loop() {
	defer close(p.done)
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-timer.C:
		}
		p.pollOnce()
		p.signalPass()
		timer.Reset(p.interval)
	}
}

func (p *PollingFS) signalPass() {
	p.mu.Lock()
	close(p.pass)
	p.pass = make(chan struct{})
	p.mu.Unlock()
}

// pollOnce walks every directory, diffing it against the snapshot.
// Directories that fail mid-pass are retried once at the end of the
// same pass before the loop sleeps.
func (p *PollingFS) pollOnce() {
	var failed []string
	queue := []string{"/"}
	for len(queue) > 0 {
		select {
		case <-p.stop:
			return
		default:
		}
		dir := queue[0]
		queue = queue[1:]
		subdirs, err := p.checkDir(dir)
		if err != nil {
			failed = append(failed, dir)
			continue
		}
		queue = append(queue, subdirs...)
	}
	for _, dir := range failed {
		select {
		case <-p.stop:
			return
		default:
		}
		if ok, _ := vfsx.IsDir(p.inner, dir); !ok {
			continue
		}
		if _, err := p.checkDir(dir); err != nil {
			p.log.Warn("polling pass failed for directory",
				zap.String("path", dir), zap.Error(err))
		}
	}
}

// checkDir diffs one directory and its files against the snapshot and
// returns the subdirectories for the outer loop. Data changes of files
// are assumed to leave a metadata trace; file contents are never read.
func (p *PollingFS) checkDir(dir string) ([]string, error) {
	info, err := p.inner.Stat(dir)
	if err != nil {
		return nil, err
	}
	p.diffEntry(dir, metaOf(info))

	entries, err := p.inner.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var subdirs []string
	present := make(map[string]bool, len(entries))
	for _, entry := range entries {
		present[entry.Name()] = true
		path, err := fspath.Join(dir, entry.Name())
		if err != nil {
			continue
		}
		if entry.IsDir() {
			// Subdirectories are diffed by their own checkDir call.
			subdirs = append(subdirs, path)
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		p.diffEntry(path, metaOf(fi))
	}

	// Entries we knew about that are no longer listed were removed
	// out of band.
	for _, name := range p.cachedChildren(dir) {
		if present[name] {
			continue
		}
		path, err := fspath.Join(dir, name)
		if err != nil {
			continue
		}
		p.notify(Event{Kind: Removed, Path: path})
	}
	return subdirs, nil
}

// diffEntry emits at most one event per entry per pass: Created when
// the snapshot has no entry, Modified on any difference beyond the
// access time, Accessed when only the access time moved.
func (p *PollingFS) diffEntry(path string, current entryMeta) {
	p.mu.Lock()
	old, ok := p.cache[path]
	p.mu.Unlock()
	if !ok {
		p.notify(Event{Kind: Created, Path: path})
		return
	}
	accessed, modified := old.diff(current)
	switch {
	case modified:
		p.notify(Event{Kind: Modified, Path: path, DataChanged: !current.isDir})
	case accessed:
		p.notify(Event{Kind: Accessed, Path: path})
	}
}

func (p *PollingFS) cachedChildren(dir string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var names []string
	for path := range p.cache {
		if path != dir && fspath.Dir(path) == dir {
			names = append(names, fspath.Base(path))
		}
	}
	return names
}

// onModify refreshes the snapshot entry for a path that was created,
// changed or moved in. The entry is re-stated rather than derived from
// the event so interception and polling stay consistent.
func (p *PollingFS) onModify(ev Event) {
	info, err := p.inner.Stat(ev.Path)
	if err != nil {
		if vfsx.IsKind(err, vfsx.KindNotFound) || vfsx.IsKind(err, vfsx.KindParentMissing) {
			p.drop(ev.Path)
		}
		return
	}
	p.mu.Lock()
	p.cache[ev.Path] = metaOf(info)
	p.mu.Unlock()
}

// onDelete evicts a removed path and anything cached beneath it.
func (p *PollingFS) onDelete(ev Event) {
	p.drop(ev.Path)
}

func (p *PollingFS) drop(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for cached := range p.cache {
		if fspath.IsPrefix(path, cached) {
			delete(p.cache, cached)
		}
	}
}

// entryMeta is one entry of the metadata snapshot.
type entryMeta struct {
	isDir      bool
	size       int64
	mode       fs.FileMode
	modTime    time.Time
	accessTime time.Time
	changeTime time.Time
	owner      string
	group      string
}

func metaOf(info fs.FileInfo) entryMeta {
	ext := internal.ExtendFileInfo(info)
	return entryMeta{
		isDir:      ext.IsDir(),
		size:       ext.Size(),
		mode:       ext.Mode(),
		modTime:    ext.ModTime(),
		accessTime: ext.AccessTime(),
		changeTime: ext.ChangeTime(),
		owner:      ext.Owner(),
		group:      ext.Group(),
	}
}

// diff compares two observations of the same entry. Any difference
// besides the access time counts as a modification and wins over
// accessed.
func (m entryMeta) diff(n entryMeta) (accessed, modified bool) {
	if m.isDir != n.isDir || m.size != n.size || m.mode != n.mode ||
		!m.modTime.Equal(n.modTime) || !m.changeTime.Equal(n.changeTime) ||
		m.owner != n.owner || m.group != n.group {
		return false, true
	}
	if !m.accessTime.Equal(n.accessTime) {
		return true, false
	}
	return false, false
}
