//go:build linux

package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Events requested for every watched directory. Close-write is left
// out: IN_MODIFY already fires per write and mapping both would double
// up Modified events.
const inotifyMask = unix.IN_ACCESS | unix.IN_ATTRIB | unix.IN_MODIFY |
	unix.IN_CREATE | unix.IN_DELETE | unix.IN_DELETE_SELF |
	unix.IN_MOVED_FROM | unix.IN_MOVED_TO | unix.IN_MOVE_SELF

// One inotify instance and reader goroutine serve the whole process.
// It is created lazily on the first subscription and torn down when
// the last one is released.
var inotifyShared struct {
	mu  sync.Mutex
	mgr *inotifyManager
}

func acquireInotify(log *zap.Logger) (*inotifyManager, error) {
	inotifyShared.mu.Lock()
	defer inotifyShared.mu.Unlock()
	if inotifyShared.mgr == nil {
		m, err := newInotifyManager(log)
		if err != nil {
			return nil, err
		}
		inotifyShared.mgr = m
	}
	inotifyShared.mgr.refs++
	return inotifyShared.mgr, nil
}

func releaseInotify(m *inotifyManager) {
	inotifyShared.mu.Lock()
	defer inotifyShared.mu.Unlock()
	m.refs--
	if m.refs > 0 {
		return
	}
	m.shutdown()
	if inotifyShared.mgr == m {
		inotifyShared.mgr = nil
	}
}

type inotifyWatch struct {
	wd   int32
	path string
	subs []*inotifySub
}

type pendingMove struct {
	path string
	subs []*inotifySub
}

type inotifyManager struct {
	fd   int
	pipe [2]int // wakes the reader for shutdown
	log  *zap.Logger
	refs int

	mu      sync.Mutex
	byWd    map[int32]*inotifyWatch
	byPath  map[string]*inotifyWatch
	pending map[uint32]pendingMove // unmatched IN_MOVED_FROM by cookie
}

func newInotifyManager(log *zap.Logger) (*inotifyManager, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, os.NewSyscallError("inotify_init1", err)
	}
	m := &inotifyManager{
		fd:      fd,
		log:     log,
		byWd:    make(map[int32]*inotifyWatch),
		byPath:  make(map[string]*inotifyWatch),
		pending: make(map[uint32]pendingMove),
	}
	if err := unix.Pipe2(m.pipe[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("pipe2", err)
	}
	go m.read()
	return m, nil
}

// shutdown wakes the reader and lets it close the descriptors; it must
// not wait for the goroutine, which may be the caller.
func (m *inotifyManager) shutdown() {
	_, _ = unix.Write(m.pipe[1], []byte{0})
}

func (m *inotifyManager) addWatch(path string, sub *inotifySub) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.byPath[path]; ok {
		for _, s := range w.subs {
			if s == sub {
				return nil
			}
		}
		w.subs = append(w.subs, sub)
		return nil
	}
	wd, err := unix.InotifyAddWatch(m.fd, path, inotifyMask)
	if err != nil {
		return os.NewSyscallError("inotify_add_watch", err)
	}
	w := &inotifyWatch{wd: int32(wd), path: path, subs: []*inotifySub{sub}}
	m.byWd[w.wd] = w
	m.byPath[path] = w
	return nil
}

func (m *inotifyManager) removeSub(sub *inotifySub, dirs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range dirs {
		w, ok := m.byPath[path]
		if !ok {
			continue
		}
		for i, s := range w.subs {
			if s == sub {
				w.subs = append(w.subs[:i:i], w.subs[i+1:]...)
				break
			}
		}
		if len(w.subs) == 0 {
			_, _ = unix.InotifyRmWatch(m.fd, uint32(w.wd))
			delete(m.byWd, w.wd)
			delete(m.byPath, path)
		}
	}
}

// dropWatch forgets a watch the kernel has already discarded
// (IN_IGNORED after a delete or unmount).
func (m *inotifyManager) dropWatch(wd int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.byWd[wd]; ok {
		delete(m.byWd, wd)
		delete(m.byPath, w.path)
	}
}

func (m *inotifyManager) read() {
	buf := make([]byte, 64*1024)
	fds := []unix.PollFd{
		{Fd: int32(m.fd), Events: unix.POLLIN},
		{Fd: int32(m.pipe[0]), Events: unix.POLLIN},
	}
	defer func() {
		_ = unix.Close(m.fd)
		_ = unix.Close(m.pipe[0])
		_ = unix.Close(m.pipe[1])
	}()
	for {
		if _, err := unix.Poll(fds, -1); err != nil {
			if err == unix.EINTR {
				continue
			}
			m.log.Error("inotify poll failed", zap.Error(err))
			return
		}
		if fds[1].Revents != 0 {
			return
		}
		n, err := unix.Read(m.fd, buf)
		if err == unix.EAGAIN {
			continue
		}
		if err != nil || n <= 0 {
			return
		}
		m.dispatch(buf[:n])
		m.flushPending()
	}
}

// dispatch parses one batch of raw events and routes each to the subs
// attached to the originating watch.
func (m *inotifyManager) dispatch(buf []byte) {
	for offset := 0; offset+unix.SizeofInotifyEvent <= len(buf); {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		name := ""
		if raw.Len > 0 {
			b := buf[offset+unix.SizeofInotifyEvent : offset+unix.SizeofInotifyEvent+int(raw.Len)]
			name = strings.TrimRight(string(b), "\x00")
		}
		offset += unix.SizeofInotifyEvent + int(raw.Len)
		m.handle(raw.Wd, raw.Mask, raw.Cookie, name)
	}
}

func (m *inotifyManager) handle(wd int32, mask, cookie uint32, name string) {
	if mask&unix.IN_Q_OVERFLOW != 0 {
		for _, sub := range m.allSubs() {
			sub.emit(sysEvent{kind: Overflow})
		}
		return
	}

	m.mu.Lock()
	w, ok := m.byWd[wd]
	var subs []*inotifySub
	var path string
	if ok {
		subs = append([]*inotifySub(nil), w.subs...)
		path = w.path
		if name != "" {
			path = filepath.Join(w.path, name)
		}
	}
	m.mu.Unlock()

	if mask&unix.IN_IGNORED != 0 {
		m.dropWatch(wd)
		return
	}
	if !ok {
		return
	}

	isDir := mask&unix.IN_ISDIR != 0
	switch {
	case mask&unix.IN_CREATE != 0:
		for _, sub := range subs {
			sub.emit(sysEvent{kind: Created, path: path})
		}
		if isDir {
			m.attachFresh(subs, path)
		}
	case mask&unix.IN_DELETE != 0:
		for _, sub := range subs {
			sub.emit(sysEvent{kind: Removed, path: path})
		}
	case mask&unix.IN_DELETE_SELF != 0:
		// The watched directory itself is gone. Directories inside a
		// recursive subscription are already reported through their
		// parent's IN_DELETE, so only the subscription root counts;
		// the IN_IGNORED that follows cleans up the watch.
		for _, sub := range subs {
			if sub.root == w.path {
				sub.emit(sysEvent{kind: Removed, path: path})
			}
		}
	case mask&unix.IN_MOVE_SELF != 0:
		for _, sub := range subs {
			if sub.root == w.path {
				sub.emit(sysEvent{kind: MovedFrom, path: path})
			}
		}
	case mask&unix.IN_MOVED_FROM != 0:
		// Held until the paired IN_MOVED_TO arrives so MovedFrom can
		// name its destination and still be delivered first.
		m.mu.Lock()
		m.pending[cookie] = pendingMove{path: path, subs: subs}
		m.mu.Unlock()
	case mask&unix.IN_MOVED_TO != 0:
		m.mu.Lock()
		from, paired := m.pending[cookie]
		delete(m.pending, cookie)
		m.mu.Unlock()
		if paired {
			for _, sub := range from.subs {
				sub.emit(sysEvent{kind: MovedFrom, path: from.path, destination: path})
			}
			for _, sub := range subs {
				sub.emit(sysEvent{kind: MovedTo, path: path, source: from.path})
			}
		} else {
			for _, sub := range subs {
				sub.emit(sysEvent{kind: MovedTo, path: path})
			}
		}
		if isDir {
			m.attachFresh(subs, path)
		}
	case mask&unix.IN_MODIFY != 0:
		for _, sub := range subs {
			sub.emit(sysEvent{kind: Modified, path: path, dataChanged: true})
		}
	case mask&unix.IN_ATTRIB != 0:
		for _, sub := range subs {
			sub.emit(sysEvent{kind: Modified, path: path, metaChanged: true})
		}
	case mask&unix.IN_ACCESS != 0:
		for _, sub := range subs {
			sub.emit(sysEvent{kind: Accessed, path: path})
		}
	}
}

// attachFresh installs watches on a directory that appeared inside a
// recursively watched tree. Anything created in it before the watch
// lands would be missed, so its contents are reported as Created here;
// entries whose own IN_CREATE was already queued show up twice, and a
// duplicate is preferable to a silent drop.
func (m *inotifyManager) attachFresh(subs []*inotifySub, dir string) {
	for _, sub := range subs {
		if !sub.recursive {
			continue
		}
		if err := sub.addTree(dir, true); err != nil {
			m.log.Warn("recursive watch attach failed",
				zap.String("path", dir), zap.Error(err))
		}
	}
}

// flushPending reports moves whose destination never showed up in the
// same batch: the entry left the watched tree.
func (m *inotifyManager) flushPending() {
	m.mu.Lock()
	pending := m.pending
	m.pending = make(map[uint32]pendingMove)
	m.mu.Unlock()
	for _, mv := range pending {
		for _, sub := range mv.subs {
			sub.emit(sysEvent{kind: MovedFrom, path: mv.path})
		}
	}
}

func (m *inotifyManager) allSubs() []*inotifySub {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[*inotifySub]bool)
	var out []*inotifySub
	for _, w := range m.byWd {
		for _, sub := range w.subs {
			if !seen[sub] {
				seen[sub] = true
				out = append(out, sub)
			}
		}
	}
	return out
}

// inotifySub is one subscription: a root directory, optionally its
// whole subtree, feeding one watcher's sink.
type inotifySub struct {
	mgr       *inotifyManager
	root      string
	recursive bool
	sink      func(sysEvent)

	mu     sync.Mutex
	closed bool
	dirs   map[string]struct{}
}

// newNativeSub implements the per-platform hook used by nativeFS.
func newNativeSub(root string, recursive bool, log *zap.Logger, sink func(sysEvent)) (*inotifySub, error) {
	mgr, err := acquireInotify(log)
	if err != nil {
		return nil, err
	}
	sub := &inotifySub{
		mgr:       mgr,
		root:      root,
		recursive: recursive,
		sink:      sink,
		dirs:      make(map[string]struct{}),
	}
	if err := sub.addTree(root, false); err != nil {
		sub.detach()
		return nil, err
	}
	return sub, nil
}

// addTree watches dir and, for recursive subscriptions, every
// directory below it. With emit set, visited entries are reported as
// Created.
func (s *inotifySub) addTree(dir string, emit bool) error {
	if err := s.mgr.addWatch(dir, s); err != nil {
		return err
	}
	s.mu.Lock()
	s.dirs[dir] = struct{}{}
	s.mu.Unlock()
	if !s.recursive {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		// The directory may have vanished between the event and the
		// scan; its removal event is on the way.
		return nil
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if emit {
			s.emit(sysEvent{kind: Created, path: child})
		}
		if entry.IsDir() {
			if err := s.addTree(child, emit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *inotifySub) emit(se sysEvent) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if !closed {
		s.sink(se)
	}
}

func (s *inotifySub) detach() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	dirs := make([]string, 0, len(s.dirs))
	for dir := range s.dirs {
		dirs = append(dirs, dir)
	}
	s.dirs = nil
	s.mu.Unlock()
	s.mgr.removeSub(s, dirs)
	releaseInotify(s.mgr)
}

func (s *inotifySub) Close() error {
	s.detach()
	return nil
}
