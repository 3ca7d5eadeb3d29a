//go:build windows

package watch

import (
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const rdcwFilter = windows.FILE_NOTIFY_CHANGE_FILE_NAME |
	windows.FILE_NOTIFY_CHANGE_DIR_NAME |
	windows.FILE_NOTIFY_CHANGE_ATTRIBUTES |
	windows.FILE_NOTIFY_CHANGE_SIZE |
	windows.FILE_NOTIFY_CHANGE_LAST_WRITE |
	windows.FILE_NOTIFY_CHANGE_SECURITY

// completion key used to wake the loop for shutdown.
const rdcwShutdownKey = 0

// One completion port and one pump goroutine serve all watched
// directories in the process, with one outstanding overlapped
// ReadDirectoryChangesW per directory.
var rdcwShared struct {
	mu  sync.Mutex
	mgr *rdcwManager
}

func acquireRDCW(log *zap.Logger) (*rdcwManager, error) {
	rdcwShared.mu.Lock()
	defer rdcwShared.mu.Unlock()
	if rdcwShared.mgr == nil {
		port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 1)
		if err != nil {
			return nil, os.NewSyscallError("CreateIoCompletionPort", err)
		}
		m := &rdcwManager{
			port:    port,
			log:     log,
			watches: make(map[uintptr]*rdcwWatch),
			nextKey: rdcwShutdownKey + 1,
		}
		go m.pump()
		rdcwShared.mgr = m
	}
	rdcwShared.mgr.refs++
	return rdcwShared.mgr, nil
}

func releaseRDCW(m *rdcwManager) {
	rdcwShared.mu.Lock()
	defer rdcwShared.mu.Unlock()
	m.refs--
	if m.refs > 0 {
		return
	}
	_ = windows.PostQueuedCompletionStatus(m.port, 0, rdcwShutdownKey, nil)
	if rdcwShared.mgr == m {
		rdcwShared.mgr = nil
	}
}

type rdcwManager struct {
	port windows.Handle
	log  *zap.Logger
	refs int

	mu      sync.Mutex
	watches map[uintptr]*rdcwWatch
	nextKey uintptr
}

// rdcwWatch is one watched directory: a handle, a single overlapped
// read in flight, and the sink its records are translated into.
type rdcwWatch struct {
	key       uintptr
	dir       string
	handle    windows.Handle
	recursive bool
	sink      func(sysEvent)
	mgrRef    *rdcwManager

	ov  windows.Overlapped
	buf [64 * 1024]byte

	mu         sync.Mutex
	closed     bool
	pendingOld string // RENAMED_OLD_NAME held until the NEW_NAME record
}

// newNativeSub implements the per-platform hook used by nativeFS.
func newNativeSub(root string, recursive bool, log *zap.Logger, sink func(sysEvent)) (*rdcwWatch, error) {
	mgr, err := acquireRDCW(log)
	if err != nil {
		return nil, err
	}
	pathp, err := windows.UTF16PtrFromString(root)
	if err != nil {
		releaseRDCW(mgr)
		return nil, err
	}
	handle, err := windows.CreateFile(pathp,
		windows.FILE_LIST_DIRECTORY,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OVERLAPPED,
		0)
	if err != nil {
		releaseRDCW(mgr)
		return nil, os.NewSyscallError("CreateFile", err)
	}
	w := &rdcwWatch{dir: root, handle: handle, recursive: recursive, sink: sink}

	mgr.mu.Lock()
	w.key = mgr.nextKey
	mgr.nextKey++
	mgr.watches[w.key] = w
	mgr.mu.Unlock()

	if _, err := windows.CreateIoCompletionPort(handle, mgr.port, w.key, 0); err != nil {
		mgr.forget(w)
		_ = windows.CloseHandle(handle)
		releaseRDCW(mgr)
		return nil, os.NewSyscallError("CreateIoCompletionPort", err)
	}
	if err := w.issueRead(); err != nil {
		mgr.forget(w)
		_ = windows.CloseHandle(handle)
		releaseRDCW(mgr)
		return nil, err
	}
	w.mgrRef = mgr
	return w, nil
}

func (m *rdcwManager) forget(w *rdcwWatch) {
	m.mu.Lock()
	delete(m.watches, w.key)
	m.mu.Unlock()
}

func (m *rdcwManager) lookup(key uintptr) *rdcwWatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.watches[key]
}

// pump is the single completion-queue loop shared by every watch.
func (m *rdcwManager) pump() {
	for {
		var n uint32
		var key uintptr
		var ov *windows.Overlapped
		err := windows.GetQueuedCompletionStatus(m.port, &n, &key, &ov, windows.INFINITE)
		if key == rdcwShutdownKey {
			_ = windows.CloseHandle(m.port)
			return
		}
		w := m.lookup(key)
		if w == nil {
			continue
		}
		if w.isClosed() {
			m.forget(w)
			continue
		}
		if err != nil {
			m.log.Warn("directory change read failed",
				zap.String("path", w.dir), zap.Error(err))
			m.forget(w)
			continue
		}
		if n == 0 {
			// The kernel buffer overflowed and records were lost.
			w.sink(sysEvent{kind: Overflow})
		} else {
			w.decode(n)
		}
		if err := w.issueRead(); err != nil {
			m.log.Warn("directory change rearm failed",
				zap.String("path", w.dir), zap.Error(err))
			m.forget(w)
		}
	}
}

func (w *rdcwWatch) issueRead() error {
	err := windows.ReadDirectoryChanges(w.handle, &w.buf[0], uint32(len(w.buf)),
		w.recursive, rdcwFilter, nil, &w.ov, 0)
	if err != nil {
		return os.NewSyscallError("ReadDirectoryChangesW", err)
	}
	return nil
}

// decode walks the FILE_NOTIFY_INFORMATION records of one completed
// read. A rename arrives as an OLD_NAME record followed by a NEW_NAME
// record; the old name is buffered so MovedFrom can carry the
// destination and still precede MovedTo.
func (w *rdcwWatch) decode(n uint32) {
	offset := uint32(0)
	for {
		info := (*windows.FileNotifyInformation)(unsafe.Pointer(&w.buf[offset]))
		nameLen := info.FileNameLength / 2
		name := windows.UTF16ToString((*[windows.MAX_LONG_PATH]uint16)(unsafe.Pointer(&info.FileName))[:nameLen:nameLen])
		path := filepath.Join(w.dir, name)

		switch info.Action {
		case windows.FILE_ACTION_ADDED:
			w.sink(sysEvent{kind: Created, path: path})
		case windows.FILE_ACTION_REMOVED:
			w.sink(sysEvent{kind: Removed, path: path})
		case windows.FILE_ACTION_MODIFIED:
			w.sink(sysEvent{kind: Modified, path: path, dataChanged: true})
		case windows.FILE_ACTION_RENAMED_OLD_NAME:
			w.mu.Lock()
			w.pendingOld = path
			w.mu.Unlock()
		case windows.FILE_ACTION_RENAMED_NEW_NAME:
			w.mu.Lock()
			old := w.pendingOld
			w.pendingOld = ""
			w.mu.Unlock()
			if old != "" {
				w.sink(sysEvent{kind: MovedFrom, path: old, destination: path})
				w.sink(sysEvent{kind: MovedTo, path: path, source: old})
			} else {
				// The old name was outside the watched tree.
				w.sink(sysEvent{kind: Created, path: path})
			}
		}

		if info.NextEntryOffset == 0 {
			break
		}
		offset += info.NextEntryOffset
		if offset >= n {
			break
		}
	}
}

func (w *rdcwWatch) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *rdcwWatch) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	err := windows.CloseHandle(w.handle)
	releaseRDCW(w.mgrRef)
	if err != nil {
		return os.NewSyscallError("CloseHandle", err)
	}
	return nil
}
