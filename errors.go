package vfsx

import (
	"errors"
	"io/fs"
)

// Kind classifies a filesystem error independently of the backend that
// produced it. Every error crossing the FS boundary carries exactly one
// Kind.
type Kind uint8

const (
	// KindUnspecified is the catch-all base classification.
	KindUnspecified Kind = iota
	// KindPathInvalid reports a malformed or unrepresentable path.
	KindPathInvalid
	// KindNotFound reports a missing file or directory.
	KindNotFound
	// KindInvalid reports a resource of the wrong type for the
	// operation, such as a file where a directory is required.
	KindInvalid
	// KindExists reports a destination that already exists.
	KindExists
	// KindNotEmpty reports a directory that could not be removed
	// because it still has entries.
	KindNotEmpty
	// KindParentMissing reports a missing parent directory.
	KindParentMissing
	// KindPermission reports a permission failure.
	KindPermission
	// KindLocked reports a resource that is in use elsewhere.
	KindLocked
	// KindNoSpace reports exhausted storage space.
	KindNoSpace
	// KindRemote reports a failed or interrupted remote connection.
	KindRemote
	// KindUnsupported reports an operation the filesystem cannot
	// perform structurally, as opposed to one that was tried and failed.
	KindUnsupported
	// KindTimeout reports an operation that ran out of time.
	KindTimeout
	// KindClosed reports use of a closed filesystem or file.
	KindClosed
	// KindFailed is the catch-all for operation-scoped failures.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindPathInvalid:
		return "path invalid"
	case KindNotFound:
		return "resource not found"
	case KindInvalid:
		return "resource invalid"
	case KindExists:
		return "destination exists"
	case KindNotEmpty:
		return "directory not empty"
	case KindParentMissing:
		return "parent directory missing"
	case KindPermission:
		return "permission denied"
	case KindLocked:
		return "resource locked"
	case KindNoSpace:
		return "storage space exhausted"
	case KindRemote:
		return "remote connection failed"
	case KindUnsupported:
		return "not supported"
	case KindTimeout:
		return "operation timed out"
	case KindClosed:
		return "closed"
	case KindFailed:
		return "operation failed"
	default:
		return "unspecified error"
	}
}

// Error is the semantic error value shared by every vfsx filesystem. It
// pairs a Kind with the failing operation, the path as seen by the layer
// that raised it, and the underlying host error, if any.
//
// An Error is immutable once constructed: wrapping layers that need to
// present a different path build a new value with WithPath rather than
// mutating in place.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is maps well-known kinds onto the standard library sentinels, so that
// errors.Is(err, fs.ErrNotExist) and friends keep working across the
// vfsx boundary.
func (e *Error) Is(target error) bool {
	switch target {
	case fs.ErrNotExist:
		return e.Kind == KindNotFound || e.Kind == KindParentMissing
	case fs.ErrExist:
		return e.Kind == KindExists
	case fs.ErrPermission:
		return e.Kind == KindPermission
	case fs.ErrClosed:
		return e.Kind == KindClosed
	case fs.ErrInvalid:
		return e.Kind == KindInvalid || e.Kind == KindPathInvalid
	case errors.ErrUnsupported:
		return e.Kind == KindUnsupported
	}
	return false
}

// WithPath returns a copy of e carrying the given path. The receiver is
// left untouched.
func (e *Error) WithPath(path string) *Error {
	clone := *e
	clone.Path = path
	return &clone
}

// KindOf extracts the Kind from err. Errors that did not originate from a
// vfsx filesystem classify as KindUnspecified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnspecified
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
