package vfsx

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/gwangyi/vfsx/fspath"
)

func underlyingError(err error) error {
	switch e := err.(type) {
	case *fs.PathError:
		return e.Err
	case *os.LinkError:
		return e.Err
	case *os.SyscallError:
		return e.Err
	}
	return err
}

// FromOS converts a host error into a semantic *Error for the given
// operation and path. Errors that are already semantic pass through
// unchanged. A nil err returns nil.
//
// Classification is deterministic: the failing errno is matched against a
// fixed priority table, first match wins, and any unmapped code falls back
// to KindFailed. Host errors that never surface an errno (pure io/fs
// sentinels) are recognized as well.
func FromOS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var semantic *Error
	if errors.As(err, &semantic) {
		return semantic
	}
	return &Error{Kind: classify(err), Op: op, Path: path, Err: underlyingError(err)}
}

func classify(err error) Kind {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errnoKind(errno)
	}
	var bre *fspath.BackRefError
	switch {
	case errors.As(err, &bre):
		return KindPathInvalid
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrExist):
		return KindExists
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, fs.ErrClosed):
		return KindClosed
	case errors.Is(err, fs.ErrInvalid):
		return KindInvalid
	case errors.Is(err, errors.ErrUnsupported):
		return KindUnsupported
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	return KindFailed
}

// errnoKind is the host-to-semantic half of the translation table. The
// case order is the documented evaluation order; it only matters when a
// platform aliases two codes onto one value.
func errnoKind(errno syscall.Errno) Kind {
	switch errno {
	case syscall.ENOENT:
		return KindNotFound
	case syscall.ENOTEMPTY:
		return KindNotEmpty
	case syscall.EEXIST:
		return KindExists
	case syscall.ENOTDIR, syscall.EISDIR, syscall.EINVAL:
		return KindInvalid
	case syscall.ENOSPC, syscall.EDQUOT:
		return KindNoSpace
	case syscall.EACCES, syscall.EPERM:
		return KindPermission
	case syscall.ENETDOWN, syscall.ENETUNREACH, syscall.EHOSTUNREACH:
		return KindRemote
	case syscall.ECONNRESET, syscall.ECONNABORTED, syscall.EPIPE:
		return KindRemote
	case syscall.ENAMETOOLONG:
		return KindPathInvalid
	case syscall.ENOSYS, syscall.ENOTSUP:
		return KindUnsupported
	case syscall.ETIMEDOUT:
		return KindTimeout
	case syscall.EBUSY, syscall.ETXTBSY:
		return KindLocked
	case syscall.EBADF:
		return KindClosed
	}
	return KindFailed
}

// ToErrno is the semantic-to-host half of the translation table, used at
// process boundaries that must present host-style codes. Kinds with a
// unique host code round-trip through errnoKind; the rest map to the
// documented default EIO.
func ToErrno(k Kind) syscall.Errno {
	switch k {
	case KindPathInvalid:
		return syscall.ENAMETOOLONG
	case KindNotFound, KindParentMissing:
		return syscall.ENOENT
	case KindInvalid:
		return syscall.EINVAL
	case KindExists:
		return syscall.EEXIST
	case KindNotEmpty:
		return syscall.ENOTEMPTY
	case KindPermission:
		return syscall.EACCES
	case KindLocked:
		return syscall.EBUSY
	case KindNoSpace:
		return syscall.ENOSPC
	case KindRemote:
		return syscall.ENETDOWN
	case KindUnsupported:
		return syscall.ENOSYS
	case KindTimeout:
		return syscall.ETIMEDOUT
	case KindClosed:
		return syscall.EBADF
	}
	return syscall.EIO
}
