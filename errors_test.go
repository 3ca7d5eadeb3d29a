package vfsx_test

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

func TestFromOS(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantKind vfsx.Kind
		wantErr  error
	}{
		{
			name:     "errno not found",
			err:      &fs.PathError{Op: "open", Path: "orig", Err: syscall.ENOENT},
			wantKind: vfsx.KindNotFound,
			wantErr:  syscall.ENOENT,
		},
		{
			name:     "errno not empty",
			err:      syscall.ENOTEMPTY,
			wantKind: vfsx.KindNotEmpty,
			wantErr:  syscall.ENOTEMPTY,
		},
		{
			name:     "errno exists",
			err:      &os.LinkError{Op: "rename", Old: "a", New: "b", Err: syscall.EEXIST},
			wantKind: vfsx.KindExists,
			wantErr:  syscall.EEXIST,
		},
		{
			name:     "errno wrong type",
			err:      syscall.ENOTDIR,
			wantKind: vfsx.KindInvalid,
			wantErr:  syscall.ENOTDIR,
		},
		{
			name:     "errno is a directory",
			err:      syscall.EISDIR,
			wantKind: vfsx.KindInvalid,
			wantErr:  syscall.EISDIR,
		},
		{
			name:     "errno no space",
			err:      syscall.ENOSPC,
			wantKind: vfsx.KindNoSpace,
			wantErr:  syscall.ENOSPC,
		},
		{
			name:     "errno permission",
			err:      &os.SyscallError{Syscall: "unlink", Err: syscall.EACCES},
			wantKind: vfsx.KindPermission,
			wantErr:  syscall.EACCES,
		},
		{
			name:     "errno network down",
			err:      syscall.ENETDOWN,
			wantKind: vfsx.KindRemote,
			wantErr:  syscall.ENETDOWN,
		},
		{
			name:     "errno connection reset",
			err:      syscall.ECONNRESET,
			wantKind: vfsx.KindRemote,
			wantErr:  syscall.ECONNRESET,
		},
		{
			name:     "errno name too long",
			err:      syscall.ENAMETOOLONG,
			wantKind: vfsx.KindPathInvalid,
			wantErr:  syscall.ENAMETOOLONG,
		},
		{
			name:     "errno not supported",
			err:      syscall.ENOSYS,
			wantKind: vfsx.KindUnsupported,
			wantErr:  syscall.ENOSYS,
		},
		{
			name:     "errno busy",
			err:      syscall.EBUSY,
			wantKind: vfsx.KindLocked,
			wantErr:  syscall.EBUSY,
		},
		{
			name:     "errno unmapped",
			err:      syscall.E2BIG,
			wantKind: vfsx.KindFailed,
			wantErr:  syscall.E2BIG,
		},
		{
			name:     "fs sentinel not exist",
			err:      fs.ErrNotExist,
			wantKind: vfsx.KindNotFound,
			wantErr:  fs.ErrNotExist,
		},
		{
			name:     "unsupported sentinel",
			err:      errors.ErrUnsupported,
			wantKind: vfsx.KindUnsupported,
			wantErr:  errors.ErrUnsupported,
		},
		{
			name:     "back reference",
			err:      &fspath.BackRefError{Path: "../x"},
			wantKind: vfsx.KindPathInvalid,
		},
		{
			name:     "unknown error",
			err:      cause,
			wantKind: vfsx.KindFailed,
			wantErr:  cause,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := vfsx.FromOS("op", "file.txt", tt.err)
			var e *vfsx.Error
			if !errors.As(got, &e) {
				t.Fatalf("FromOS() returned %T, want *vfsx.Error", got)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("FromOS().Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Op != "op" {
				t.Errorf("FromOS().Op = %q, want %q", e.Op, "op")
			}
			if e.Path != "file.txt" {
				t.Errorf("FromOS().Path = %q, want %q", e.Path, "file.txt")
			}
			if tt.wantErr != nil && !errors.Is(got, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", got, tt.wantErr)
			}
		})
	}
}

func TestFromOSNil(t *testing.T) {
	if err := vfsx.FromOS("op", "p", nil); err != nil {
		t.Errorf("FromOS(nil) = %v, want nil", err)
	}
}

func TestFromOSPassthrough(t *testing.T) {
	orig := &vfsx.Error{Kind: vfsx.KindNotEmpty, Op: "remove", Path: "/dir"}
	got := vfsx.FromOS("other", "/elsewhere", orig)
	if got != error(orig) {
		t.Errorf("FromOS() rewrapped a semantic error: %v", got)
	}
}

func TestErrnoRoundTrip(t *testing.T) {
	// Kinds with a unique host code must survive a translation round
	// trip unchanged.
	kinds := []vfsx.Kind{
		vfsx.KindPathInvalid,
		vfsx.KindNotFound,
		vfsx.KindInvalid,
		vfsx.KindExists,
		vfsx.KindNotEmpty,
		vfsx.KindPermission,
		vfsx.KindLocked,
		vfsx.KindNoSpace,
		vfsx.KindRemote,
		vfsx.KindUnsupported,
		vfsx.KindTimeout,
		vfsx.KindClosed,
	}
	for _, k := range kinds {
		errno := vfsx.ToErrno(k)
		back := vfsx.FromOS("op", "p", errno)
		if !vfsx.IsKind(back, k) {
			t.Errorf("kind %v: ToErrno = %v, came back as %v", k, errno, vfsx.KindOf(back))
		}
	}
}

func TestToErrnoDefaults(t *testing.T) {
	if got := vfsx.ToErrno(vfsx.KindParentMissing); got != syscall.ENOENT {
		t.Errorf("ToErrno(KindParentMissing) = %v, want ENOENT", got)
	}
	if got := vfsx.ToErrno(vfsx.KindUnspecified); got != syscall.EIO {
		t.Errorf("ToErrno(KindUnspecified) = %v, want EIO", got)
	}
	if got := vfsx.ToErrno(vfsx.KindFailed); got != syscall.EIO {
		t.Errorf("ToErrno(KindFailed) = %v, want EIO", got)
	}
}

func TestErrorSentinels(t *testing.T) {
	tests := []struct {
		kind     vfsx.Kind
		sentinel error
	}{
		{vfsx.KindNotFound, fs.ErrNotExist},
		{vfsx.KindParentMissing, fs.ErrNotExist},
		{vfsx.KindExists, fs.ErrExist},
		{vfsx.KindPermission, fs.ErrPermission},
		{vfsx.KindClosed, fs.ErrClosed},
		{vfsx.KindUnsupported, errors.ErrUnsupported},
	}
	for _, tt := range tests {
		err := &vfsx.Error{Kind: tt.kind, Op: "op", Path: "/p"}
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("kind %v: errors.Is(err, %v) = false", tt.kind, tt.sentinel)
		}
	}
}

func TestErrorWithPath(t *testing.T) {
	orig := &vfsx.Error{Kind: vfsx.KindNotFound, Op: "stat", Path: "/inner/a"}
	rewritten := orig.WithPath("/a")
	if rewritten.Path != "/a" {
		t.Errorf("WithPath().Path = %q, want %q", rewritten.Path, "/a")
	}
	if rewritten.Kind != orig.Kind || rewritten.Op != orig.Op {
		t.Errorf("WithPath() changed more than the path: %+v", rewritten)
	}
	if orig.Path != "/inner/a" {
		t.Errorf("WithPath() mutated the receiver: %q", orig.Path)
	}
}
