package wrapfs

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gwangyi/vfsx"
)

// ReadOnly wraps a filesystem so that every mutating operation fails
// with KindUnsupported before reaching the wrapped filesystem. Reads
// pass through unchanged.
func ReadOnly(inner vfsx.FS) vfsx.FS {
	ro := &readOnlyFS{}
	ro.WrapFS = New(inner, ro)
	return ro
}

type readOnlyFS struct {
	*WrapFS
}

var (
	_ FlagTransform = (*readOnlyFS)(nil)
	_ FileTransform = (*readOnlyFS)(nil)
)

func (r *readOnlyFS) String() string {
	return fmt.Sprintf("readonly(%v)", r.Unwrap())
}

// AdjustFlags rejects any open that could mutate the file.
func (r *readOnlyFS) AdjustFlags(flag int) (int, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "open"}
	}
	return flag, nil
}

// WrapFile makes write failures explicit even if a file handle leaks
// through with write support.
func (r *readOnlyFS) WrapFile(name string, flag int, f vfsx.File) vfsx.File {
	return ReadOnlyFile{File: f, Name: name}
}

func (r *readOnlyFS) Mkdir(name string, perm fs.FileMode) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "mkdir", Path: name}
}

func (r *readOnlyFS) MkdirAll(name string, perm fs.FileMode) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "mkdir", Path: name}
}

func (r *readOnlyFS) Remove(name string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "remove", Path: name}
}

func (r *readOnlyFS) RemoveAll(name string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "remove", Path: name}
}

func (r *readOnlyFS) Rename(oldname, newname string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "rename", Path: oldname}
}

func (r *readOnlyFS) Copy(src, dst string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "copy", Path: dst}
}

func (r *readOnlyFS) Move(src, dst string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "move", Path: dst}
}

// ReadOnlyFile wraps an open file, explicitly failing any write with
// KindUnsupported while passing reads (and ReadAt/Seek where the
// underlying file supports them) through.
type ReadOnlyFile struct {
	vfsx.File
	Name string
}

// Write fails with KindUnsupported; ReadOnlyFile does not support writing.
func (f ReadOnlyFile) Write(d []byte) (int, error) {
	return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "write", Path: f.Name}
}

// ReadAt implements io.ReaderAt if the underlying file supports it.
func (f ReadOnlyFile) ReadAt(p []byte, off int64) (int, error) {
	if ra, ok := f.File.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}
	return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "read", Path: f.Name}
}

// Seek implements io.Seeker if the underlying file supports it.
func (f ReadOnlyFile) Seek(offset int64, whence int) (int64, error) {
	if s, ok := f.File.(io.Seeker); ok {
		return s.Seek(offset, whence)
	}
	return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "seek", Path: f.Name}
}
