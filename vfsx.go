// Package vfsx defines a capability interface over heterogeneous storage
// backends, so that local disks, remote object stores and in-memory trees
// can be driven through one contract and composed through transparent
// wrapper layers.
//
// The core FS interface is deliberately small. Everything else is either
// a package-level helper with a generic fallback, or an optional extension
// interface discovered by type assertion (the capability-check pattern):
// a filesystem that can do better than the fallback implements the
// extension, and the helper uses it when present.
//
// All paths crossing the FS boundary are forward-slash vfsx paths (see
// package fspath) and all errors are semantic *Error values; backends
// translate host errors with FromOS before they escape.
package vfsx

//go:generate mockgen -destination mockfs/mockfs.go -package mockfs . FS,File,DirEntry,FileInfo,SysPathFS,MkdirAllFS,RemoveAllFS,CopyFS,MoveFS

import (
	"io"
	"io/fs"
	"os"

	"github.com/gwangyi/vfsx/fspath"
)

// File is an open file that supports reading and writing. Filesystems
// that cannot write return files whose Write fails with KindUnsupported.
type File interface {
	fs.File
	io.Writer
}

// DirEntry is a type alias for fs.DirEntry, allowing it to be mocked by
// mockgen.
type DirEntry = fs.DirEntry

// FileInfo is a type alias for fs.FileInfo, allowing it to be mocked by
// mockgen.
type FileInfo = fs.FileInfo

// FS is the capability contract implemented by every backend and every
// wrapper. Implementations must return *Error values exclusively and must
// accept any path form that fspath.Normalize accepts.
type FS interface {
	// Open opens the named file for reading.
	Open(name string) (fs.File, error)

	// OpenFile is the generalized open call. It opens the named file
	// with the specified flag (os.O_RDONLY etc.) and perm if a file is
	// created.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// ReadDir reads the named directory and returns its entries sorted
	// by filename.
	ReadDir(name string) ([]fs.DirEntry, error)

	// Stat returns metadata for the named file or directory.
	Stat(name string) (fs.FileInfo, error)

	// Mkdir creates the named directory. The parent must already exist
	// (KindParentMissing otherwise); an existing directory is
	// KindExists.
	Mkdir(name string, perm fs.FileMode) error

	// Remove removes the named file or empty directory.
	Remove(name string) error

	// Rename moves oldname to newname within the same filesystem.
	Rename(oldname, newname string) error

	// Close releases any resources held by the filesystem. Operations
	// after Close return KindClosed.
	Close() error
}

// SysPathFS is implemented by filesystems whose contents map onto paths
// in the host filesystem. Copy and Move use it to bypass chunked I/O when
// both endpoints live on real storage; native change watching requires it.
type SysPathFS interface {
	FS

	// SysPath returns the host path backing name, or an error of
	// KindUnsupported when name has no host mapping.
	SysPath(name string) (string, error)
}

// MkdirAllFS is implemented by filesystems with an optimized recursive
// directory creation.
type MkdirAllFS interface {
	FS
	MkdirAll(name string, perm fs.FileMode) error
}

// RemoveAllFS is implemented by filesystems with an optimized recursive
// removal.
type RemoveAllFS interface {
	FS
	RemoveAll(name string) error
}

// CopyFS is implemented by filesystems with an optimized same-filesystem
// copy (server-side copy on object stores, reflinks on disk).
type CopyFS interface {
	FS
	Copy(src, dst string) error
}

// MoveFS is implemented by filesystems with an optimized same-filesystem
// move that is not a plain Rename (for example copy+delete batching).
type MoveFS interface {
	FS
	Move(src, dst string) error
}

// Unwrapper is implemented by wrappers to expose the filesystem they
// delegate to. It exists for capabilities that are not path-scoped;
// path-scoped extensions must be re-implemented by each wrapper so that
// path encoding is preserved.
type Unwrapper interface {
	Unwrap() FS
}

// SysPath returns the host path backing name, or a KindUnsupported error
// when fsys has no host mapping.
func SysPath(fsys FS, name string) (string, error) {
	if sfs, ok := fsys.(SysPathFS); ok {
		return sfs.SysPath(name)
	}
	return "", &Error{Kind: KindUnsupported, Op: "syspath", Path: name}
}

// Exists reports whether the named file or directory exists.
func Exists(fsys FS, name string) (bool, error) {
	if _, err := fsys.Stat(name); err != nil {
		if IsKind(err, KindNotFound) || IsKind(err, KindParentMissing) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsDir reports whether the named path exists and is a directory.
func IsDir(fsys FS, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		if IsKind(err, KindNotFound) || IsKind(err, KindParentMissing) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile reports whether the named path exists and is a regular file.
func IsFile(fsys FS, name string) (bool, error) {
	info, err := fsys.Stat(name)
	if err != nil {
		if IsKind(err, KindNotFound) || IsKind(err, KindParentMissing) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// ReadFile reads the named file and returns its contents.
func ReadFile(fsys FS, name string) ([]byte, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, FromOS("read", name, err)
	}
	return data, nil
}

// WriteFile writes data to the named file, creating it if necessary and
// truncating it otherwise.
func WriteFile(fsys FS, name string, data []byte, perm fs.FileMode) error {
	f, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return FromOS("write", name, err)
	}
	return FromOS("write", name, f.Close())
}

// MkdirAll creates the named directory along with any missing parents.
// Existing directories along the way are not an error.
//
// If fsys implements MkdirAllFS the optimized implementation is used;
// otherwise MkdirAll recurses with Stat and Mkdir.
func MkdirAll(fsys FS, name string, perm fs.FileMode) error {
	if mfs, ok := fsys.(MkdirAllFS); ok {
		return mfs.MkdirAll(name, perm)
	}
	name, err := fspath.Normalize(name)
	if err != nil {
		return &Error{Kind: KindPathInvalid, Op: "mkdir", Path: name, Err: err}
	}
	if name == "/" || name == "" {
		return nil
	}
	if info, err := fsys.Stat(name); err == nil {
		if info.IsDir() {
			return nil
		}
		return &Error{Kind: KindInvalid, Op: "mkdir", Path: name}
	}
	if parent := fspath.Dir(name); parent != name && parent != "" {
		if err := MkdirAll(fsys, parent, perm); err != nil {
			return err
		}
	}
	err = fsys.Mkdir(name, perm)
	if IsKind(err, KindExists) {
		return nil
	}
	return err
}

// RemoveAll removes name and any children it contains. It removes
// everything it can but returns the first error it encounters. A missing
// path is not an error.
//
// If fsys implements RemoveAllFS the optimized implementation is used;
// otherwise RemoveAll recurses with ReadDir and Remove.
func RemoveAll(fsys FS, name string) error {
	if rfs, ok := fsys.(RemoveAllFS); ok {
		return rfs.RemoveAll(name)
	}

	// A file or an empty directory goes in one call.
	err := fsys.Remove(name)
	if err == nil || IsKind(err, KindNotFound) || IsKind(err, KindParentMissing) {
		return nil
	}

	entries, readErr := fsys.ReadDir(name)
	if readErr != nil {
		return err // the original Remove error is the useful one
	}
	for _, entry := range entries {
		child, joinErr := fspath.Join(name, entry.Name())
		if joinErr != nil {
			return &Error{Kind: KindPathInvalid, Op: "remove", Path: name, Err: joinErr}
		}
		if err := RemoveAll(fsys, child); err != nil {
			return err
		}
	}
	return fsys.Remove(name)
}

// Walk walks the tree rooted at root in lexical order, calling fn for
// every file and directory including root itself, in the manner of
// fs.WalkDir.
func Walk(fsys FS, root string, fn fs.WalkDirFunc) error {
	info, err := fsys.Stat(root)
	if err != nil {
		err = fn(root, nil, err)
	} else {
		err = walk(fsys, root, fs.FileInfoToDirEntry(info), fn)
	}
	if err == fs.SkipDir || err == fs.SkipAll {
		return nil
	}
	return err
}

func walk(fsys FS, name string, d fs.DirEntry, fn fs.WalkDirFunc) error {
	if err := fn(name, d, nil); err != nil || !d.IsDir() {
		if err == fs.SkipDir && d.IsDir() {
			err = nil
		}
		return err
	}
	entries, err := fsys.ReadDir(name)
	if err != nil {
		if err := fn(name, d, err); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		child, err := fspath.Join(name, entry.Name())
		if err != nil {
			continue
		}
		if err := walk(fsys, child, entry, fn); err != nil {
			if err == fs.SkipDir {
				break
			}
			return err
		}
	}
	return nil
}
