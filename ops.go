package vfsx

import (
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/gwangyi/vfsx/fspath"
)

// Filter narrows the result of ListDir. The zero value keeps everything.
type Filter struct {
	// Wildcard keeps only names matching the pattern, using the syntax
	// of path.Match. Empty means no name filtering.
	Wildcard string
	// DirsOnly keeps only directories.
	DirsOnly bool
	// FilesOnly keeps only non-directories.
	FilesOnly bool
}

func (f Filter) keep(entry fs.DirEntry) bool {
	if f.DirsOnly && !entry.IsDir() {
		return false
	}
	if f.FilesOnly && entry.IsDir() {
		return false
	}
	if f.Wildcard != "" {
		if ok, err := path.Match(f.Wildcard, entry.Name()); err != nil || !ok {
			return false
		}
	}
	return true
}

// ListDir returns the names of the entries in the named directory that
// pass the filter, sorted by filename.
func ListDir(fsys FS, name string, filter Filter) ([]string, error) {
	entries, err := fsys.ReadDir(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if filter.keep(entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Copy copies the file src to dst within the same filesystem. Unless
// overwrite is set, an existing destination is a KindExists error;
// copying a directory is a KindInvalid error (use CopyDir).
//
// If fsys implements CopyFS the optimized implementation is used. When
// both endpoints expose a host path via SysPathFS, the copy runs directly
// on host files, bypassing chunked I/O through the filesystem layer.
func Copy(fsys FS, src, dst string, overwrite bool) error {
	if err := checkCopy(fsys, src, dst, overwrite); err != nil {
		return err
	}
	if cfs, ok := fsys.(CopyFS); ok {
		return cfs.Copy(src, dst)
	}
	if err := sysCopy(fsys, src, dst); err == nil || !IsKind(err, KindUnsupported) {
		return err
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	perm := fs.FileMode(0o666)
	if info, err := in.Stat(); err == nil {
		perm = info.Mode().Perm()
	}
	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return FromOS("copy", dst, err)
	}
	return FromOS("copy", dst, out.Close())
}

func checkCopy(fsys FS, src, dst string, overwrite bool) error {
	if info, err := fsys.Stat(src); err != nil {
		return err
	} else if info.IsDir() {
		return &Error{Kind: KindInvalid, Op: "copy", Path: src}
	}
	if !overwrite {
		if exists, err := Exists(fsys, dst); err != nil {
			return err
		} else if exists {
			return &Error{Kind: KindExists, Op: "copy", Path: dst}
		}
	}
	return nil
}

// sysCopy copies through host paths when both endpoints have one.
func sysCopy(fsys FS, src, dst string) error {
	spSrc, err := SysPath(fsys, src)
	if err != nil {
		return err
	}
	spDst, err := SysPath(fsys, dst)
	if err != nil {
		return err
	}
	in, err := os.Open(spSrc)
	if err != nil {
		return FromOS("copy", src, err)
	}
	defer func() { _ = in.Close() }()
	out, err := os.Create(spDst)
	if err != nil {
		return FromOS("copy", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return FromOS("copy", dst, err)
	}
	return FromOS("copy", dst, out.Close())
}

// Move moves the file src to dst within the same filesystem. Unless
// overwrite is set, an existing destination is a KindExists error.
//
// If fsys implements MoveFS the optimized implementation is used.
// Otherwise Move prefers Rename and falls back to copy-and-remove, which
// is not atomic.
func Move(fsys FS, src, dst string, overwrite bool) error {
	if !overwrite {
		if exists, err := Exists(fsys, dst); err != nil {
			return err
		} else if exists {
			return &Error{Kind: KindExists, Op: "move", Path: dst}
		}
	}
	if mfs, ok := fsys.(MoveFS); ok {
		return mfs.Move(src, dst)
	}
	if err := fsys.Rename(src, dst); err == nil || !IsKind(err, KindUnsupported) {
		return err
	}
	if err := Copy(fsys, src, dst, overwrite); err != nil {
		return err
	}
	return fsys.Remove(src)
}

// CopyDir recursively copies the directory src to dst within the same
// filesystem. Unless overwrite is set, an existing destination is a
// KindExists error.
func CopyDir(fsys FS, src, dst string, overwrite bool) error {
	if info, err := fsys.Stat(src); err != nil {
		return err
	} else if !info.IsDir() {
		return &Error{Kind: KindInvalid, Op: "copydir", Path: src}
	}
	if !overwrite {
		if exists, err := Exists(fsys, dst); err != nil {
			return err
		} else if exists {
			return &Error{Kind: KindExists, Op: "copydir", Path: dst}
		}
	}
	if err := MkdirAll(fsys, dst, 0o777); err != nil {
		return err
	}
	entries, err := fsys.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		childSrc, err := fspath.Join(src, entry.Name())
		if err != nil {
			return &Error{Kind: KindPathInvalid, Op: "copydir", Path: src, Err: err}
		}
		childDst, err := fspath.Join(dst, entry.Name())
		if err != nil {
			return &Error{Kind: KindPathInvalid, Op: "copydir", Path: dst, Err: err}
		}
		if entry.IsDir() {
			err = CopyDir(fsys, childSrc, childDst, true)
		} else {
			err = Copy(fsys, childSrc, childDst, true)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MoveDir recursively moves the directory src to dst within the same
// filesystem, preferring Rename and falling back to CopyDir plus
// RemoveAll.
func MoveDir(fsys FS, src, dst string, overwrite bool) error {
	if info, err := fsys.Stat(src); err != nil {
		return err
	} else if !info.IsDir() {
		return &Error{Kind: KindInvalid, Op: "movedir", Path: src}
	}
	if !overwrite {
		if exists, err := Exists(fsys, dst); err != nil {
			return err
		} else if exists {
			return &Error{Kind: KindExists, Op: "movedir", Path: dst}
		}
	}
	if err := fsys.Rename(src, dst); err == nil || !IsKind(err, KindUnsupported) {
		return err
	}
	if err := CopyDir(fsys, src, dst, overwrite); err != nil {
		return err
	}
	return RemoveAll(fsys, src)
}
