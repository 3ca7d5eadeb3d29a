// Package wrapfs implements a transforming wrapper: a filesystem that
// rewrites paths, open flags and file handles on the way in and
// rewrites result names and error paths on the way out, delegating
// everything else to the filesystem it wraps.
//
// A wrapper is a WrapFS paired with a hook value. The hooks are
// optional interfaces discovered by type assertion; a hook the value
// does not implement falls back to identity. Wrappers stack: a WrapFS
// is itself a vfsx.FS and implements the extension interfaces by
// encoding and delegating, so capabilities of the innermost backend
// stay reachable through any number of layers.
package wrapfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// NameTransform rewrites individual path components. EncodeName maps a
// component of a wrapper-side path to the wrapped filesystem's naming
// scheme; DecodeName is its inverse. Whole-path encoding applies the
// hooks component-wise.
type NameTransform interface {
	EncodeName(name string) (string, error)
	DecodeName(name string) (string, error)
}

// PathTransform rewrites whole paths, overriding the component-wise
// derivation from NameTransform. Scoping wrappers use this to join
// paths onto a fixed root.
type PathTransform interface {
	EncodePath(path string) (string, error)
	DecodePath(path string) (string, error)
}

// FlagTransform maps an externally requested open flag to the flag
// used against the wrapped filesystem. Returning an error rejects the
// open before it reaches the wrapped filesystem; a transform that
// cannot support a mode structurally returns KindUnsupported.
type FlagTransform interface {
	AdjustFlags(flag int) (int, error)
}

// FileTransform post-processes opened file handles, for example to
// decorate reads and writes with compression or encryption. The name
// is the wrapper-side path the file was opened as.
type FileTransform interface {
	WrapFile(name string, flag int, f vfsx.File) vfsx.File
}

// WrapFS delegates every operation to an inner filesystem through a
// set of transform hooks. Construct one with New; the zero value is
// not usable.
type WrapFS struct {
	inner vfsx.FS
	hooks any
}

var (
	_ vfsx.FS          = (*WrapFS)(nil)
	_ vfsx.SysPathFS   = (*WrapFS)(nil)
	_ vfsx.MkdirAllFS  = (*WrapFS)(nil)
	_ vfsx.RemoveAllFS = (*WrapFS)(nil)
	_ vfsx.CopyFS      = (*WrapFS)(nil)
	_ vfsx.MoveFS      = (*WrapFS)(nil)
	_ vfsx.Unwrapper   = (*WrapFS)(nil)
)

// New wraps inner with the given hook value. hooks may be nil for a
// pure pass-through, or any value implementing one or more of
// NameTransform, PathTransform, FlagTransform and FileTransform.
func New(inner vfsx.FS, hooks any) *WrapFS {
	return &WrapFS{inner: inner, hooks: hooks}
}

// Unwrap returns the wrapped filesystem.
func (w *WrapFS) Unwrap() vfsx.FS { return w.inner }

func (w *WrapFS) String() string {
	if s, ok := w.hooks.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("wrap(%v)", w.inner)
}

// encode maps a wrapper-side path to the inner filesystem's path.
func (w *WrapFS) encode(op, name string) (string, error) {
	if pt, ok := w.hooks.(PathTransform); ok {
		p, err := pt.EncodePath(name)
		if err != nil {
			return "", vfsx.FromOS(op, name, err)
		}
		return p, nil
	}
	p, err := fspath.Normalize(name)
	if err != nil {
		return "", vfsx.FromOS(op, name, err)
	}
	nt, ok := w.hooks.(NameTransform)
	if !ok {
		return p, nil
	}
	segs := fspath.Segments(p, 0)
	for i, seg := range segs {
		enc, err := nt.EncodeName(seg)
		if err != nil {
			return "", vfsx.FromOS(op, name, err)
		}
		segs[i] = enc
	}
	return "/" + strings.Join(segs, "/"), nil
}

// decode maps an inner path back to the wrapper's naming scheme. It is
// used on results and on error paths; when a component cannot be
// decoded the inner path is kept rather than losing the error.
func (w *WrapFS) decode(name string) string {
	if pt, ok := w.hooks.(PathTransform); ok {
		if p, err := pt.DecodePath(name); err == nil {
			return p
		}
		return name
	}
	nt, ok := w.hooks.(NameTransform)
	if !ok {
		return name
	}
	segs := fspath.Segments(name, 0)
	for i, seg := range segs {
		dec, err := nt.DecodeName(seg)
		if err != nil {
			return name
		}
		segs[i] = dec
	}
	p := strings.Join(segs, "/")
	if fspath.IsAbs(name) {
		return "/" + p
	}
	return p
}

// decodeName decodes a single result component such as a directory
// entry name.
func (w *WrapFS) decodeName(name string) string {
	if nt, ok := w.hooks.(NameTransform); ok {
		if dec, err := nt.DecodeName(name); err == nil {
			return dec
		}
	}
	return name
}

// rewrite decodes the path embedded in a semantic error so the caller
// sees the path as it named it. The error's kind and cause are never
// touched; anything that is not a semantic error passes through
// unchanged.
func (w *WrapFS) rewrite(err error) error {
	if err == nil {
		return nil
	}
	var e *vfsx.Error
	if !errors.As(err, &e) || e.Path == "" {
		return err
	}
	if dec := w.decode(e.Path); dec != e.Path {
		return e.WithPath(dec)
	}
	return err
}

func (w *WrapFS) adjust(flag int) (int, error) {
	if ft, ok := w.hooks.(FlagTransform); ok {
		return ft.AdjustFlags(flag)
	}
	return flag, nil
}

func (w *WrapFS) wrapFile(name string, flag int, f vfsx.File) vfsx.File {
	if ft, ok := w.hooks.(FileTransform); ok {
		return ft.WrapFile(name, flag, f)
	}
	return f
}

// Open opens the named file for reading. It routes through OpenFile so
// the flag and file hooks always apply.
func (w *WrapFS) Open(name string) (fs.File, error) {
	return w.OpenFile(name, os.O_RDONLY, 0)
}

func (w *WrapFS) OpenFile(name string, flag int, perm fs.FileMode) (vfsx.File, error) {
	flag, err := w.adjust(flag)
	if err != nil {
		return nil, w.rewrite(err)
	}
	p, err := w.encode("open", name)
	if err != nil {
		return nil, err
	}
	f, err := w.inner.OpenFile(p, flag, perm)
	if err != nil {
		return nil, w.rewrite(err)
	}
	return w.wrapFile(name, flag, f), nil
}

func (w *WrapFS) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := w.encode("readdir", name)
	if err != nil {
		return nil, err
	}
	entries, err := w.inner.ReadDir(p)
	if err != nil {
		return nil, w.rewrite(err)
	}
	if _, ok := w.hooks.(NameTransform); !ok {
		return entries, nil
	}
	decoded := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		decoded[i] = dirEntry{DirEntry: entry, name: w.decodeName(entry.Name())}
	}
	return decoded, nil
}

func (w *WrapFS) Stat(name string) (fs.FileInfo, error) {
	p, err := w.encode("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := w.inner.Stat(p)
	if err != nil {
		return nil, w.rewrite(err)
	}
	if _, ok := w.hooks.(NameTransform); !ok {
		return info, nil
	}
	return fileInfo{FileInfo: info, name: w.decodeName(info.Name())}, nil
}

func (w *WrapFS) Mkdir(name string, perm fs.FileMode) error {
	p, err := w.encode("mkdir", name)
	if err != nil {
		return err
	}
	return w.rewrite(w.inner.Mkdir(p, perm))
}

func (w *WrapFS) Remove(name string) error {
	p, err := w.encode("remove", name)
	if err != nil {
		return err
	}
	return w.rewrite(w.inner.Remove(p))
}

func (w *WrapFS) Rename(oldname, newname string) error {
	oldp, err := w.encode("rename", oldname)
	if err != nil {
		return err
	}
	newp, err := w.encode("rename", newname)
	if err != nil {
		return err
	}
	return w.rewrite(w.inner.Rename(oldp, newp))
}

// Close closes the wrapped filesystem. Wrappers own their inner
// filesystem exclusively; a wrapper that must not close its parent
// overrides Close.
func (w *WrapFS) Close() error {
	return w.inner.Close()
}

// SysPath reports the host path behind name when the wrapped
// filesystem exposes one.
func (w *WrapFS) SysPath(name string) (string, error) {
	p, err := w.encode("syspath", name)
	if err != nil {
		return "", err
	}
	sp, err := vfsx.SysPath(w.inner, p)
	if err != nil {
		return "", w.rewrite(err)
	}
	return sp, nil
}

func (w *WrapFS) MkdirAll(name string, perm fs.FileMode) error {
	p, err := w.encode("mkdir", name)
	if err != nil {
		return err
	}
	return w.rewrite(vfsx.MkdirAll(w.inner, p, perm))
}

func (w *WrapFS) RemoveAll(name string) error {
	p, err := w.encode("remove", name)
	if err != nil {
		return err
	}
	return w.rewrite(vfsx.RemoveAll(w.inner, p))
}

func (w *WrapFS) Copy(src, dst string) error {
	srcp, err := w.encode("copy", src)
	if err != nil {
		return err
	}
	dstp, err := w.encode("copy", dst)
	if err != nil {
		return err
	}
	return w.rewrite(vfsx.Copy(w.inner, srcp, dstp, true))
}

func (w *WrapFS) Move(src, dst string) error {
	srcp, err := w.encode("move", src)
	if err != nil {
		return err
	}
	dstp, err := w.encode("move", dst)
	if err != nil {
		return err
	}
	return w.rewrite(vfsx.Move(w.inner, srcp, dstp, true))
}

// dirEntry renames a directory entry back to the wrapper's naming
// scheme while keeping the wrapped entry's metadata.
type dirEntry struct {
	fs.DirEntry
	name string
}

func (d dirEntry) Name() string { return d.name }

type fileInfo struct {
	fs.FileInfo
	name string
}

func (i fileInfo) Name() string { return i.name }
