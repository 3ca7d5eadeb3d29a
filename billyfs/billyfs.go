// Package billyfs adapts a go-billy filesystem to the vfsx.FS
// contract. Its main use is NewMemory, an in-memory filesystem for
// tests and scratch storage, but any billy.Filesystem can be adapted.
package billyfs

import (
	"io"
	"io/fs"
	"slices"
	"strings"
	"sync/atomic"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// BillyFS wraps a billy.Filesystem as a vfsx.FS. Billy filesystems
// have no host-path mapping here, so BillyFS does not implement
// vfsx.SysPathFS.
type BillyFS struct {
	b      billy.Filesystem
	closed atomic.Bool
}

var (
	_ vfsx.FS          = (*BillyFS)(nil)
	_ vfsx.MkdirAllFS  = (*BillyFS)(nil)
	_ vfsx.RemoveAllFS = (*BillyFS)(nil)
)

// New adapts b.
func New(b billy.Filesystem) *BillyFS {
	return &BillyFS{b: b}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() *BillyFS {
	return New(memfs.New())
}

func (b *BillyFS) String() string {
	return "billyfs(" + b.b.Root() + ")"
}

func (b *BillyFS) path(op, name string) (string, error) {
	if b.closed.Load() {
		return "", &vfsx.Error{Kind: vfsx.KindClosed, Op: op, Path: name}
	}
	p, err := fspath.Normalize(name)
	if err != nil {
		return "", vfsx.FromOS(op, name, err)
	}
	return fspath.Abs(p), nil
}

func (b *BillyFS) Open(name string) (fs.File, error) {
	p, err := b.path("open", name)
	if err != nil {
		return nil, err
	}
	f, err := b.b.Open(p)
	if err != nil {
		return nil, vfsx.FromOS("open", p, err)
	}
	return &billyFile{File: f, fs: b, path: p}, nil
}

func (b *BillyFS) OpenFile(name string, flag int, perm fs.FileMode) (vfsx.File, error) {
	p, err := b.path("open", name)
	if err != nil {
		return nil, err
	}
	f, err := b.b.OpenFile(p, flag, perm)
	if err != nil {
		return nil, vfsx.FromOS("open", p, err)
	}
	return &billyFile{File: f, fs: b, path: p}, nil
}

// ReadDir reads the named directory. Billy backends disagree on whether
// listing a missing path is an error, so the existence check happens here.
func (b *BillyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := b.path("readdir", name)
	if err != nil {
		return nil, err
	}
	info, err := b.b.Stat(p)
	if err != nil {
		return nil, vfsx.FromOS("readdir", p, err)
	}
	if !info.IsDir() {
		return nil, &vfsx.Error{Kind: vfsx.KindInvalid, Op: "readdir", Path: p}
	}
	infos, err := b.b.ReadDir(p)
	if err != nil {
		return nil, vfsx.FromOS("readdir", p, err)
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (b *BillyFS) Stat(name string) (fs.FileInfo, error) {
	p, err := b.path("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := b.b.Stat(p)
	if err != nil {
		return nil, vfsx.FromOS("stat", p, err)
	}
	return info, nil
}

// Mkdir creates a single directory. Billy only exposes MkdirAll, so
// the single-level contract (existing directory fails with KindExists,
// missing parent with KindParentMissing) is enforced here.
func (b *BillyFS) Mkdir(name string, perm fs.FileMode) error {
	p, err := b.path("mkdir", name)
	if err != nil {
		return err
	}
	if _, err := b.b.Stat(p); err == nil {
		return &vfsx.Error{Kind: vfsx.KindExists, Op: "mkdir", Path: p}
	}
	if parent := fspath.Dir(p); parent != "/" {
		info, err := b.b.Stat(parent)
		if err != nil {
			return &vfsx.Error{Kind: vfsx.KindParentMissing, Op: "mkdir", Path: p}
		}
		if !info.IsDir() {
			return &vfsx.Error{Kind: vfsx.KindInvalid, Op: "mkdir", Path: parent}
		}
	}
	return vfsx.FromOS("mkdir", p, b.b.MkdirAll(p, perm))
}

func (b *BillyFS) MkdirAll(name string, perm fs.FileMode) error {
	p, err := b.path("mkdir", name)
	if err != nil {
		return err
	}
	return vfsx.FromOS("mkdir", p, b.b.MkdirAll(p, perm))
}

func (b *BillyFS) Remove(name string) error {
	p, err := b.path("remove", name)
	if err != nil {
		return err
	}
	return vfsx.FromOS("remove", p, b.b.Remove(p))
}

func (b *BillyFS) RemoveAll(name string) error {
	p, err := b.path("remove", name)
	if err != nil {
		return err
	}
	return vfsx.FromOS("remove", p, util.RemoveAll(b.b, p))
}

func (b *BillyFS) Rename(oldname, newname string) error {
	oldp, err := b.path("rename", oldname)
	if err != nil {
		return err
	}
	newp, err := b.path("rename", newname)
	if err != nil {
		return err
	}
	return vfsx.FromOS("rename", oldp, b.b.Rename(oldp, newp))
}

// Close marks the filesystem closed. Billy filesystems hold no
// resources of their own.
func (b *BillyFS) Close() error {
	b.closed.Store(true)
	return nil
}

// billyFile bridges billy.File (which has no Stat method) to vfsx.File
// by statting through the owning filesystem.
type billyFile struct {
	billy.File
	fs   *BillyFS
	path string
}

var _ io.ReaderAt = (*billyFile)(nil)

func (f *billyFile) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.path)
}

func (f *billyFile) ReadAt(p []byte, off int64) (int, error) {
	if ra, ok := f.File.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}
	return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "read", Path: f.path}
}
