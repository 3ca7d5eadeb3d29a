// Package osfs implements the vfsx.FS interface over a directory of the
// host operating system. All operations are confined to the designated
// root directory through Go's os.Root, so neither ".." traversal nor a
// symbolic link pointing outside of it can reach anything beyond the
// root.
//
// An OSFS exposes host paths via vfsx.SysPathFS, which makes it eligible
// both for the direct host-to-host fast path in vfsx.Copy and for native
// change notification in package watch.
package osfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
)

// OSFS is a filesystem rooted at a host directory. Construct one with
// New.
type OSFS struct {
	root   *os.Root
	base   string // absolute host path of the root directory
	closed atomic.Bool
}

var (
	_ vfsx.FS          = (*OSFS)(nil)
	_ vfsx.SysPathFS   = (*OSFS)(nil)
	_ vfsx.MkdirAllFS  = (*OSFS)(nil)
	_ vfsx.RemoveAllFS = (*OSFS)(nil)
)

// New opens the host directory dir as a confined filesystem.
func New(dir string) (*OSFS, error) {
	base, err := filepath.Abs(dir)
	if err != nil {
		return nil, vfsx.FromOS("osfs", dir, err)
	}
	r, err := os.OpenRoot(base)
	if err != nil {
		return nil, vfsx.FromOS("osfs", dir, err)
	}
	return &OSFS{root: r, base: base}, nil
}

func (o *OSFS) String() string {
	return "osfs(" + o.base + ")"
}

// hostRel converts a vfsx path to the root-relative form expected by
// os.Root. The root itself maps to ".".
func (o *OSFS) hostRel(op, name string) (string, error) {
	if o.closed.Load() {
		return "", &vfsx.Error{Kind: vfsx.KindClosed, Op: op, Path: name}
	}
	p, err := fspath.Normalize(name)
	if err != nil {
		return "", vfsx.FromOS(op, name, err)
	}
	rel := fspath.Rel(p)
	if rel == "" {
		return ".", nil
	}
	return rel, nil
}

func (o *OSFS) Open(name string) (fs.File, error) {
	rel, err := o.hostRel("open", name)
	if err != nil {
		return nil, err
	}
	f, err := o.root.Open(rel)
	if err != nil {
		return nil, vfsx.FromOS("open", name, err)
	}
	return f, nil
}

func (o *OSFS) OpenFile(name string, flag int, perm fs.FileMode) (vfsx.File, error) {
	rel, err := o.hostRel("open", name)
	if err != nil {
		return nil, err
	}
	f, err := o.root.OpenFile(rel, flag, perm)
	if err != nil {
		err = vfsx.FromOS("open", name, err)
		if flag&os.O_CREATE != 0 && vfsx.IsKind(err, vfsx.KindNotFound) {
			// The target is being created, so the missing piece
			// is a parent directory.
			return nil, &vfsx.Error{Kind: vfsx.KindParentMissing, Op: "open", Path: name, Err: err}
		}
		return nil, err
	}
	return f, nil
}

func (o *OSFS) ReadDir(name string) ([]fs.DirEntry, error) {
	rel, err := o.hostRel("readdir", name)
	if err != nil {
		return nil, err
	}
	f, err := o.root.Open(rel)
	if err != nil {
		return nil, vfsx.FromOS("readdir", name, err)
	}
	defer func() { _ = f.Close() }()
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, vfsx.FromOS("readdir", name, err)
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func (o *OSFS) Stat(name string) (fs.FileInfo, error) {
	rel, err := o.hostRel("stat", name)
	if err != nil {
		return nil, err
	}
	info, err := o.root.Stat(rel)
	if err != nil {
		return nil, vfsx.FromOS("stat", name, err)
	}
	return info, nil
}

func (o *OSFS) Mkdir(name string, perm fs.FileMode) error {
	rel, err := o.hostRel("mkdir", name)
	if err != nil {
		return err
	}
	if err := o.root.Mkdir(rel, perm); err != nil {
		err = vfsx.FromOS("mkdir", name, err)
		if vfsx.IsKind(err, vfsx.KindNotFound) {
			// Mkdir creates name, so a missing path means the
			// parent does not exist.
			return &vfsx.Error{Kind: vfsx.KindParentMissing, Op: "mkdir", Path: name, Err: err}
		}
		return err
	}
	return nil
}

func (o *OSFS) MkdirAll(name string, perm fs.FileMode) error {
	rel, err := o.hostRel("mkdir", name)
	if err != nil {
		return err
	}
	if rel == "." {
		return nil
	}
	return vfsx.FromOS("mkdir", name, o.root.MkdirAll(rel, perm))
}

func (o *OSFS) Remove(name string) error {
	rel, err := o.hostRel("remove", name)
	if err != nil {
		return err
	}
	return vfsx.FromOS("remove", name, o.root.Remove(rel))
}

func (o *OSFS) RemoveAll(name string) error {
	rel, err := o.hostRel("remove", name)
	if err != nil {
		return err
	}
	return vfsx.FromOS("remove", name, o.root.RemoveAll(rel))
}

func (o *OSFS) Rename(oldname, newname string) error {
	oldRel, err := o.hostRel("rename", oldname)
	if err != nil {
		return err
	}
	newRel, err := o.hostRel("rename", newname)
	if err != nil {
		return err
	}
	return vfsx.FromOS("rename", oldname, o.root.Rename(oldRel, newRel))
}

// SysPath reports the host path behind name. The path does not have to
// exist; SysPath is purely lexical once the root is fixed.
func (o *OSFS) SysPath(name string) (string, error) {
	rel, err := o.hostRel("syspath", name)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return o.base, nil
	}
	return filepath.Join(o.base, filepath.FromSlash(rel)), nil
}

// Close releases the root directory handle. Close is idempotent;
// operations after Close fail with KindClosed.
func (o *OSFS) Close() error {
	if o.closed.Swap(true) {
		return nil
	}
	return vfsx.FromOS("close", "/", o.root.Close())
}
