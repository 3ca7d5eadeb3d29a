// Package subfs scopes a filesystem to a subdirectory of another
// filesystem. Every path given to the scoped view is joined onto the
// fixed root before delegation, so the view cannot name anything
// outside its subtree.
package subfs

import (
	"fmt"
	"io/fs"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/fspath"
	"github.com/gwangyi/vfsx/wrapfs"
)

// SubFS presents a subtree of a parent filesystem as a filesystem of
// its own. The zero value is not usable; construct one with New.
type SubFS struct {
	*wrapfs.WrapFS
	parent vfsx.FS
	root   string
}

var _ vfsx.FS = (*SubFS)(nil)

// New returns a view of parent rooted at dir. The directory does not
// have to exist yet; operations on a missing root fail the same way
// they would on the parent. Closing the view does not close the
// parent.
func New(parent vfsx.FS, dir string) (*SubFS, error) {
	root, err := fspath.Normalize(dir)
	if err != nil {
		return nil, &vfsx.Error{Kind: vfsx.KindPathInvalid, Op: "subfs", Path: dir, Err: err}
	}
	sub := &SubFS{parent: parent, root: root}
	sub.WrapFS = wrapfs.New(parent, sub)
	return sub, nil
}

// Parent returns the wrapped filesystem.
func (s *SubFS) Parent() vfsx.FS { return s.parent }

// Root returns the directory on the parent that this view is scoped
// to, as a normalized absolute path.
func (s *SubFS) Root() string { return s.root }

// EncodePath maps a path in the scoped view to the parent path.
// Relative paths resolve against the view's root, and ".." cannot
// climb above it: normalization underflows first and the error
// surfaces as KindPathInvalid.
func (s *SubFS) EncodePath(name string) (string, error) {
	p, err := fspath.Normalize(name)
	if err != nil {
		return "", err
	}
	return fspath.Join(s.root, fspath.Rel(p))
}

// DecodePath maps a parent path back into the scoped view, for error
// reporting and wrapped results. Paths outside the subtree are left
// alone; errors about the machinery around the root should not be
// rewritten into nonsense.
func (s *SubFS) DecodePath(name string) (string, error) {
	if s.root == "/" {
		return name, nil
	}
	if name == s.root {
		return "/", nil
	}
	if fspath.IsPrefix(s.root, name) {
		return name[len(s.root):], nil
	}
	return name, nil
}

func (s *SubFS) String() string {
	return fmt.Sprintf("subfs(%v, %q)", s.parent, s.root)
}

// Close detaches the view without closing the parent.
func (s *SubFS) Close() error { return nil }

// CloseParent closes the view and the parent filesystem beneath it.
func (s *SubFS) CloseParent() error { return s.parent.Close() }

// Unwrap exposes the parent for capability discovery.
func (s *SubFS) Unwrap() vfsx.FS { return s.parent }

var _ fs.FS = (*SubFS)(nil)
