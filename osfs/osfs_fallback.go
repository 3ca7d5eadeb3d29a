//go:build !unix

package osfs

import "github.com/gwangyi/vfsx"

// Chown is not meaningfully supported outside Unix-like systems.
func (o *OSFS) Chown(name, owner, group string) error {
	return &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "chown", Path: name}
}
