//go:build unix

package osfs

import (
	"os/user"
	"strconv"

	"github.com/gwangyi/vfsx"
)

// lookupUID returns the uid associated with the given username.
//
// If the username is numeric, it is taken as a uid directly. The empty
// string means "leave unchanged" and maps to -1.
func lookupUID(username string) (int, error) {
	if username == "" {
		return -1, nil
	}
	if uid, err := strconv.Atoi(username); err == nil {
		return uid, nil
	}
	u, err := user.Lookup(username)
	if err != nil {
		return 0, err
	}
	// Unix always has numeric UIDs, so this conversion cannot fail.
	return strconv.Atoi(u.Uid)
}

// lookupGID returns the gid associated with the given group name.
//
// If the group is numeric, it is taken as a gid directly. The empty
// string means "leave unchanged" and maps to -1.
func lookupGID(group string) (int, error) {
	if group == "" {
		return -1, nil
	}
	if gid, err := strconv.Atoi(group); err == nil {
		return gid, nil
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(g.Gid)
}

// Chown changes the owner and group of the named file, resolving the
// given user and group names to numeric ids. An empty owner or group
// leaves that id unchanged.
func (o *OSFS) Chown(name, owner, group string) error {
	rel, err := o.hostRel("chown", name)
	if err != nil {
		return err
	}
	uid, err := lookupUID(owner)
	if err != nil {
		return &vfsx.Error{Kind: vfsx.KindInvalid, Op: "chown", Path: name, Err: err}
	}
	gid, err := lookupGID(group)
	if err != nil {
		return &vfsx.Error{Kind: vfsx.KindInvalid, Op: "chown", Path: name, Err: err}
	}
	return vfsx.FromOS("chown", name, o.root.Chown(rel, uid, gid))
}
