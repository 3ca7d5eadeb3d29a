//go:build linux

package internal

import (
	"os/user"
	"strconv"
	"syscall"
	"time"
)

// fillFromSys populates defaultFileInfo fields from the Sys() source
// using the Linux syscall.Stat_t structure: Uid and Gid are resolved
// to Owner and Group, Atim becomes AccessTime and Ctim ChangeTime.
func fillFromSys(dfi *defaultFileInfo, sys any) {
	if st, ok := sys.(*syscall.Stat_t); ok {
		// Try to lookup owner name, fall back to numeric ID.
		uidStr := strconv.Itoa(int(st.Uid))
		if u, err := user.LookupId(uidStr); err == nil {
			dfi.owner = u.Username
		} else {
			dfi.owner = uidStr
		}

		// Try to lookup group name, fall back to numeric ID.
		gidStr := strconv.Itoa(int(st.Gid))
		if g, err := user.LookupGroupId(gidStr); err == nil {
			dfi.group = g.Name
		} else {
			dfi.group = gidStr
		}

		dfi.accessTime = time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
		dfi.changeTime = time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
}
