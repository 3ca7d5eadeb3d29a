//go:build windows

package internal

import (
	"syscall"
	"time"
)

// fillFromSys populates defaultFileInfo fields from the Sys() source
// using the Windows syscall.Win32FileAttributeData structure, which
// only carries LastAccessTime.
func fillFromSys(dfi *defaultFileInfo, sys any) {
	if st, ok := sys.(*syscall.Win32FileAttributeData); ok {
		dfi.accessTime = time.Unix(0, st.LastAccessTime.Nanoseconds())
		// ChangeTime is not directly available in Win32FileAttributeData,
		// so we keep the default (ModTime).
	}
}
