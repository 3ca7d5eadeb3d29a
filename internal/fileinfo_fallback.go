//go:build !linux && !windows

package internal

// fillFromSys is the fallback for operating systems other than Linux
// and Windows. It leaves the ModTime-based defaults in place.
func fillFromSys(dfi *defaultFileInfo, sys any) {
	// No extended info support for this OS yet.
}
