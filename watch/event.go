// Package watch implements change notification over vfsx filesystems:
// an event taxonomy, a per-filesystem watcher registry, a blocking
// change iterator, native OS adapters for filesystems backed by host
// paths, and a polling differencer for every other backend.
package watch

import (
	"fmt"
	"strings"

	"github.com/gwangyi/vfsx"
)

// EventKind identifies what happened to a path. Kinds are bits so a
// watcher's filter can combine them.
type EventKind uint32

const (
	// Accessed reports a read that changed nothing but the access time.
	Accessed EventKind = 1 << iota
	// Created reports a new file or directory.
	Created
	// Modified reports changed contents or metadata of an existing
	// entry; Event.DataChanged and Event.MetaChanged tell which.
	Modified
	// Removed reports a deleted file or directory.
	Removed
	// MovedFrom reports the source side of a rename. It is always
	// delivered before the MovedTo of the same logical move.
	MovedFrom
	// MovedTo reports the destination side of a rename.
	MovedTo
	// Closed reports that the watched filesystem was closed. It is the
	// last event a watcher receives.
	Closed
	// Overflow reports that the native adapter lost events; consumers
	// should rescan anything they care about.
	Overflow

	// AllEvents matches every kind and is the default filter.
	AllEvents EventKind = Accessed | Created | Modified | Removed |
		MovedFrom | MovedTo | Closed | Overflow
)

var kindNames = []struct {
	kind EventKind
	name string
}{
	{Accessed, "accessed"},
	{Created, "created"},
	{Modified, "modified"},
	{Removed, "removed"},
	{MovedFrom, "moved_from"},
	{MovedTo, "moved_to"},
	{Closed, "closed"},
	{Overflow, "overflow"},
}

func (k EventKind) String() string {
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// global reports whether the kind addresses the whole filesystem
// rather than a path.
func (k EventKind) global() bool {
	return k&(Closed|Overflow) != 0
}

// Event is an immutable change notification.
type Event struct {
	// Kind is exactly one of the EventKind bits.
	Kind EventKind
	// FS is the filesystem the event originated from.
	FS vfsx.FS
	// Path is the affected path, absolute and normalized. It is empty
	// only for filesystem-wide events (Closed, Overflow).
	Path string
	// Source is the pre-move path of a MovedTo event.
	Source string
	// Destination is the post-move path of a MovedFrom event.
	Destination string
	// DataChanged is set on Modified events whose file contents
	// changed, and on MovedTo events when the moved data replaced an
	// existing file.
	DataChanged bool
	// MetaChanged is set on Modified events whose metadata changed.
	MetaChanged bool
}

func (e Event) String() string {
	switch e.Kind {
	case MovedFrom:
		return fmt.Sprintf("<%s %q to %q>", e.Kind, e.Path, e.Destination)
	case MovedTo:
		return fmt.Sprintf("<%s %q from %q>", e.Kind, e.Path, e.Source)
	case Closed, Overflow:
		return fmt.Sprintf("<%s>", e.Kind)
	default:
		return fmt.Sprintf("<%s %q>", e.Kind, e.Path)
	}
}
