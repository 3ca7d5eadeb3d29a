// Package fspath implements the path algebra shared by every vfsx
// filesystem and wrapper.
//
// A vfsx path is a forward-slash separated sequence of non-empty
// components, optionally absolute (leading '/'). Paths are plain value
// strings and carry no reference to any filesystem. This package is
// broadly similar to the standard "path" package but additionally
// accepts backslash separators, treats the empty string as the root,
// and refuses to let ".." escape the string being resolved.
package fspath

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBackRef is the sentinel matched by errors.Is for any back-reference
// underflow reported by Normalize or Join.
var ErrBackRef = errors.New("too many backrefs in path")

// BackRefError reports a ".." component that attempted to pop past the
// root of the path being resolved. This is a hard error regardless of
// whether the offending path was absolute or relative.
type BackRefError struct {
	// Path is the original, unmodified input.
	Path string
}

func (e *BackRefError) Error() string {
	return fmt.Sprintf("too many backrefs in path %q", e.Path)
}

func (e *BackRefError) Unwrap() error { return ErrBackRef }

// clean resolves p into its components. It accepts both separators,
// collapses duplicate separators, drops "." components and resolves ".."
// against the in-progress component stack.
func clean(p string) (comps []string, abs bool, err error) {
	if p == "" {
		return nil, false, nil
	}
	abs = p[0] == '/' || p[0] == '\\'
	for comp := range strings.SplitSeq(strings.ReplaceAll(p, `\`, "/"), "/") {
		switch comp {
		case "", ".":
		case "..":
			if len(comps) == 0 {
				return nil, false, &BackRefError{Path: p}
			}
			comps = comps[:len(comps)-1]
		default:
			comps = append(comps, comp)
		}
	}
	return comps, abs, nil
}

// Normalize returns the canonical form of p: forward slashes only, no
// duplicate separators, no "." components and all ".." components
// resolved. A ".." that would pop past the first component returns a
// *BackRefError.
//
// The empty string, "/" and any path whose components cancel out all
// normalize to "/", the root identity. Normalize is idempotent.
func Normalize(p string) (string, error) {
	comps, abs, err := clean(p)
	if err != nil {
		return "", err
	}
	if len(comps) == 0 {
		return "/", nil
	}
	if abs {
		return "/" + strings.Join(comps, "/"), nil
	}
	return strings.Join(comps, "/"), nil
}

// Join joins any number of path fragments into a single normalized path.
// An absolute fragment discards everything joined before it. ".."
// components resolve against the joined string and return a
// *BackRefError when they would pop past its first component. When no
// component survives — no fragments, only empty ones, or everything
// cancelled out — the result is "/", the same root identity Normalize
// produces.
//
//	Join("foo", "bar", "baz") == "foo/bar/baz"
//	Join("foo/bar", "../baz") == "foo/baz"
//	Join("foo/bar", "/baz")   == "/baz"
func Join(parts ...string) (string, error) {
	abs := false
	kept := parts[:0:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		if p[0] == '/' || p[0] == '\\' {
			kept = kept[:0]
			abs = true
		}
		kept = append(kept, p)
	}
	comps, _, err := clean(strings.Join(kept, "/"))
	if err != nil {
		return "", &BackRefError{Path: strings.Join(parts, "/")}
	}
	if len(comps) == 0 {
		return "/", nil
	}
	joined := strings.Join(comps, "/")
	if abs {
		return "/" + joined, nil
	}
	return joined, nil
}

// Split splits p into a (dir, base) pair where base is the final
// component and dir is everything before it. The path is expected to be
// normalized already; Split is purely lexical.
//
//	Split("foo/bar/baz") == ("foo/bar", "baz")
//	Split("/foo")        == ("/", "foo")
//	Split("foo")         == ("", "foo")
func Split(p string) (dir, base string) {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "", p
	}
	if i == 0 {
		return "/", p[1:]
	}
	return p[:i], p[i+1:]
}

// Dir returns the parent directory of p, the first element of Split.
// The parent of the root is the root itself.
func Dir(p string) string {
	dir, _ := Split(p)
	if dir == "" && IsAbs(p) {
		return "/"
	}
	return dir
}

// Base returns the final component of p, the second element of Split.
func Base(p string) string {
	_, base := Split(p)
	return base
}

// IsAbs reports whether p is absolute.
func IsAbs(p string) bool {
	return p != "" && (p[0] == '/' || p[0] == '\\')
}

// Abs converts p to an absolute path. Filesystems have no concept of a
// current directory, so this simply ensures a leading slash.
func Abs(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

// Rel converts p to a relative path, the inverse of Abs.
func Rel(p string) string {
	return strings.TrimLeft(p, "/")
}

// IsPrefix reports whether b is a, or is contained under a. A trailing
// slash on a is ignored; the root is a prefix of every absolute path.
//
//	IsPrefix("a/b", "a/b/c") == true
//	IsPrefix("a/bc", "a/b")  == false
func IsPrefix(a, b string) bool {
	a = strings.TrimRight(a, "/")
	if a == "" {
		return true
	}
	return b == a || strings.HasPrefix(b, a+"/")
}

// Segments returns the individual components of the normalized path p.
// If limit > 0, at most limit splits are performed and the final element
// retains any embedded separators. The root path has no components.
func Segments(p string, limit int) []string {
	p = Rel(p)
	if p == "" {
		return nil
	}
	if limit > 0 {
		return strings.SplitN(p, "/", limit+1)
	}
	return strings.Split(p, "/")
}

// Ancestry returns every ancestor prefix of the normalized absolute path
// p, ordered root-first and ending with p itself. It is the dispatch
// order for path-scoped watcher notification.
//
//	Ancestry("/a/b") == []string{"/", "/a", "/a/b"}
func Ancestry(p string) []string {
	p = Abs(p)
	prefixes := []string{"/"}
	for i := 1; i < len(p); i++ {
		if p[i] == '/' {
			prefixes = append(prefixes, p[:i])
		}
	}
	if p != "/" {
		prefixes = append(prefixes, p)
	}
	return prefixes
}
