package wrapfs_test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/billyfs"
	"github.com/gwangyi/vfsx/wrapfs"
)

// prefixer is a reversible name transform that prefixes every path
// component on the wrapped filesystem.
type prefixer struct{ prefix string }

func (p prefixer) EncodeName(name string) (string, error) {
	return p.prefix + name, nil
}

func (p prefixer) DecodeName(name string) (string, error) {
	if !strings.HasPrefix(name, p.prefix) {
		return "", fmt.Errorf("name %q lacks prefix %q", name, p.prefix)
	}
	return name[len(p.prefix):], nil
}

func newPrefixed(t *testing.T) (wrapped vfsx.FS, inner vfsx.FS) {
	t.Helper()
	inner = billyfs.NewMemory()
	return wrapfs.New(inner, prefixer{prefix: "p_"}), inner
}

func TestNameTransform(t *testing.T) {
	wrapped, inner := newPrefixed(t)

	if err := wrapped.Mkdir("/dir", 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := vfsx.WriteFile(wrapped, "/dir/f.txt", []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// The inner filesystem sees encoded component names.
	got, err := vfsx.ReadFile(inner, "/p_dir/p_f.txt")
	if err != nil {
		t.Fatalf("ReadFile(inner) error = %v", err)
	}
	if string(got) != "data" {
		t.Errorf("inner content = %q, want %q", got, "data")
	}

	// Reads through the wrapper round-trip.
	got, err = vfsx.ReadFile(wrapped, "/dir/f.txt")
	if err != nil {
		t.Fatalf("ReadFile(wrapped) error = %v", err)
	}
	if string(got) != "data" {
		t.Errorf("wrapped content = %q, want %q", got, "data")
	}
}

func TestResultNamesDecoded(t *testing.T) {
	wrapped, _ := newPrefixed(t)
	if err := wrapped.Mkdir("/dir", 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := vfsx.WriteFile(wrapped, "/dir/f.txt", []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	entries, err := wrapped.ReadDir("/dir")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "f.txt" {
		t.Errorf("ReadDir() entries = %v, want one entry named f.txt", entries)
	}

	info, err := wrapped.Stat("/dir/f.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Name() != "f.txt" {
		t.Errorf("Stat().Name() = %q, want %q", info.Name(), "f.txt")
	}
}

func TestErrorPathDecoded(t *testing.T) {
	wrapped, _ := newPrefixed(t)

	_, err := wrapped.Stat("/missing")
	var e *vfsx.Error
	if !errors.As(err, &e) {
		t.Fatalf("Stat() error = %T, want *vfsx.Error", err)
	}
	if e.Kind != vfsx.KindNotFound {
		t.Errorf("Stat() kind = %v, want KindNotFound", e.Kind)
	}
	if e.Path != "/missing" {
		t.Errorf("Stat() path = %q, want %q", e.Path, "/missing")
	}
}

func TestPassThrough(t *testing.T) {
	inner := billyfs.NewMemory()
	wrapped := wrapfs.New(inner, nil)

	if err := vfsx.WriteFile(wrapped, "/f.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := vfsx.ReadFile(inner, "/f.txt")
	if err != nil {
		t.Fatalf("ReadFile(inner) error = %v", err)
	}
	if string(got) != "x" {
		t.Errorf("inner content = %q, want %q", got, "x")
	}
	if wrapped.Unwrap() != vfsx.FS(inner) {
		t.Error("Unwrap() does not return the wrapped filesystem")
	}
}

// rejectAppend is a flag transform that refuses O_APPEND opens.
type rejectAppend struct{}

func (rejectAppend) AdjustFlags(flag int) (int, error) {
	if flag&os.O_APPEND != 0 {
		return 0, &vfsx.Error{Kind: vfsx.KindUnsupported, Op: "open"}
	}
	return flag, nil
}

func TestFlagTransform(t *testing.T) {
	inner := billyfs.NewMemory()
	wrapped := wrapfs.New(inner, rejectAppend{})

	if err := vfsx.WriteFile(wrapped, "/f.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	_, err := wrapped.OpenFile("/f.txt", os.O_WRONLY|os.O_APPEND, 0o644)
	if !vfsx.IsKind(err, vfsx.KindUnsupported) {
		t.Errorf("OpenFile(O_APPEND) error = %v, want KindUnsupported", err)
	}
}

// recordOpens wraps opened files and records the wrapper-side names.
type recordOpens struct{ names []string }

func (r *recordOpens) WrapFile(name string, flag int, f vfsx.File) vfsx.File {
	r.names = append(r.names, name)
	return f
}

func TestFileTransform(t *testing.T) {
	inner := billyfs.NewMemory()
	rec := &recordOpens{}
	wrapped := wrapfs.New(inner, rec)

	if err := vfsx.WriteFile(wrapped, "/f.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := wrapped.Open("/f.txt"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := []string{"/f.txt", "/f.txt"}
	if len(rec.names) != len(want) {
		t.Fatalf("WrapFile seen names = %v, want %v", rec.names, want)
	}
	for i := range want {
		if rec.names[i] != want[i] {
			t.Errorf("WrapFile name[%d] = %q, want %q", i, rec.names[i], want[i])
		}
	}
}

func TestCapabilitiesDelegated(t *testing.T) {
	wrapped, inner := newPrefixed(t)

	if err := vfsx.MkdirAll(wrapped, "/a/b/c", 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if ok, err := vfsx.IsDir(inner, "/p_a/p_b/p_c"); err != nil || !ok {
		t.Errorf("IsDir(inner) = %v, %v, want true, nil", ok, err)
	}

	if err := vfsx.WriteFile(wrapped, "/a/f.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := vfsx.Copy(wrapped, "/a/f.txt", "/a/g.txt", false); err != nil {
		t.Fatalf("Copy() error = %v", err)
	}
	got, err := vfsx.ReadFile(inner, "/p_a/p_g.txt")
	if err != nil {
		t.Fatalf("ReadFile(inner) error = %v", err)
	}
	if string(got) != "x" {
		t.Errorf("inner content = %q, want %q", got, "x")
	}

	if err := vfsx.RemoveAll(wrapped, "/a"); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}
	if exists, _ := vfsx.Exists(inner, "/p_a"); exists {
		t.Error("inner directory still exists after RemoveAll()")
	}
}
