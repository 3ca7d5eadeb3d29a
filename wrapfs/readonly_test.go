package wrapfs_test

import (
	"io"
	"os"
	"testing"

	"github.com/gwangyi/vfsx"
	"github.com/gwangyi/vfsx/billyfs"
	"github.com/gwangyi/vfsx/wrapfs"
)

func newReadOnly(t *testing.T) (ro vfsx.FS, inner vfsx.FS) {
	t.Helper()
	inner = billyfs.NewMemory()
	if err := inner.Mkdir("/dir", 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	if err := vfsx.WriteFile(inner, "/dir/f.txt", []byte("frozen"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return wrapfs.ReadOnly(inner), inner
}

func TestReadOnlyReads(t *testing.T) {
	ro, _ := newReadOnly(t)

	got, err := vfsx.ReadFile(ro, "/dir/f.txt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "frozen" {
		t.Errorf("ReadFile() = %q, want %q", got, "frozen")
	}

	names, err := vfsx.ListDir(ro, "/dir", vfsx.Filter{})
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if len(names) != 1 || names[0] != "f.txt" {
		t.Errorf("ListDir() = %v, want [f.txt]", names)
	}

	if _, err := ro.Stat("/dir/f.txt"); err != nil {
		t.Errorf("Stat() error = %v", err)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	ro, inner := newReadOnly(t)

	checks := map[string]error{
		"OpenFile write":  func() error { _, err := ro.OpenFile("/dir/f.txt", os.O_WRONLY, 0o644); return err }(),
		"OpenFile create": func() error { _, err := ro.OpenFile("/new", os.O_CREATE, 0o644); return err }(),
		"OpenFile append": func() error { _, err := ro.OpenFile("/dir/f.txt", os.O_RDWR|os.O_APPEND, 0o644); return err }(),
		"Mkdir":           ro.Mkdir("/new", 0o755),
		"MkdirAll":        vfsx.MkdirAll(ro, "/new/deep", 0o755),
		"Remove":          ro.Remove("/dir/f.txt"),
		"RemoveAll":       vfsx.RemoveAll(ro, "/dir"),
		"Rename":          ro.Rename("/dir/f.txt", "/dir/g.txt"),
		"Copy":            vfsx.Copy(ro, "/dir/f.txt", "/dir/g.txt", false),
		"Move":            vfsx.Move(ro, "/dir/f.txt", "/dir/g.txt", false),
		"WriteFile":       vfsx.WriteFile(ro, "/dir/f.txt", []byte("nope"), 0o644),
	}
	for name, err := range checks {
		if !vfsx.IsKind(err, vfsx.KindUnsupported) {
			t.Errorf("%s: error = %v, want KindUnsupported", name, err)
		}
	}

	// Nothing leaked through to the wrapped filesystem.
	got, err := vfsx.ReadFile(inner, "/dir/f.txt")
	if err != nil {
		t.Fatalf("ReadFile(inner) error = %v", err)
	}
	if string(got) != "frozen" {
		t.Errorf("inner content = %q, want %q", got, "frozen")
	}
	if exists, _ := vfsx.Exists(inner, "/new"); exists {
		t.Error("a rejected mkdir reached the wrapped filesystem")
	}
}

func TestReadOnlyFile(t *testing.T) {
	ro, _ := newReadOnly(t)

	f, err := ro.OpenFile("/dir/f.txt", os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write([]byte("nope")); !vfsx.IsKind(err, vfsx.KindUnsupported) {
		t.Errorf("Write() error = %v, want KindUnsupported", err)
	}

	ra, ok := f.(io.ReaderAt)
	if !ok {
		t.Fatal("read-only file does not implement io.ReaderAt")
	}
	buf := make([]byte, 3)
	if _, err := ra.ReadAt(buf, 2); err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if string(buf) != "oze" {
		t.Errorf("ReadAt() = %q, want %q", buf, "oze")
	}

	s, ok := f.(io.Seeker)
	if !ok {
		t.Fatal("read-only file does not implement io.Seeker")
	}
	if _, err := s.Seek(1, io.SeekStart); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(data) != "rozen" {
		t.Errorf("read after Seek = %q, want %q", data, "rozen")
	}
}
