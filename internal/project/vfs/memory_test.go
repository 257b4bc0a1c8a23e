package vfs

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemFS_AddFile(t *testing.T) {
	m := NewMemFS()

	if err := m.AddFile("/a/b/file.bin", []byte{0x00, 0xFF}); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	if !m.Exists("/a/b/file.bin") {
		t.Error("file should exist")
	}
	if !m.Exists("/a/b") {
		t.Error("parent directory should exist")
	}

	info, err := m.Stat("/a/b/file.bin")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 2 || info.Name() != "file.bin" || info.IsDir() {
		t.Errorf("unexpected info: size=%d name=%q dir=%v", info.Size(), info.Name(), info.IsDir())
	}
}

func TestMemFS_ReadFileCopies(t *testing.T) {
	m := NewMemFS()
	_ = m.AddFile("/f", []byte{1, 2, 3})

	data, err := m.ReadFile("/f")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	data[0] = 9

	again, _ := m.ReadFile("/f")
	if again[0] != 1 {
		t.Errorf("stored content was modified through returned slice")
	}
}

func TestMemFS_WriteFileMissingParent(t *testing.T) {
	m := NewMemFS()
	err := m.WriteFile("/missing/f", []byte("x"), 0644)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemFS_Rename(t *testing.T) {
	m := NewMemFS()
	_ = m.AddFile("/dir/old", []byte("old"))
	_ = m.AddFile("/dir/new", []byte("stale"))

	if err := m.Rename("/dir/old", "/dir/new"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if m.Exists("/dir/old") {
		t.Error("old path should be gone")
	}
	data, _ := m.ReadFile("/dir/new")
	if string(data) != "old" {
		t.Errorf("got %q, want %q", data, "old")
	}

	if err := m.Rename("/dir/nope", "/dir/x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemFS_Fail(t *testing.T) {
	m := NewMemFS()
	_ = m.AddFile("/f", []byte("x"))
	boom := errors.New("boom")

	m.Fail("rename", boom)
	if err := m.Rename("/f", "/g"); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}

	m.Fail("rename", nil)
	if err := m.Rename("/f", "/g"); err != nil {
		t.Errorf("expected success after clearing, got %v", err)
	}
	if got := m.Files(); len(got) != 1 || got[0] != "/g" {
		t.Errorf("Files() = %v", got)
	}
}

func TestMemFS_PathHelpers(t *testing.T) {
	m := NewMemFS()
	if got := m.Dir("a/b/c"); got != "/a/b" {
		t.Errorf("Dir = %q", got)
	}
	if got := m.Base("/a/b/c"); got != "c" {
		t.Errorf("Base = %q", got)
	}
	if got := m.Join("/a", "b"); got != "/a/b" {
		t.Errorf("Join = %q", got)
	}
	if got, _ := m.Abs("x/../y"); got != "/y" {
		t.Errorf("Abs = %q", got)
	}
}
