package eggfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"bazil.org/fuse"
	"github.com/msikma/autoesv/pkx"
)

func writeEgg(t *testing.T, dir, name string, pid uint32) string {
	t.Helper()
	format, err := pkx.DetectFormat(name)
	if err != nil {
		t.Fatalf("writeEgg: %v", err)
	}
	path := filepath.Join(dir, name)
	header := pkx.Header{Species: 172, TID: 12345, SID: 54321, PID: pid}
	if err := os.WriteFile(path, header.Encode(format), 0644); err != nil {
		t.Fatalf("writeEgg: %v", err)
	}
	return path
}

func TestNewFS(t *testing.T) {
	tmpDir := t.TempDir()
	writeEgg(t, tmpDir, "a.pk6", 0xABCD1234) // ESV 2975
	writeEgg(t, tmpDir, "b.pk7", 0x12341234) // ESV 0
	writeEgg(t, tmpDir, "c.pk6", 0xABCD1244) // ESV 2975
	os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("hi"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "short.pk6"), make([]byte, 10), 0644)

	filesystem, err := NewFS(tmpDir, false)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}

	if got := filesystem.EggCount(); got != 3 {
		t.Errorf("EggCount() = %d, want 3", got)
	}

	// Files left out of the view are recorded, not silently dropped.
	if len(filesystem.Skipped) != 2 {
		t.Errorf("Skipped = %d files, want 2", len(filesystem.Skipped))
	}
	if len(filesystem.Failed) != 0 {
		t.Errorf("Failed = %v, want none", filesystem.Failed)
	}

	root, err := filesystem.Root()
	if err != nil {
		t.Fatalf("Root() error = %v", err)
	}
	rootDir := root.(*Dir)

	entries, err := rootDir.ReadDirAll(context.Background())
	if err != nil {
		t.Fatalf("ReadDirAll() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("root has %d entries, want 2", len(entries))
	}
	// Sorted zero-padded ESV names
	if entries[0].Name != "0000" || entries[1].Name != "2975" {
		t.Errorf("root entries = %q, %q; want 0000, 2975", entries[0].Name, entries[1].Name)
	}
	for _, e := range entries {
		if e.Type != fuse.DT_Dir {
			t.Errorf("entry %q type = %v, want DT_Dir", e.Name, e.Type)
		}
	}
}

func TestLookupAndRead(t *testing.T) {
	tmpDir := t.TempDir()
	source := writeEgg(t, tmpDir, "a.pk6", 0xABCD1234) // ESV 2975

	filesystem, err := NewFS(tmpDir, false)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}
	root, _ := filesystem.Root()
	rootDir := root.(*Dir)
	ctx := context.Background()

	node, err := rootDir.Lookup(ctx, "2975")
	if err != nil {
		t.Fatalf("Lookup(2975) error = %v", err)
	}
	esvDir := node.(*Dir)

	var attr fuse.Attr
	if err := esvDir.Attr(ctx, &attr); err != nil {
		t.Fatalf("Attr() error = %v", err)
	}
	if attr.Mode&os.ModeDir == 0 {
		t.Errorf("ESV directory mode = %v, want directory", attr.Mode)
	}

	node, err = esvDir.Lookup(ctx, "a.pk6")
	if err != nil {
		t.Fatalf("Lookup(a.pk6) error = %v", err)
	}
	file := node.(*File)

	if err := file.Attr(ctx, &attr); err != nil {
		t.Fatalf("Attr() error = %v", err)
	}
	if attr.Mode != 0o444 {
		t.Errorf("file mode = %v, want 0444", attr.Mode)
	}
	if attr.Size != uint64(pkx.FormatGen6.MinLen()) {
		t.Errorf("file size = %d, want %d", attr.Size, pkx.FormatGen6.MinLen())
	}

	data, err := file.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	sourceData, _ := os.ReadFile(source)
	if !bytes.Equal(data, sourceData) {
		t.Error("ReadAll() differs from source file")
	}
}

func TestLookupMissing(t *testing.T) {
	tmpDir := t.TempDir()
	writeEgg(t, tmpDir, "a.pk6", 0xABCD1234)

	filesystem, err := NewFS(tmpDir, false)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}
	root, _ := filesystem.Root()
	rootDir := root.(*Dir)

	if _, err := rootDir.Lookup(context.Background(), "0042"); !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Lookup(missing) error = %v, want ENOENT", err)
	}
}

func TestSeparateFormats(t *testing.T) {
	tmpDir := t.TempDir()
	writeEgg(t, tmpDir, "a.pk6", 0xABCD1234)
	writeEgg(t, tmpDir, "b.pk7", 0xABCD1234)

	filesystem, err := NewFS(tmpDir, true)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}
	root, _ := filesystem.Root()
	rootDir := root.(*Dir)
	ctx := context.Background()

	entries, err := rootDir.ReadDirAll(ctx)
	if err != nil {
		t.Fatalf("ReadDirAll() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Name != "pk6" || entries[1].Name != "pk7" {
		t.Fatalf("root entries = %v, want pk6 and pk7", entries)
	}

	node, err := rootDir.Lookup(ctx, "pk7")
	if err != nil {
		t.Fatalf("Lookup(pk7) error = %v", err)
	}
	formatDir := node.(*Dir)
	if _, err := formatDir.Lookup(ctx, "2975"); err != nil {
		t.Errorf("Lookup(pk7/2975) error = %v", err)
	}
}

func TestInodesAreUnique(t *testing.T) {
	tmpDir := t.TempDir()
	writeEgg(t, tmpDir, "a.pk6", 0xABCD1234)
	writeEgg(t, tmpDir, "b.pk6", 0x12341234)

	filesystem, err := NewFS(tmpDir, false)
	if err != nil {
		t.Fatalf("NewFS() error = %v", err)
	}

	seen := make(map[uint64]bool)
	var walk func(d *dirNode)
	walk = func(d *dirNode) {
		if seen[d.inode] {
			t.Errorf("duplicate inode %d", d.inode)
		}
		seen[d.inode] = true
		for _, child := range d.dirs {
			walk(child)
		}
		for _, f := range d.files {
			if seen[f.inode] {
				t.Errorf("duplicate inode %d", f.inode)
			}
			seen[f.inode] = true
		}
	}
	walk(filesystem.root)
}
