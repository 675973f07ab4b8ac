package docio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFSReaderNotFound(t *testing.T) {
	r := NewFSReader()
	_, err := r.ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("want ErrDocumentNotFound, got %v", err)
	}
}

func TestFSReaderEmptyIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("  \n\t"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewFSReader()
	_, err := r.ReadText(path)
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("want ErrDocumentUnreadable, got %v", err)
	}
}

func TestFSReaderBadEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.txt")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewFSReader()
	_, err := r.ReadText(path)
	if !errors.Is(err, ErrDocumentUnreadable) {
		t.Fatalf("want ErrDocumentUnreadable, got %v", err)
	}
}

func TestFSReaderJoinsPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("page one\fpage two"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewFSReader()
	text, err := r.ReadText(path)
	if err != nil {
		t.Fatal(err)
	}
	if text != "page one\npage two" {
		t.Fatalf("pages not joined by newline: %q", text)
	}
}
