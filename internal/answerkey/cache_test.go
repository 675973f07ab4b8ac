package answerkey

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDoc(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeDoc(t, dir, "hw1.pdf", "source")
	cache, err := NewCache(filepath.Join(dir, "keys"))
	if err != nil {
		t.Fatal(err)
	}

	key := AnswerKey{AssignmentID: "HW1", Course: "CSCI-C241", TotalPoints: 10}
	if err := cache.Save(src, key); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Load(src)
	if !ok {
		t.Fatal("fresh entry not loaded")
	}
	if got.AssignmentID != "HW1" || got.TotalPoints != 10 {
		t.Errorf("loaded key = %+v", got)
	}
}

func TestCacheStaleEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeDoc(t, dir, "hw1.pdf", "source")
	cache, err := NewCache(filepath.Join(dir, "keys"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Save(src, AnswerKey{AssignmentID: "HW1"}); err != nil {
		t.Fatal(err)
	}

	// Touch the source so it is newer than the cache entry.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Load(src); ok {
		t.Fatal("stale entry served")
	}
}

func TestCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeDoc(t, dir, "hw1.pdf", "source")
	cache, err := NewCache(filepath.Join(dir, "keys"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Save(src, AnswerKey{AssignmentID: "HW1"}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache.entryPath(src), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Load(src); ok {
		t.Fatal("corrupt entry served")
	}
}

func TestCacheMissingEntry(t *testing.T) {
	dir := t.TempDir()
	src := writeDoc(t, dir, "hw1.pdf", "source")
	cache, err := NewCache(filepath.Join(dir, "keys"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Load(src); ok {
		t.Fatal("load reported a hit with no entry on disk")
	}
}

func TestParserUsesCache(t *testing.T) {
	dir := t.TempDir()
	src := writeDoc(t, dir, "hw3.pdf", "source")
	cache, err := NewCache(filepath.Join(dir, "keys"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Save(src, AnswerKey{AssignmentID: "CACHED"}); err != nil {
		t.Fatal(err)
	}

	// The reader knows nothing about src; a parse can only succeed via cache.
	p := NewParser(&fakeReader{docs: map[string]string{}}, WithCache(cache))
	key, err := p.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if key.AssignmentID != "CACHED" {
		t.Errorf("AssignmentID = %q, want CACHED", key.AssignmentID)
	}
}
