package answerkey

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Cache stores parsed answer keys as one JSON file per source document,
// named by the document's base name. An entry is valid only while its
// modification time is at least the source document's; anything stale,
// missing, or corrupt reads as absent.
type Cache struct {
	dir string
}

func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = "grading_data/keys"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) entryPath(srcPath string) string {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.dir, stem+".json")
}

// Load returns the cached key for srcPath, or false if the entry is
// missing, older than the source document, or fails to decode.
func (c *Cache) Load(srcPath string) (AnswerKey, bool) {
	entry := c.entryPath(srcPath)

	ci, err := os.Stat(entry)
	if err != nil {
		return AnswerKey{}, false
	}
	si, err := os.Stat(srcPath)
	if err != nil {
		return AnswerKey{}, false
	}
	if ci.ModTime().Before(si.ModTime()) {
		return AnswerKey{}, false
	}

	b, err := os.ReadFile(entry)
	if err != nil {
		return AnswerKey{}, false
	}
	var key AnswerKey
	if err := json.Unmarshal(b, &key); err != nil {
		log.Printf("answerkey: discarding corrupt cache entry %s: %v", entry, err)
		return AnswerKey{}, false
	}
	return key, true
}

// Save writes the key atomically: a concurrent Load never sees a partial file.
func (c *Cache) Save(srcPath string, key AnswerKey) error {
	b, err := json.MarshalIndent(key, "", "  ")
	if err != nil {
		return err
	}
	entry := c.entryPath(srcPath)
	tmp, err := os.CreateTemp(c.dir, ".key-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), entry)
}
