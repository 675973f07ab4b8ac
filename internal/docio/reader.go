package docio

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrDocumentNotFound means the path does not exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentUnreadable means the document exists but yields no usable text.
	ErrDocumentUnreadable = errors.New("document unreadable")
)

// TextReader produces the page-ordered plain text of a document.
type TextReader interface {
	ReadText(path string) (string, error)
}

// FSReader reads plain-text documents from the local filesystem.
// Pages separated by form feeds are re-joined with newlines so the
// parsers see one continuous, page-ordered text stream.
type FSReader struct{}

func NewFSReader() *FSReader { return &FSReader{} }

func (FSReader) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrDocumentUnreadable, path, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s: not valid UTF-8", ErrDocumentUnreadable, path)
	}
	text := strings.ReplaceAll(string(b), "\f", "\n")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s: empty document", ErrDocumentUnreadable, path)
	}
	return text, nil
}
