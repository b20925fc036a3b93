// Package filex reads local files into uploadable documents.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dmitrijs2005/docsim/internal/common"
)

var (
	ErrNotText  = errors.New("file is not UTF-8 text")
	ErrTooLarge = fmt.Errorf("file exceeds %d bytes", common.MaxDocumentBytes)
)

// ReadText returns the base name and content of the text file at path.
func ReadText(path string) (name, content string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", "", fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return "", "", fmt.Errorf("%s is a directory", path)
	}

	b, err := io.ReadAll(io.LimitReader(f, common.MaxDocumentBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	if len(b) > common.MaxDocumentBytes {
		return "", "", ErrTooLarge
	}
	if !utf8.Valid(b) {
		return "", "", ErrNotText
	}

	return filepath.Base(path), string(b), nil
}

// EnsureParentDir creates the directory that will hold path, e.g. a log or
// database file given on the command line.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
