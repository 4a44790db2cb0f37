package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage keeps uploaded files under slash-separated keys.
type FileStorage interface {
	// Save writes r under key and returns the stored key.
	Save(ctx context.Context, r io.Reader, key string) (string, error)

	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ImportArchiveKey builds the key an imported log file is archived under:
// imports/<employeeNo>/<20060102T150405Z>_<name>.
func ImportArchiveKey(employeeNo, filename string, at time.Time) string {
	name := unsafeChars.ReplaceAllString(path.Base(strings.TrimSpace(filename)), "_")
	if name == "" || name == "." || name == "_" {
		name = "logs"
	}
	return path.Join("imports", employeeNo, at.UTC().Format("20060102T150405Z")+"_"+name)
}
