package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

// ErrInvalidObjectKey is returned for keys that would leave the base directory
var ErrInvalidObjectKey = errors.New("fs: object key escapes base directory")

// Backend keeps objects as files under a base directory, one file per key.
// It lets the emulator keep its bucket across restarts.
type Backend struct {
	mu      sync.RWMutex
	baseDir string
}

var (
	_ presigned.Store       = (*Backend)(nil)
	_ ossgate.ObjectRemover = (*Backend)(nil)
)

// New creates a filesystem backend rooted at baseDir, creating it if needed
func New(baseDir string) (*Backend, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: filepath.Clean(baseDir)}, nil
}

func (b *Backend) path(objectKey string) (string, error) {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(objectKey))
	rel, err := filepath.Rel(b.baseDir, filePath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidObjectKey
	}
	return filePath, nil
}

// PutObject writes body to the object's file. The content type is not kept;
// GetObject sniffs it from the data.
func (b *Backend) PutObject(ctx context.Context, objectKey, contentType string, body io.Reader) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// GetObject opens the object's file
func (b *Backend) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, string, error) {
	filePath, err := b.path(objectKey)
	if err != nil {
		return nil, "", err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, "", presigned.ErrObjectNotFound
	} else if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	buffer := make([]byte, 512)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, "", fmt.Errorf("failed to rewind file: %w", err)
	}

	return file, http.DetectContentType(buffer[:n]), nil
}

// DeleteObject removes the object's file
func (b *Backend) DeleteObject(ctx context.Context, objectKey string) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(filePath); os.IsNotExist(err) {
		return presigned.ErrObjectNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

// RemoveObject deletes objectKey, ignoring missing files
func (b *Backend) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	err := b.DeleteObject(ctx, objectKey)
	if errors.Is(err, presigned.ErrObjectNotFound) {
		return nil
	}
	return err
}

// cleanupEmptyDirectories removes empty directories up to baseDir
func (b *Backend) cleanupEmptyDirectories(dir string) {
	if dir == b.baseDir {
		return
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			b.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}
