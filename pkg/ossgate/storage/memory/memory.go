package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/tendant/ossgate/pkg/ossgate"
	"github.com/tendant/ossgate/pkg/ossgate/presigned"
)

// Backend is an in-memory bucket. It serves as the object store behind the
// presigned emulator and as an ossgate.ObjectRemover.
type Backend struct {
	mu              sync.RWMutex
	objects         map[string][]byte
	objectsMimeType map[string]string
}

var (
	_ presigned.Store       = (*Backend)(nil)
	_ ossgate.ObjectRemover = (*Backend)(nil)
)

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:         make(map[string][]byte),
		objectsMimeType: make(map[string]string),
	}
}

// PutObject stores body under objectKey, replacing any previous object
func (b *Backend) PutObject(ctx context.Context, objectKey, contentType string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	b.objectsMimeType[objectKey] = contentType
	return nil
}

// GetObject returns the object's content and content type
func (b *Backend) GetObject(ctx context.Context, objectKey string) (io.ReadCloser, string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, "", presigned.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), b.objectsMimeType[objectKey], nil
}

// DeleteObject removes an object
func (b *Backend) DeleteObject(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return presigned.ErrObjectNotFound
	}
	delete(b.objects, objectKey)
	delete(b.objectsMimeType, objectKey)
	return nil
}

// RemoveObject deletes objectKey; a missing key is not an error, as on OSS.
// Credentials are not checked.
func (b *Backend) RemoveObject(ctx context.Context, creds ossgate.Credentials, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, objectKey)
	delete(b.objectsMimeType, objectKey)
	return nil
}

// Exists reports whether objectKey is stored
func (b *Backend) Exists(objectKey string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[objectKey]
	return exists
}

// Keys lists stored object keys in order
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
