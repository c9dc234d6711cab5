package mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

// MemoryClient is an in-memory implementation of storage.Client for tests
// that need real read-back behavior rather than per-call expectations.
type MemoryClient struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryClient creates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{objects: make(map[string][]byte)}
}

// Objects returns a copy of the stored object map for assertions.
func (m *MemoryClient) Objects() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]byte, len(m.objects))
	for k, v := range m.objects {
		out[k] = v
	}
	return out
}

func (m *MemoryClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return true, nil
}

func (m *MemoryClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return nil
}

func (m *MemoryClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.mu.Lock()
	m.objects[objectName] = data
	m.mu.Unlock()
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (m *MemoryClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.objects[objectName]
	m.mu.RUnlock()
	if !ok {
		return nil, notFoundErr(objectName)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemoryClient) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	m.mu.RLock()
	data, ok := m.objects[objectName]
	m.mu.RUnlock()
	if !ok {
		return minio.ObjectInfo{}, notFoundErr(objectName)
	}
	return minio.ObjectInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (m *MemoryClient) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[src.Object]
	if !ok {
		return minio.UploadInfo{}, notFoundErr(src.Object)
	}
	m.objects[dst.Object] = data
	return minio.UploadInfo{Bucket: dst.Bucket, Key: dst.Object, Size: int64(len(data))}, nil
}

func (m *MemoryClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	m.mu.RLock()
	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, opts.Prefix) {
			keys = append(keys, key)
		}
	}
	m.mu.RUnlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		ch <- minio.ObjectInfo{Key: key}
	}
	close(ch)
	return ch
}

func (m *MemoryClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	m.mu.Lock()
	delete(m.objects, objectName)
	m.mu.Unlock()
	return nil
}

func notFoundErr(key string) error {
	return minio.ErrorResponse{
		Code:       "NoSuchKey",
		Message:    fmt.Sprintf("The specified key does not exist: %s", key),
		Key:        key,
		StatusCode: 404,
	}
}
