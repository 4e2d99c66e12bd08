package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type memoryObject struct {
	data []byte
	info Object
}

// Memory keeps blobs in process memory
type Memory struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

// NewMemory creates an empty in-memory store
func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: baseURL,
		objects: make(map[string]memoryObject),
	}
}

func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Object{}, fmt.Errorf("read blob %s: %w", key, err)
	}
	info := Object{
		Key:         key,
		URL:         joinURL(m.baseURL, key),
		Size:        int64(len(data)),
		ContentType: contentType,
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, info: info}
	m.mu.Unlock()
	return info, nil
}

func (m *Memory) Get(_ context.Context, key string) (io.ReadCloser, Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, Object{}, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.info, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Driver() Driver {
	return DriverMemory
}
