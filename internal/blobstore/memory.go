package blobstore

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Memory is an in-process ObjectStore used by tests. Error fields allow
// fault injection the same way the store would fail in production.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte

	PutErr   error
	GetErr   error
	ListErr  error
	FailKeys map[string]error // per-key Get failures
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		objects:  make(map[string][]byte),
		FailKeys: make(map[string]error),
	}
}

// Put writes data at key, overwriting any existing object
func (m *Memory) Put(ctx context.Context, key string, data []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[key] = buf
	return nil
}

// Get fetches the object at key
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if err, ok := m.FailKeys[key]; ok {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// List returns one page of keys under prefix. The cursor is a numeric
// offset into the sorted key list.
func (m *Memory) List(ctx context.Context, prefix, cursor string, limit int) ([]string, string, error) {
	if m.ListErr != nil {
		return nil, "", m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			all = append(all, key)
		}
	}
	sort.Strings(all)

	offset := 0
	if cursor != "" {
		offset, _ = strconv.Atoi(cursor)
	}
	if offset >= len(all) {
		return nil, "", nil
	}
	if limit <= 0 {
		limit = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	next := ""
	if end < len(all) {
		next = strconv.Itoa(end)
	}
	return all[offset:end], next, nil
}

// Len reports the number of stored objects
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// Delete removes the object at key if present
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
}
