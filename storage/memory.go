package storage

import (
	"context"
	"fmt"
	"io/fs"
	"slices"
	"sync"
)

// Memory is a slot that lives as long as the process.
type Memory struct {
	nopCloser
	mu   sync.Mutex
	data []byte
}

// NewMemory returns an empty slot.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, fmt.Errorf("memory slot is empty: %w", fs.ErrNotExist)
	}
	return slices.Clone(m.data), nil
}

func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	if m.data == nil {
		m.data = []byte{}
	}
	return nil
}
