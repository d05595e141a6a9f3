package kvstore

import (
	"context"
	"sync"
)

// Asegura que MemoryBackend implementa Backend.
var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend backend volátil para tests y ejecuciones efímeras.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryBackend construye un backend en memoria vacío.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load devuelve el documento de la clave, o (nil, nil) si no existe.
func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.docs[key]
	if !ok {
		return nil, nil
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// Save guarda el documento bajo la clave.
func (b *MemoryBackend) Save(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	b.docs[key] = copied
	return nil
}

// Close no hace nada en memoria.
func (b *MemoryBackend) Close() error { return nil }
