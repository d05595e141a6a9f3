package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Asegura que FileBackend implementa Backend.
var _ Backend = (*FileBackend)(nil)

// FileBackend backend durable por defecto: un archivo JSON por clave bajo
// el directorio de datos. La escritura es atómica (temporal + rename) para
// que un corte a mitad de escritura no corrompa la colección.
type FileBackend struct {
	dir string
}

// NewFileBackend crea el directorio de datos si no existe.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Load devuelve el documento de la clave, o (nil, nil) si no existe.
func (b *FileBackend) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return data, nil
}

// Save escribe el documento de forma atómica.
func (b *FileBackend) Save(_ context.Context, key string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("temporal %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cerrar %s: %w", key, err)
	}
	if err := os.Rename(tmpName, b.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renombrar %s: %w", key, err)
	}
	return nil
}

// Close no mantiene descriptores abiertos.
func (b *FileBackend) Close() error { return nil }
