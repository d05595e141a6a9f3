package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Archive guarda los payloads de respaldo fuera del almacén principal,
// para que un respaldo sobreviva a la corrupción de aquello que respalda.
type Archive interface {
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	Remove(name string) error
}

// FileArchive archiva respaldos como archivos JSON en un directorio.
type FileArchive struct {
	dir string
}

var _ Archive = (*FileArchive)(nil)

// NewFileArchive crea el directorio si no existe.
func NewFileArchive(dir string) (*FileArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de respaldos %s: %w", dir, err)
	}
	return &FileArchive{dir: dir}, nil
}

func (a *FileArchive) path(name string) string {
	return filepath.Join(a.dir, name+".json")
}

// Write guarda el payload.
func (a *FileArchive) Write(name string, data []byte) error {
	return os.WriteFile(a.path(name), data, 0o644)
}

// Read devuelve el payload archivado.
func (a *FileArchive) Read(name string) ([]byte, error) {
	return os.ReadFile(a.path(name))
}

// Remove borra el payload archivado. Ignorar que no exista permite
// recortar historial aunque el archivo se haya borrado a mano.
func (a *FileArchive) Remove(name string) error {
	err := os.Remove(a.path(name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryArchive archiva en memoria (tests y driver memory).
type MemoryArchive struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ Archive = (*MemoryArchive)(nil)

// NewMemoryArchive construye un archivo en memoria vacío.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{data: make(map[string][]byte)}
}

// Write guarda el payload.
func (a *MemoryArchive) Write(name string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	a.data[name] = cp
	return nil
}

// Read devuelve el payload archivado.
func (a *MemoryArchive) Read(name string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	data, ok := a.data[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// Remove borra el payload archivado.
func (a *MemoryArchive) Remove(name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.data, name)
	return nil
}
