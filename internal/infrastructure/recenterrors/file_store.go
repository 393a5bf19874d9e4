// Package recenterrors guarda el último lote de errores de la creación masiva de mínimos,
// uno por dueño (sesión del navegador o "local" en la CLI).
package recenterrors

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

var _ repository.RecentErrorsRepository = (*FileStore)(nil)

// FileStore un archivo JSON por dueño dentro de dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore crea dir si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("recenterrors: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path el dueño se reduce a un hash para no usarlo como nombre de archivo.
func (s *FileStore) path(owner string) string {
	sum := sha256.Sum256([]byte(owner))
	return filepath.Join(s.dir, "min-level-errors-"+hex.EncodeToString(sum[:8])+".json")
}

// Save reemplaza el lote anterior. Escribe en un temporal y renombra.
func (s *FileStore) Save(_ context.Context, owner string, batch entity.RecentErrorBatch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("recenterrors: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	final := s.path(owner)
	tmp, err := os.CreateTemp(s.dir, ".batch-*")
	if err != nil {
		return fmt.Errorf("recenterrors: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("recenterrors: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("recenterrors: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("recenterrors: %w", err)
	}
	return nil
}

// Latest devuelve nil si no hay lote. Un archivo corrupto se trata como vacío.
func (s *FileStore) Latest(_ context.Context, owner string) (*entity.RecentErrorBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(owner))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recenterrors: %w", err)
	}
	var batch entity.RecentErrorBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, nil
	}
	return &batch, nil
}

// Clear borra el lote; no falla si no existe.
func (s *FileStore) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(owner)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("recenterrors: %w", err)
	}
	return nil
}
