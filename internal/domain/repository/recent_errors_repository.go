package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// RecentErrorsRepository persiste el último lote de errores de la creación masiva de mínimos.
// owner identifica al usuario/navegador (sesión o "local" en la CLI).
type RecentErrorsRepository interface {
	Save(ctx context.Context, owner string, batch entity.RecentErrorBatch) error
	// Latest devuelve nil si no hay lote guardado.
	Latest(ctx context.Context, owner string) (*entity.RecentErrorBatch, error)
	Clear(ctx context.Context, owner string) error
}
