package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// StockRepository define el puerto de consulta de existencias (solo lectura).
type StockRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockItem], error)
}
