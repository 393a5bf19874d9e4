package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// AlertRepository define el puerto de alertas de stock: listar y alternar resuelta.
type AlertRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockAlert], error)
	SetResolved(ctx context.Context, id int64, resolved bool) (*entity.StockAlert, error)
}
