package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// WarehouseRepository define el puerto hacia el recurso de bodegas (DIP).
type WarehouseRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Warehouse], error)
	Get(ctx context.Context, id int64) (*entity.Warehouse, error)
	Create(ctx context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error)
	Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*entity.Warehouse, error)
	Delete(ctx context.Context, id int64) error
}
