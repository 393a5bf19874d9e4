package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// ProductRepository define el puerto de consulta de productos.
type ProductRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Product], error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
}
