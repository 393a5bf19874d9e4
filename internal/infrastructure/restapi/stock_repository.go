package restapi

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.StockRepository = (*StockRepository)(nil)

// StockRepository implementa repository.StockRepository sobre /stock/.
type StockRepository struct {
	c *apiclient.Client
}

func NewStockRepository(c *apiclient.Client) *StockRepository {
	return &StockRepository{c: c}
}

func (r *StockRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockItem], error) {
	return list[entity.StockItem](ctx, r.c, pathStock, q)
}
