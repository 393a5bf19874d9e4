package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.WarehouseRepository = (*WarehouseRepository)(nil)

// WarehouseRepository implementa repository.WarehouseRepository sobre /warehouses/.
type WarehouseRepository struct {
	c *apiclient.Client
}

// NewWarehouseRepository crea el repositorio.
func NewWarehouseRepository(c *apiclient.Client) *WarehouseRepository {
	return &WarehouseRepository{c: c}
}

func (r *WarehouseRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Warehouse], error) {
	return list[entity.Warehouse](ctx, r.c, pathWarehouses, q)
}

func (r *WarehouseRepository) Get(ctx context.Context, id int64) (*entity.Warehouse, error) {
	return get[entity.Warehouse](ctx, r.c, itemPath(pathWarehouses, id))
}

func (r *WarehouseRepository) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	return mutate[entity.Warehouse](ctx, r.c, http.MethodPost, pathWarehouses, in)
}

func (r *WarehouseRepository) Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*entity.Warehouse, error) {
	return mutate[entity.Warehouse](ctx, r.c, http.MethodPatch, itemPath(pathWarehouses, id), in)
}

func (r *WarehouseRepository) Delete(ctx context.Context, id int64) error {
	return remove(ctx, r.c, itemPath(pathWarehouses, id), false)
}
