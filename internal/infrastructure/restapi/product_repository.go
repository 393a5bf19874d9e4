package restapi

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementa repository.ProductRepository sobre /products/.
type ProductRepository struct {
	c *apiclient.Client
}

func NewProductRepository(c *apiclient.Client) *ProductRepository {
	return &ProductRepository{c: c}
}

func (r *ProductRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Product], error) {
	return list[entity.Product](ctx, r.c, pathProducts, q)
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return get[entity.Product](ctx, r.c, itemPath(pathProducts, id))
}
