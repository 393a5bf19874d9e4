package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.MinLevelRepository = (*MinLevelRepository)(nil)

// MinLevelRepository implementa repository.MinLevelRepository sobre /min-levels/.
type MinLevelRepository struct {
	c *apiclient.Client
}

func NewMinLevelRepository(c *apiclient.Client) *MinLevelRepository {
	return &MinLevelRepository{c: c}
}

func (r *MinLevelRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.MinLevel], error) {
	return list[entity.MinLevel](ctx, r.c, pathMinLevels, q)
}

func (r *MinLevelRepository) Get(ctx context.Context, id int64) (*entity.MinLevel, error) {
	return get[entity.MinLevel](ctx, r.c, itemPath(pathMinLevels, id))
}

func (r *MinLevelRepository) Create(ctx context.Context, in dto.CreateMinLevelRequest) (*entity.MinLevel, error) {
	return mutate[entity.MinLevel](ctx, r.c, http.MethodPost, pathMinLevels, in)
}

func (r *MinLevelRepository) Update(ctx context.Context, id int64, in dto.UpdateMinLevelRequest) (*entity.MinLevel, error) {
	return mutate[entity.MinLevel](ctx, r.c, http.MethodPatch, itemPath(pathMinLevels, id), in)
}

func (r *MinLevelRepository) Delete(ctx context.Context, id int64) error {
	return remove(ctx, r.c, itemPath(pathMinLevels, id), false)
}
