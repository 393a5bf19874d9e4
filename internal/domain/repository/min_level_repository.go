package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// MinLevelRepository define el puerto CRUD de niveles mínimos.
type MinLevelRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.MinLevel], error)
	Get(ctx context.Context, id int64) (*entity.MinLevel, error)
	Create(ctx context.Context, in dto.CreateMinLevelRequest) (*entity.MinLevel, error)
	Update(ctx context.Context, id int64, in dto.UpdateMinLevelRequest) (*entity.MinLevel, error)
	Delete(ctx context.Context, id int64) error
}
