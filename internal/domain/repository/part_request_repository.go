package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// PartRequestRepository define el puerto de solicitudes de repuestos.
// Approve y Reject son RPC del backend; devuelven la solicitud con su nuevo estado.
type PartRequestRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.PartRequest], error)
	Get(ctx context.Context, id int64) (*entity.PartRequest, error)
	Create(ctx context.Context, in dto.CreatePartRequestRequest) (*entity.PartRequest, error)
	Approve(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error)
	Reject(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error)
}
