package repository

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
)

// MovementRepository define el puerto hacia los movimientos de inventario.
// Void pide al backend la anulación (movimiento de reverso + marca); el cliente no la calcula.
type MovementRepository interface {
	List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Movement], error)
	Get(ctx context.Context, id int64) (*entity.Movement, error)
	Create(ctx context.Context, in dto.CreateMovementRequest) (*entity.Movement, error)
	Void(ctx context.Context, id int64) error
	Trace(ctx context.Context, q dto.TraceQuery) ([]entity.MovementLine, error)
}
