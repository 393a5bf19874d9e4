package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository implementa repository.MovementRepository sobre /movements/.
type MovementRepository struct {
	c *apiclient.Client
}

func NewMovementRepository(c *apiclient.Client) *MovementRepository {
	return &MovementRepository{c: c}
}

func (r *MovementRepository) List(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.Movement], error) {
	return list[entity.Movement](ctx, r.c, pathMovements, q)
}

func (r *MovementRepository) Get(ctx context.Context, id int64) (*entity.Movement, error) {
	return get[entity.Movement](ctx, r.c, itemPath(pathMovements, id))
}

func (r *MovementRepository) Create(ctx context.Context, in dto.CreateMovementRequest) (*entity.Movement, error) {
	return mutate[entity.Movement](ctx, r.c, http.MethodPost, pathMovements, in)
}

// Void DELETE con reintento CSRF; ante un fallo el mensaje es el texto devuelto por el backend.
func (r *MovementRepository) Void(ctx context.Context, id int64) error {
	return remove(ctx, r.c, itemPath(pathMovements, id), true)
}

// Trace consulta los renglones asociados a un cliente, máquina, OT o producto.
func (r *MovementRepository) Trace(ctx context.Context, q dto.TraceQuery) ([]entity.MovementLine, error) {
	raw, err := apiclient.Unwrap(r.c.Get(ctx, pathMovements+"trace/", q.Values()))
	if err != nil {
		return nil, err
	}
	env, err := dto.ToPageEnvelope[entity.MovementLine](raw)
	if err != nil {
		return nil, &apiclient.APIError{Status: http.StatusOK, Kind: apiclient.KindDecode, Message: apiclient.MsgInvalidResponse, Detail: err.Error()}
	}
	return env.Items, nil
}
