package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// Orden por defecto del listado de movimientos: más recientes primero.
const movementOrdering = "-date,-id"

// MovementUseCase consulta, registro, anulación y trazabilidad de movimientos.
// Los saldos y el reverso de una anulación los calcula el backend.
type MovementUseCase struct {
	repo repository.MovementRepository
	log  *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(repo repository.MovementRepository, log *logger.Logger) *MovementUseCase {
	return &MovementUseCase{repo: repo, log: logger.OrNop(log).Component("movements")}
}

// NewList vista de movimientos: 20 por página, más recientes primero.
func (uc *MovementUseCase) NewList() *ListPage[entity.Movement] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, movementOrdering), uc.repo.List, nil)
}

// List consulta una página sin estado de vista.
func (uc *MovementUseCase) List(ctx context.Context, q *dto.ListQuery) (dto.ListResult[entity.Movement], error) {
	if q.Ordering == "" {
		q.Ordering = movementOrdering
	}
	return NewListPage(q, uc.repo.List, nil).Load(ctx)
}

// ExportAll recorre todas las páginas de q.
func (uc *MovementUseCase) ExportAll(ctx context.Context, q *dto.ListQuery) ([]entity.Movement, error) {
	return fetchAll(ctx, uc.repo.List, q)
}

// Get obtiene un movimiento con sus renglones.
func (uc *MovementUseCase) Get(ctx context.Context, id int64) (*entity.Movement, error) {
	return uc.repo.Get(ctx, id)
}

// Create valida la forma del movimiento y lo envía. Las reglas de saldo negativo y
// autorización las decide el backend.
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*entity.Movement, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.CheckWarehouses() {
		return nil, fmt.Errorf("%w: bodegas incompletas para un movimiento %s", domain.ErrInvalidInput, in.Type)
	}
	m, err := uc.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("movement_id", m.ID).Str("type", m.Type).Int("lines", len(m.Lines)).Msg("movimiento registrado")
	return m, nil
}

// Void solicita la anulación. El backend rechaza los ya anulados y su mensaje se
// devuelve sin normalizar.
func (uc *MovementUseCase) Void(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.repo.Void(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("movement_id", id).Msg("movimiento anulado")
	return nil
}

// Trace consulta renglones por cliente, máquina, OT o producto. Exige al menos un criterio.
func (uc *MovementUseCase) Trace(ctx context.Context, q dto.TraceQuery) ([]entity.MovementLine, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	if q.IsEmpty() {
		return nil, fmt.Errorf("%w: indica cliente, máquina, OT o producto", domain.ErrInvalidInput)
	}
	return uc.repo.Trace(ctx, q)
}
