package usecase

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// PartRequestUseCase solicitudes de repuestos. El estado lo decide el backend.
type PartRequestUseCase struct {
	repo repository.PartRequestRepository
	log  *logger.Logger
}

// NewPartRequestUseCase construye el caso de uso.
func NewPartRequestUseCase(repo repository.PartRequestRepository, log *logger.Logger) *PartRequestUseCase {
	return &PartRequestUseCase{repo: repo, log: logger.OrNop(log).Component("part_requests")}
}

// NewList vista de solicitudes, más recientes primero.
func (uc *PartRequestUseCase) NewList() *ListPage[entity.PartRequest] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, "-created_at"), uc.repo.List, nil)
}

// Get obtiene una solicitud.
func (uc *PartRequestUseCase) Get(ctx context.Context, id int64) (*entity.PartRequest, error) {
	return uc.repo.Get(ctx, id)
}

// Create valida y registra una solicitud.
func (uc *PartRequestUseCase) Create(ctx context.Context, in dto.CreatePartRequestRequest) (*entity.PartRequest, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// Approve aprueba la solicitud; el backend genera el movimiento asociado.
func (uc *PartRequestUseCase) Approve(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error) {
	return uc.review(ctx, id, in, true)
}

// Reject rechaza la solicitud.
func (uc *PartRequestUseCase) Reject(ctx context.Context, id int64, in dto.ReviewPartRequest) (*entity.PartRequest, error) {
	return uc.review(ctx, id, in, false)
}

func (uc *PartRequestUseCase) review(ctx context.Context, id int64, in dto.ReviewPartRequest, approve bool) (*entity.PartRequest, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var (
		pr  *entity.PartRequest
		err error
	)
	if approve {
		pr, err = uc.repo.Approve(ctx, id, in)
	} else {
		pr, err = uc.repo.Reject(ctx, id, in)
	}
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("part_request_id", id).Str("status", pr.Status).Msg("solicitud revisada")
	return pr, nil
}
