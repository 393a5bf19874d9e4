package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// MinLevelUseCase CRUD de niveles mínimos y creación masiva con errores persistidos.
type MinLevelUseCase struct {
	repo   repository.MinLevelRepository
	recent repository.RecentErrorsRepository
	log    *logger.Logger
	now    func() time.Time
}

// NewMinLevelUseCase construye el caso de uso. recent puede ser nil (sin panel de errores).
func NewMinLevelUseCase(repo repository.MinLevelRepository, recent repository.RecentErrorsRepository, log *logger.Logger) *MinLevelUseCase {
	return &MinLevelUseCase{
		repo:   repo,
		recent: recent,
		log:    logger.OrNop(log).Component("min_levels"),
		now:    time.Now,
	}
}

// ClassifyMinLevel categoría del producto del mínimo.
func ClassifyMinLevel(m entity.MinLevel) category.Category {
	return category.Classify(m.Product.CategoryCandidates()...)
}

// NewList vista de mínimos.
func (uc *MinLevelUseCase) NewList() *ListPage[entity.MinLevel] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, "product__name"), uc.repo.List, ClassifyMinLevel)
}

// Get obtiene un mínimo.
func (uc *MinLevelUseCase) Get(ctx context.Context, id int64) (*entity.MinLevel, error) {
	return uc.repo.Get(ctx, id)
}

// Create valida y crea un mínimo.
func (uc *MinLevelUseCase) Create(ctx context.Context, in dto.CreateMinLevelRequest) (*entity.MinLevel, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// Update actualiza cantidad mínima o alerta.
func (uc *MinLevelUseCase) Update(ctx context.Context, id int64, in dto.UpdateMinLevelRequest) (*entity.MinLevel, error) {
	if in.MinQty != nil && in.MinQty.IsNegative() {
		return nil, fmt.Errorf("%w: min_qty debe ser mayor o igual a 0", domain.ErrInvalidInput)
	}
	return uc.repo.Update(ctx, id, in)
}

// Delete elimina un mínimo.
func (uc *MinLevelUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// BulkCreate crea un mínimo por producto, uno a la vez, para atribuir cada fallo a su
// producto. Si alguno falla, ese lote de errores reemplaza al último guardado para owner.
// Un error de retorno indica que la operación no pudo comenzar o fue cancelada; los fallos
// por producto van en el reporte.
func (uc *MinLevelUseCase) BulkCreate(ctx context.Context, owner string, in dto.BulkMinLevelRequest) (dto.BulkReport, error) {
	if len(in.ProductIDs) == 0 {
		return dto.BulkReport{}, domain.ErrNothingSelected
	}
	if err := dto.Validate(in); err != nil {
		return dto.BulkReport{}, err
	}

	report := dto.BulkReport{Total: len(in.ProductIDs)}
	for _, productID := range in.ProductIDs {
		if err := ctx.Err(); err != nil {
			return report, apiclient.ToAPIError(err)
		}
		_, err := uc.repo.Create(ctx, dto.CreateMinLevelRequest{
			ProductID:    productID,
			WarehouseID:  in.WarehouseID,
			MinQty:       in.MinQty,
			AlertEnabled: in.AlertEnabled,
		})
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, entity.RecentError{
				ProductID:    productID,
				ProductLabel: productLabel(in.ProductLabels, productID),
				Message:      apiclient.MessageOf(err),
			})
			continue
		}
		report.Succeeded++
	}
	report.Message = fmt.Sprintf("%d/%d creados", report.Succeeded, report.Total)

	ev := uc.log.Info()
	if report.Failed > 0 {
		ev = uc.log.Warn()
	}
	ev.Int64("warehouse_id", in.WarehouseID).Int("total", report.Total).Int("failed", report.Failed).Msg("creación masiva de mínimos")

	if report.Failed > 0 && uc.recent != nil {
		batch := entity.RecentErrorBatch{
			ID:          uuid.NewString(),
			CreatedAt:   uc.now().UTC(),
			WarehouseID: in.WarehouseID,
			Total:       report.Total,
			Failed:      report.Failed,
			Entries:     report.Errors,
		}
		if err := uc.recent.Save(ctx, owner, batch); err != nil {
			uc.log.Error().Err(err).Str("owner", owner).Msg("no se pudo guardar el lote de errores")
		}
	}
	return report, nil
}

// RecentErrors último lote de errores de owner, o nil.
func (uc *MinLevelUseCase) RecentErrors(ctx context.Context, owner string) (*entity.RecentErrorBatch, error) {
	if uc.recent == nil {
		return nil, nil
	}
	return uc.recent.Latest(ctx, owner)
}

// ClearRecentErrors borra el panel de errores de owner.
func (uc *MinLevelUseCase) ClearRecentErrors(ctx context.Context, owner string) error {
	if uc.recent == nil {
		return nil
	}
	return uc.recent.Clear(ctx, owner)
}

func productLabel(labels map[int64]string, id int64) string {
	if l := labels[id]; l != "" {
		return l
	}
	return "Producto #" + strconv.FormatInt(id, 10)
}
