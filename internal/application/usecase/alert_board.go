package usecase

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// Confirmer pide confirmación antes de una acción masiva.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implementa Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// AlwaysConfirm acepta sin preguntar (gateway, CLI con -yes).
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// ClassifyAlert categoría del producto de la alerta.
func ClassifyAlert(a entity.StockAlert) category.Category {
	return category.Classify(a.Product.CategoryCandidates()...)
}

// AlertUseCase alternancia de alertas, individual y masiva.
type AlertUseCase struct {
	repo repository.AlertRepository
	log  *logger.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository, log *logger.Logger) *AlertUseCase {
	return &AlertUseCase{repo: repo, log: logger.OrNop(log).Component("alerts")}
}

// ExportAll todas las alertas que cumplen q y la categoría.
func (uc *AlertUseCase) ExportAll(ctx context.Context, q *dto.ListQuery, cat category.Category) ([]entity.StockAlert, error) {
	items, err := fetchAll(ctx, uc.repo.List, q)
	if err != nil {
		return nil, err
	}
	return applyCategory(items, cat, ClassifyAlert), nil
}

// SetResolvedMany envía un PATCH por alerta en paralelo y espera a que todos terminen.
// Un fallo no cancela a los demás; el reporte lleva el detalle por alerta.
func (uc *AlertUseCase) SetResolvedMany(ctx context.Context, ids []int64, resolved bool) dto.BulkReport {
	report := dto.BulkReport{Total: len(ids)}
	var mu sync.Mutex
	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			_, err := uc.repo.SetResolved(ctx, id, resolved)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				report.ItemErrors = append(report.ItemErrors, dto.BulkItemError{
					ItemID:  id,
					Label:   fmt.Sprintf("Alerta #%d", id),
					Message: apiclient.MessageOf(err),
				})
				return err
			}
			report.Succeeded++
			return nil
		})
	}
	_ = g.Wait()
	report.Message = fmt.Sprintf("%d/%d actualizadas", report.Succeeded, report.Total)

	ev := uc.log.Info()
	if report.Failed > 0 {
		ev = uc.log.Warn()
	}
	ev.Bool("resolved", resolved).Int("total", report.Total).Int("failed", report.Failed).Msg("alternancia masiva de alertas")
	return report
}

// NewBoard tablero de alertas: por defecto solo las no resueltas.
func (uc *AlertUseCase) NewBoard() *AlertBoard {
	q := dto.NewListQuery(dto.DefaultPageSize, "-triggered_at")
	q.SetFilter("resolved", "false")
	return &AlertBoard{uc: uc, page: NewListPage(q, uc.repo.List, ClassifyAlert)}
}

// AlertBoard estado de la vista de alertas con actualizaciones optimistas.
// Ante cualquier fallo de una acción masiva se descarta el estado optimista y se recarga
// la página completa, sin reconciliar alerta por alerta.
type AlertBoard struct {
	uc   *AlertUseCase
	page *ListPage[entity.StockAlert]

	mu      sync.Mutex
	current dto.ListResult[entity.StockAlert]
}

// Page acceso a filtros y paginación.
func (b *AlertBoard) Page() *ListPage[entity.StockAlert] { return b.page }

// Load consulta la página actual.
func (b *AlertBoard) Load(ctx context.Context) (dto.ListResult[entity.StockAlert], error) {
	res, err := b.page.Load(ctx)
	if err != nil {
		return res, err
	}
	b.mu.Lock()
	b.current = res
	b.mu.Unlock()
	return res, nil
}

// Visible filas visibles (tras el filtro de categoría), incluyendo cambios optimistas.
func (b *AlertBoard) Visible() []entity.StockAlert {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.StockAlert(nil), b.current.Items...)
}

// Toggle alterna una alerta visible; si el backend falla, la fila vuelve a su valor.
func (b *AlertBoard) Toggle(ctx context.Context, id int64) (*entity.StockAlert, error) {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	prev := b.current.Items[idx].Resolved
	b.current.Items[idx].Resolved = !prev
	b.mu.Unlock()

	updated, err := b.uc.repo.SetResolved(ctx, id, !prev)

	b.mu.Lock()
	defer b.mu.Unlock()
	idx = b.indexOf(id)
	if err != nil {
		if idx >= 0 {
			b.current.Items[idx].Resolved = prev
		}
		return nil, err
	}
	if idx >= 0 && updated != nil {
		b.current.Items[idx].Resolved = updated.Resolved
	}
	return updated, nil
}

// BulkSetResolved marca como resueltas (o reabre) las alertas visibles que aún no tienen
// ese estado, previa confirmación. Si alguna petición falla se restaura la instantánea y
// se recarga la página.
func (b *AlertBoard) BulkSetResolved(ctx context.Context, resolved bool, confirm Confirmer) (dto.BulkReport, error) {
	b.mu.Lock()
	var ids []int64
	for _, a := range b.current.Items {
		if a.Resolved != resolved {
			ids = append(ids, a.ID)
		}
	}
	b.mu.Unlock()
	if len(ids) == 0 {
		return dto.BulkReport{}, domain.ErrNothingSelected
	}

	if confirm == nil {
		confirm = AlwaysConfirm
	}
	ok, err := confirm.Confirm(ctx, bulkPrompt(len(ids), resolved))
	if err != nil {
		return dto.BulkReport{}, err
	}
	if !ok {
		return dto.BulkReport{}, domain.ErrCanceled
	}

	b.mu.Lock()
	snapshot := append([]entity.StockAlert(nil), b.current.Items...)
	for i := range b.current.Items {
		b.current.Items[i].Resolved = resolved
	}
	b.mu.Unlock()

	report := b.uc.SetResolvedMany(ctx, ids, resolved)
	if report.Failed == 0 {
		return report, nil
	}

	b.mu.Lock()
	b.current.Items = snapshot
	b.mu.Unlock()
	if _, err := b.Load(ctx); err != nil {
		b.uc.log.Warn().Err(err).Msg("no se pudo recargar el tablero de alertas")
	}
	return report, nil
}

func (b *AlertBoard) indexOf(id int64) int {
	for i, a := range b.current.Items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func bulkPrompt(n int, resolved bool) string {
	if resolved {
		return fmt.Sprintf("¿Marcar %d alertas como resueltas?", n)
	}
	return fmt.Sprintf("¿Reabrir %d alertas?", n)
}
