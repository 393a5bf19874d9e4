package usecase

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

// StockUseCase consulta de existencias con filtro de categoría en cliente.
type StockUseCase struct {
	repo       repository.StockRepository
	warehouses *WarehouseUseCase
}

// NewStockUseCase construye el caso de uso. warehouses puede ser nil (sin nombres).
func NewStockUseCase(repo repository.StockRepository, warehouses *WarehouseUseCase) *StockUseCase {
	return &StockUseCase{repo: repo, warehouses: warehouses}
}

// ClassifyStock categoría de una existencia según los campos libres del producto.
func ClassifyStock(s entity.StockItem) category.Category {
	return category.Classify(s.Product.CategoryCandidates()...)
}

// NewList vista de existencias ordenada por producto.
func (uc *StockUseCase) NewList() *ListPage[entity.StockItem] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, "product__name"), uc.fetch, ClassifyStock)
}

// List consulta una página sin estado de vista (gateway, CLI).
func (uc *StockUseCase) List(ctx context.Context, q *dto.ListQuery, cat category.Category) (dto.ListResult[entity.StockItem], error) {
	p := NewListPage(q, uc.fetch, ClassifyStock)
	p.Category = cat
	return p.Load(ctx)
}

// All todas las existencias que cumplen q y la categoría (exportaciones).
func (uc *StockUseCase) All(ctx context.Context, q *dto.ListQuery, cat category.Category) ([]entity.StockItem, error) {
	items, err := fetchAll(ctx, uc.fetch, q)
	if err != nil {
		return nil, err
	}
	return applyCategory(items, cat, ClassifyStock), nil
}

func (uc *StockUseCase) fetch(ctx context.Context, q *dto.ListQuery) (dto.PageEnvelope[entity.StockItem], error) {
	env, err := uc.repo.List(ctx, q)
	if err != nil {
		return env, err
	}
	uc.fillWarehouseNames(ctx, env.Items)
	return env, nil
}

func (uc *StockUseCase) fillWarehouseNames(ctx context.Context, items []entity.StockItem) {
	if uc.warehouses == nil {
		return
	}
	missing := false
	for _, it := range items {
		if it.WarehouseName == "" {
			missing = true
			break
		}
	}
	if !missing {
		return
	}
	names := uc.warehouses.Names(ctx)
	for i := range items {
		if items[i].WarehouseName == "" {
			items[i].WarehouseName = names.Label(items[i].WarehouseID)
		}
	}
}
