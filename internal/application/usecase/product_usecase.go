package usecase

import (
	"context"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
)

// ProductUseCase catálogo de productos. Es la única vista que distingue SERVICIO.
type ProductUseCase struct {
	repo repository.ProductRepository
}

func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// ClassifyProduct categoría del producto, incluyendo servicios.
func ClassifyProduct(p entity.Product) category.Category {
	return category.ClassifyWithService(p.CategoryCandidates()...)
}

// NewList vista del catálogo ordenada por nombre.
func (uc *ProductUseCase) NewList() *ListPage[entity.Product] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, "name"), uc.repo.List, ClassifyProduct)
}

func (uc *ProductUseCase) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return uc.repo.Get(ctx, id)
}
