package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
	log  *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, log *logger.Logger) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, log: logger.OrNop(log).Component("warehouses")}
}

// NewList vista de bodegas ordenada por código.
func (uc *WarehouseUseCase) NewList() *ListPage[entity.Warehouse] {
	return NewListPage(dto.NewListQuery(dto.DefaultPageSize, "code"), uc.repo.List, nil)
}

// Get obtiene una bodega por ID.
func (uc *WarehouseUseCase) Get(ctx context.Context, id int64) (*entity.Warehouse, error) {
	return uc.repo.Get(ctx, id)
}

// Create valida y crea una bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*entity.Warehouse, error) {
	if in.Category == "" {
		in.Category = entity.WarehouseCategoryOtra
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.repo.Create(ctx, in)
}

// Update valida y actualiza parcialmente una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id int64, in dto.UpdateWarehouseRequest) (*entity.Warehouse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	return uc.repo.Update(ctx, id, in)
}

// Delete elimina una bodega por ID.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// WarehouseNames nombres para mostrar por ID.
type WarehouseNames map[int64]string

// Label nombre de la bodega o un texto de reemplazo si no se conoce.
func (n WarehouseNames) Label(id int64) string {
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return "Bodega #" + strconv.FormatInt(id, 10)
}

// Names carga los nombres de todas las bodegas. Es una carga de fondo: si falla se
// registra y se devuelve un mapa vacío, y la vista muestra los textos de reemplazo.
func (uc *WarehouseUseCase) Names(ctx context.Context) WarehouseNames {
	all, err := fetchAll(ctx, uc.repo.List, dto.NewListQuery(dto.MaxPageSize, "code"))
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron cargar los nombres de bodegas")
		return WarehouseNames{}
	}
	names := make(WarehouseNames, len(all))
	for _, w := range all {
		names[w.ID] = w.Label()
	}
	return names
}

// MustExist comprueba que la bodega exista antes de una operación masiva.
func (uc *WarehouseUseCase) MustExist(ctx context.Context, id int64) (*entity.Warehouse, error) {
	w, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bodega %d: %w", id, err)
	}
	return w, nil
}
