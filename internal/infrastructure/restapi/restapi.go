// Package restapi implementa los puertos de repositorio sobre el backend REST de inventario.
package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

// Rutas de los recursos, relativas a la base de la API.
const (
	pathWarehouses   = "warehouses/"
	pathProducts     = "products/"
	pathStock        = "stock/"
	pathMovements    = "movements/"
	pathMinLevels    = "min-levels/"
	pathAlerts       = "alerts/"
	pathPartRequests = "part-requests/"
)

// Repositories agrupa los adaptadores de un mismo cliente (una sesión).
type Repositories struct {
	Warehouses   repository.WarehouseRepository
	Products     repository.ProductRepository
	Stock        repository.StockRepository
	Movements    repository.MovementRepository
	MinLevels    repository.MinLevelRepository
	Alerts       repository.AlertRepository
	PartRequests repository.PartRequestRepository
}

// NewRepositories construye todos los adaptadores sobre c.
func NewRepositories(c *apiclient.Client) Repositories {
	return Repositories{
		Warehouses:   NewWarehouseRepository(c),
		Products:     NewProductRepository(c),
		Stock:        NewStockRepository(c),
		Movements:    NewMovementRepository(c),
		MinLevels:    NewMinLevelRepository(c),
		Alerts:       NewAlertRepository(c),
		PartRequests: NewPartRequestRepository(c),
	}
}

func itemPath(base string, id int64) string {
	return fmt.Sprintf("%s%d/", base, id)
}

// list consulta un listado y normaliza el sobre (arreglo o página) inmediatamente.
func list[T any](ctx context.Context, c *apiclient.Client, path string, q *dto.ListQuery) (dto.PageEnvelope[T], error) {
	raw, err := apiclient.Unwrap(c.Get(ctx, path, q.Values()))
	if err != nil {
		return dto.PageEnvelope[T]{Items: []T{}}, err
	}
	env, err := dto.ToPageEnvelope[T](raw)
	if err != nil {
		return env, &apiclient.APIError{Status: http.StatusOK, Kind: apiclient.KindDecode, Message: apiclient.MsgInvalidResponse, Detail: err.Error()}
	}
	return env, nil
}

func get[T any](ctx context.Context, c *apiclient.Client, path string) (*T, error) {
	out, err := apiclient.Decode[T](c.Get(ctx, path, nil))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// mutate toda mutación hereda la política de reintento CSRF del cliente.
func mutate[T any](ctx context.Context, c *apiclient.Client, method, path string, body any) (*T, error) {
	out, err := apiclient.Decode[T](c.Do(ctx, method, path, apiclient.RequestOptions{Body: body, CSRFRetry: true}))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func remove(ctx context.Context, c *apiclient.Client, path string, rawErrorBody bool) error {
	_, err := c.Do(ctx, http.MethodDelete, path, apiclient.RequestOptions{CSRFRetry: true, RawErrorBody: rawErrorBody})
	return err
}
