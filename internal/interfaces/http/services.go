package http

import (
	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/domain/repository"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// Services casos de uso ligados a la sesión de un usuario.
type Services struct {
	Movements    *usecase.MovementUseCase
	Stock        *usecase.StockUseCase
	Alerts       *usecase.AlertUseCase
	MinLevels    *usecase.MinLevelUseCase
	PartRequests *usecase.PartRequestUseCase
	Export       *usecase.ExportUseCase
}

// ServicesFactory arma los casos de uso sobre el cliente con las cookies del usuario.
type ServicesFactory func(c *apiclient.Client) Services

// NewServicesFactory la composición es barata; se hace una vez por petición.
func NewServicesFactory(recent repository.RecentErrorsRepository, csv export.CSVOptions, log *logger.Logger) ServicesFactory {
	return func(c *apiclient.Client) Services {
		repos := restapi.NewRepositories(c)
		warehouses := usecase.NewWarehouseUseCase(repos.Warehouses, log)
		movements := usecase.NewMovementUseCase(repos.Movements, log)
		stock := usecase.NewStockUseCase(repos.Stock, warehouses)
		alerts := usecase.NewAlertUseCase(repos.Alerts, log)
		return Services{
			Movements:    movements,
			Stock:        stock,
			Alerts:       alerts,
			MinLevels:    usecase.NewMinLevelUseCase(repos.MinLevels, recent, log),
			PartRequests: usecase.NewPartRequestUseCase(repos.PartRequests, log),
			Export:       usecase.NewExportUseCase(movements, stock, alerts, csv),
		}
	}
}
