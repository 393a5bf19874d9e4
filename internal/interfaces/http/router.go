package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/assetcache"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Backend  *apiclient.Client
	Services ServicesFactory
	Session  SessionConfig
	Assets   *assetcache.Policy // nil desactiva el respaldo de estáticos
}

// Router registra las rutas del gateway. Debe llamarse después de los middlewares globales.
func Router(app *fiber.App, deps RouterDeps) {
	gw := app.Group("/gateway", SessionMiddleware(deps.Backend, deps.Session))

	exportHandler := NewExportHandler(deps.Services)
	gw.Post("/export/table", exportHandler.ExportTable)
	gw.Get("/export/:resource", exportHandler.Export)

	minLevelHandler := NewMinLevelHandler(deps.Services)
	gw.Post("/min-levels/bulk", minLevelHandler.Bulk)
	gw.Get("/min-levels/recent-errors", minLevelHandler.RecentErrors)
	gw.Delete("/min-levels/recent-errors", minLevelHandler.ClearRecentErrors)

	alertHandler := NewAlertHandler(deps.Services)
	gw.Post("/alerts/bulk", alertHandler.Bulk)

	movementHandler := NewMovementHandler(deps.Services)
	gw.Delete("/movements/:id", movementHandler.Void)

	partRequestHandler := NewPartRequestHandler(deps.Services)
	gw.Post("/part-requests/:id/approve", partRequestHandler.Approve)
	gw.Post("/part-requests/:id/reject", partRequestHandler.Reject)

	// Cualquier otro GET sale del front-end compilado, con la política del service worker.
	if deps.Assets != nil {
		app.Get("/*", deps.Assets.Handler())
	}
}
