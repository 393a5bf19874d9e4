package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/recenterrors"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-bodega/pkg/config"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

// localOwner dueño del panel de errores recientes en la CLI.
const localOwner = "local"

// cli casos de uso sobre la sesión del operador.
type cli struct {
	in  *bufio.Reader
	out io.Writer

	warehouses   *usecase.WarehouseUseCase
	movements    *usecase.MovementUseCase
	minLevels    *usecase.MinLevelUseCase
	alerts       *usecase.AlertUseCase
	partRequests *usecase.PartRequestUseCase
	products     *usecase.ProductUseCase
	export       *usecase.ExportUseCase

	closeRecent func()
}

func newCLI(ctx context.Context, cfg *config.Config, log *logger.Logger, in io.Reader, out io.Writer) (*cli, error) {
	client, err := apiclient.New(apiclient.Config{
		BaseURL:           cfg.Backend.URL,
		BasePath:          cfg.Backend.BasePath,
		Timeout:           cfg.Backend.Timeout,
		CSRFCookieName:    cfg.Backend.CSRFCookieName,
		CSRFHeaderName:    cfg.Backend.CSRFHeaderName,
		CSRFBootstrapPath: cfg.Backend.CSRFBootstrapPath,
	}, log)
	if err != nil {
		return nil, err
	}
	if cfg.Backend.SessionID != "" {
		client = client.WithCookies(&http.Cookie{Name: cfg.Backend.SessionCookieName, Value: cfg.Backend.SessionID})
	} else {
		log.Warn().Msg("BACKEND_SESSION_ID vacío; las peticiones irán sin sesión")
	}

	app := &cli{in: bufio.NewReader(in), out: out}
	recent, closeRecent, err := recenterrors.Open(ctx, recenterrors.Options{
		Driver:      cfg.RecentErrors.Driver,
		Dir:         cfg.RecentErrors.Dir,
		RedisAddr:   cfg.RecentErrors.RedisAddr,
		DatabaseURL: cfg.RecentErrors.DatabaseURL,
		TTL:         cfg.RecentErrors.TTL,
	})
	if err != nil {
		return nil, err
	}
	app.closeRecent = closeRecent

	repos := restapi.NewRepositories(client)
	app.warehouses = usecase.NewWarehouseUseCase(repos.Warehouses, log)
	app.movements = usecase.NewMovementUseCase(repos.Movements, log)
	app.minLevels = usecase.NewMinLevelUseCase(repos.MinLevels, recent, log)
	app.alerts = usecase.NewAlertUseCase(repos.Alerts, log)
	app.partRequests = usecase.NewPartRequestUseCase(repos.PartRequests, log)
	app.products = usecase.NewProductUseCase(repos.Products)
	stock := usecase.NewStockUseCase(repos.Stock, app.warehouses)
	app.export = usecase.NewExportUseCase(app.movements, stock, app.alerts, export.CSVOptions{Delimiter: cfg.Export.Delimiter})
	return app, nil
}

func (a *cli) Close() {
	if a.closeRecent != nil {
		a.closeRecent()
	}
}

// confirm pregunta por stdin; solo "s" o "si" confirman.
func (a *cli) confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(a.out, "%s [s/N]: ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí":
		return true, nil
	}
	return false, nil
}
