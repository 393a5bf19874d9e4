// bodegactl opera el módulo de bodega desde la terminal con la sesión de un usuario.
//
// Uso: bodegactl <comando> [opciones]
//
//	movements        lista una página de movimientos
//	products         lista el catálogo con su categoría inferida
//	part-requests    lista solicitudes de repuestos
//	export           exporta movimientos, stock o alertas a CSV/XLS/XLSX
//	min-levels-bulk  crea mínimos para varios productos de una bodega
//	recent-errors    muestra (o limpia con -clear) el último lote de errores de mínimos
//	alerts-resolve   marca como resueltas las alertas visibles
//	alerts-reopen    reabre las alertas visibles
//	void-movement    anula un movimiento
//	approve, reject  revisa una solicitud de repuestos
//
// La sesión se toma de BACKEND_SESSION_ID y el resto de la configuración del entorno.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
	"github.com/jhoicas/inventario-bodega/pkg/config"
	"github.com/jhoicas/inventario-bodega/pkg/logger"
)

type command func(ctx context.Context, app *cli, args []string) error

var commands = map[string]command{
	"movements":       runMovements,
	"products":        runProducts,
	"part-requests":   runPartRequests,
	"export":          runExport,
	"min-levels-bulk": runMinLevelsBulk,
	"recent-errors":   runRecentErrors,
	"alerts-resolve":  func(ctx context.Context, app *cli, args []string) error { return runAlertsBulk(ctx, app, args, true) },
	"alerts-reopen":   func(ctx context.Context, app *cli, args []string) error { return runAlertsBulk(ctx, app, args, false) },
	"void-movement":   runVoidMovement,
	"approve":         func(ctx context.Context, app *cli, args []string) error { return runReview(ctx, app, args, true) },
	"reject":          func(ctx context.Context, app *cli, args []string) error { return runReview(ctx, app, args, false) },
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "comando desconocido: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: cfg.App.LogLevel, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newCLI(ctx, cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := cmd(ctx, app, os.Args[2:]); err != nil {
		if errors.Is(err, domain.ErrCanceled) {
			fmt.Fprintln(os.Stderr, "Operación cancelada.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", apiclient.MessageOf(err))
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Uso: bodegactl <comando> [opciones]")
	fmt.Fprintln(w, "Comandos: movements, products, part-requests, export, min-levels-bulk, recent-errors, alerts-resolve, alerts-reopen, void-movement, approve, reject")
}
