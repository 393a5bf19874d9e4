package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
)

func runMovements(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("movements", flag.ContinueOnError)
	page := fs.Int("page", 1, "página")
	movType := fs.String("type", "", "IN, OUT, TRANSFER o ADJUSTMENT")
	search := fs.String("search", "", "texto libre")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list := app.movements.NewList()
	defer list.Close()
	list.SetFilter("type", *movType)
	list.SetFilter("search", *search)
	list.SetPage(*page)

	res, err := list.Load(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFECHA\tTIPO\tUSUARIO\tRENGLONES\tANULADO")
	for _, m := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", m.ID, m.Date, m.Type, m.User, len(m.Lines), export.CellString(m.IsVoided()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Página %d de %d (%d movimientos)\n", res.Page, res.TotalPages, res.Total)
	return nil
}

func runProducts(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	page := fs.Int("page", 1, "página")
	search := fs.String("search", "", "texto libre")
	cat := fs.String("category", "", "EQUIPO, REPUESTO o SERVICIO")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, ok := category.Parse(*cat)
	if !ok {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *cat)
	}
	list := app.products.NewList()
	defer list.Close()
	list.SetFilter("search", *search)
	list.SetPage(*page)
	list.SetCategory(c)

	res, err := list.Load(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCÓDIGO\tNOMBRE\tCATEGORÍA")
	for _, p := range res.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Code, p.Name, usecase.ClassifyProduct(p))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Página %d de %d (%d visibles de %d)\n", res.Page, res.TotalPages, res.Visible, res.Total)
	return nil
}

func runPartRequests(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("part-requests", flag.ContinueOnError)
	page := fs.Int("page", 1, "página")
	status := fs.String("status", entity.PartRequestPending, "PENDING, APPROVED, REJECTED o FULFILLED; vacío para todas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list := app.partRequests.NewList()
	defer list.Close()
	list.SetFilter("status", *status)
	list.SetPage(*page)

	res, err := list.Load(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCTO\tDESTINO\tCANTIDAD\tESTADO\t")
	for _, pr := range res.Items {
		product := pr.Product.Label()
		if product == "" {
			product = fmt.Sprintf("Producto #%d", pr.ProductID)
		}
		var pending string
		if pr.IsPending() {
			pending = "por revisar"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", pr.ID, product, pr.WarehouseDestination, pr.Quantity, pr.Status, pending)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Página %d de %d (%d solicitudes)\n", res.Page, res.TotalPages, res.Total)
	return nil
}

func runExport(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	resource := fs.String("resource", usecase.ExportMovements, "movements, stock o alerts")
	format := fs.String("format", "csv", "csv, xls o xlsx")
	cat := fs.String("category", "", "EQUIPO o REPUESTO (solo stock y alertas)")
	output := fs.String("o", "", "archivo de salida (por defecto el nombre sugerido)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	c, ok := category.Parse(*cat)
	if !ok {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *cat)
	}

	t, err := app.export.Table(ctx, *resource, dto.NewListQuery(dto.MaxPageSize, ""), c)
	if err != nil {
		return err
	}
	dir := "."
	if *output != "" {
		dir = filepath.Dir(*output)
	}
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	name, err := app.export.Write(tmp, t, *resource, f)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if *output != "" {
		name = *output
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "%d filas exportadas a %s\n", len(t.Rows), name)
	return nil
}

func runMinLevelsBulk(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("min-levels-bulk", flag.ContinueOnError)
	warehouse := fs.Int64("warehouse", 0, "ID de la bodega")
	products := fs.String("products", "", "IDs de productos separados por coma")
	productsFile := fs.String("products-file", "", "archivo con un ID de producto por línea (primera columna)")
	encoding := fs.String("encoding", "utf8", "codificación del archivo: utf8, latin1 o windows1252")
	minQty := fs.String("min-qty", "0", "cantidad mínima")
	alert := fs.Bool("alert", true, "activar alerta")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids, err := parseIDs(*products)
	if err != nil {
		return err
	}
	labels := map[int64]string{}
	if *productsFile != "" {
		fromFile, fileLabels, err := readProductsFile(*productsFile, *encoding)
		if err != nil {
			return err
		}
		ids = append(ids, fromFile...)
		labels = fileLabels
	}
	qty, err := decimalFlag(*minQty)
	if err != nil {
		return err
	}

	report, err := app.minLevels.BulkCreate(ctx, localOwner, dto.BulkMinLevelRequest{
		WarehouseID:   *warehouse,
		ProductIDs:    ids,
		MinQty:        qty,
		AlertEnabled:  *alert,
		ProductLabels: labels,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, report.Message)
	for _, e := range report.Errors {
		fmt.Fprintf(app.out, "  %s: %s\n", e.ProductLabel, e.Message)
	}
	return nil
}

func runRecentErrors(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("recent-errors", flag.ContinueOnError)
	clearPanel := fs.Bool("clear", false, "limpiar el panel")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *clearPanel {
		if err := app.minLevels.ClearRecentErrors(ctx, localOwner); err != nil {
			return err
		}
		fmt.Fprintln(app.out, "Panel de errores limpio.")
		return nil
	}
	batch, err := app.minLevels.RecentErrors(ctx, localOwner)
	if err != nil {
		return err
	}
	if batch == nil {
		fmt.Fprintln(app.out, "Sin errores recientes.")
		return nil
	}
	fmt.Fprintf(app.out, "%s · bodega %d · %d/%d fallidos\n", export.CellString(batch.CreatedAt.Local()), batch.WarehouseID, batch.Failed, batch.Total)
	for _, e := range batch.Entries {
		fmt.Fprintf(app.out, "  %s: %s\n", e.ProductLabel, e.Message)
	}
	return nil
}

func runAlertsBulk(ctx context.Context, app *cli, args []string, resolved bool) error {
	fs := flag.NewFlagSet("alerts", flag.ContinueOnError)
	yes := fs.Bool("yes", false, "no pedir confirmación")
	cat := fs.String("category", "", "EQUIPO o REPUESTO")
	warehouse := fs.String("warehouse", "", "ID de bodega")
	page := fs.Int("page", 1, "página")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, ok := category.Parse(*cat)
	if !ok {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, *cat)
	}

	board := app.alerts.NewBoard()
	board.Page().SetFilter("resolved", strconv.FormatBool(!resolved))
	board.Page().SetFilter("warehouse", *warehouse)
	board.Page().SetPage(*page)
	board.Page().SetCategory(c)
	if _, err := board.Load(ctx); err != nil {
		return err
	}

	var confirmer usecase.Confirmer = usecase.ConfirmFunc(app.confirm)
	if *yes {
		confirmer = usecase.AlwaysConfirm
	}
	report, err := board.BulkSetResolved(ctx, resolved, confirmer)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, report.Message)
	for _, e := range report.ItemErrors {
		fmt.Fprintf(app.out, "  %s: %s\n", e.Label, e.Message)
	}
	if report.Failed > 0 {
		fmt.Fprintln(app.out, "Algunas alertas no se actualizaron; se recargó el estado del servidor.")
	}
	return nil
}

func runVoidMovement(ctx context.Context, app *cli, args []string) error {
	fs := flag.NewFlagSet("void-movement", flag.ContinueOnError)
	id := fs.Int64("id", 0, "ID del movimiento")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := app.movements.Void(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Movimiento %d anulado.\n", *id)
	return nil
}

func runReview(ctx context.Context, app *cli, args []string, approve bool) error {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	id := fs.Int64("id", 0, "ID de la solicitud")
	note := fs.String("note", "", "nota")
	if err := fs.Parse(args); err != nil {
		return err
	}
	review := app.partRequests.Reject
	if approve {
		review = app.partRequests.Approve
	}
	pr, err := review(ctx, *id, dto.ReviewPartRequest{Note: *note})
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Solicitud %d: %s\n", pr.ID, pr.Status)
	return nil
}

func parseIDs(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: producto %q", domain.ErrInvalidInput, part)
		}
		out = append(out, id)
	}
	return out, nil
}
