package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
)

// Recursos exportables.
const (
	ExportMovements = "movements"
	ExportStock     = "stock"
	ExportAlerts    = "alerts"
)

// ExportUseCase arma tablas de movimientos, existencias y alertas y las escribe en el formato pedido.
type ExportUseCase struct {
	movements *MovementUseCase
	stock     *StockUseCase
	alerts    *AlertUseCase
	csv       export.CSVOptions
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(movements *MovementUseCase, stock *StockUseCase, alerts *AlertUseCase, csv export.CSVOptions) *ExportUseCase {
	return &ExportUseCase{movements: movements, stock: stock, alerts: alerts, csv: csv, now: time.Now}
}

// Table descarga todas las páginas del recurso y arma la tabla.
func (uc *ExportUseCase) Table(ctx context.Context, resource string, q *dto.ListQuery, cat category.Category) (export.Table, error) {
	switch resource {
	case ExportMovements:
		items, err := uc.movements.ExportAll(ctx, q)
		if err != nil {
			return export.Table{}, err
		}
		return MovementsTable(items), nil
	case ExportStock:
		items, err := uc.stock.All(ctx, q, cat)
		if err != nil {
			return export.Table{}, err
		}
		return StockTable(items), nil
	case ExportAlerts:
		items, err := uc.alerts.ExportAll(ctx, q, cat)
		if err != nil {
			return export.Table{}, err
		}
		return AlertsTable(items), nil
	}
	return export.Table{}, fmt.Errorf("%w: recurso %q no exportable", domain.ErrInvalidInput, resource)
}

// Export escribe el recurso en w y devuelve el nombre de archivo sugerido.
func (uc *ExportUseCase) Export(ctx context.Context, w io.Writer, resource string, f export.Format, q *dto.ListQuery, cat category.Category) (string, error) {
	t, err := uc.Table(ctx, resource, q, cat)
	if err != nil {
		return "", err
	}
	return uc.Write(w, t, resource, f)
}

// Write escribe una tabla ya armada (por ejemplo leída de HTML).
func (uc *ExportUseCase) Write(w io.Writer, t export.Table, base string, f export.Format) (string, error) {
	if err := export.Write(w, t, f, uc.csv); err != nil {
		return "", err
	}
	return export.Filename(base, f, uc.now()), nil
}

// MovementsTable una fila por renglón; un movimiento sin renglones ocupa una fila.
func MovementsTable(items []entity.Movement) export.Table {
	t := export.Table{
		Title:   "Movimientos",
		Headers: []string{"ID", "Fecha", "Tipo", "Usuario", "Producto", "Desde", "Hacia", "Cantidad", "OT", "Nota", "Anulado"},
	}
	for _, m := range items {
		if len(m.Lines) == 0 {
			t.AddRow(m.ID, m.Date, m.Type, m.User, nil, nil, nil, nil, nil, m.Note, m.IsVoided())
			continue
		}
		for _, l := range m.Lines {
			product := l.Product.Label()
			if product == "" {
				product = "Producto #" + fmt.Sprint(l.ProductID)
			}
			t.AddRow(m.ID, m.Date, m.Type, m.User, product, l.WarehouseFrom, l.WarehouseTo, l.Quantity, l.WorkOrder, m.Note, m.IsVoided())
		}
	}
	return t
}

// StockTable existencias con su categoría inferida.
func StockTable(items []entity.StockItem) export.Table {
	t := export.Table{
		Title:   "Existencias",
		Headers: []string{"Producto", "Categoría", "Bodega", "Cantidad", "Mínimo", "Bajo mínimo"},
	}
	for _, s := range items {
		t.AddRow(s.Product.Label(), string(ClassifyStock(s)), s.WarehouseName, s.Quantity, s.MinQty, s.BelowMinimum())
	}
	return t
}

// AlertsTable alertas de mínimo.
func AlertsTable(items []entity.StockAlert) export.Table {
	t := export.Table{
		Title:   "Alertas",
		Headers: []string{"Producto", "Bodega", "Actual", "Mínimo", "Resuelta", "Disparada"},
	}
	for _, a := range items {
		wh := a.WarehouseName
		if wh == "" {
			wh = WarehouseNames{}.Label(a.WarehouseID)
		}
		t.AddRow(a.Product.Label(), wh, a.CurrentQty, a.MinQty, a.Resolved, a.TriggeredAt)
	}
	return t
}
