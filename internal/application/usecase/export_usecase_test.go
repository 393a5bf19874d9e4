package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/application/usecase"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/domain/entity"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
)

func newExportUseCase(t *testing.T) *usecase.ExportUseCase {
	repos := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/inventory/movements/":
			_, _ = w.Write([]byte(`[{"id":5,"date":"2026-10-02","type":"OUT","user":"ana","note":"=SUM(A1)",
				"lines":[{"product":3,"product_info":{"code":"R-3","name":"Rodamiento"},"warehouse_from":1,"quantity":"2","work_order":"OT-9"}]}]`))
		case "/api/inventory/alerts/":
			_, _ = w.Write([]byte(`[{"id":1,"product_info":{"code":"R-1","name":"Filtro","category":"repuesto"},"warehouse":2,"current_qty":"1","min_qty":"3","resolved":false,"triggered_at":"2026-10-01T10:00:00Z"},
				{"id":2,"product_info":{"code":"E-1","name":"Torno","category":"equipo"},"warehouse":2,"current_qty":"0","min_qty":"1","resolved":true,"triggered_at":"2026-10-01T11:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	})
	return usecase.NewExportUseCase(
		usecase.NewMovementUseCase(repos.Movements, nil),
		usecase.NewStockUseCase(repos.Stock, nil),
		usecase.NewAlertUseCase(repos.Alerts, nil),
		export.CSVOptions{Delimiter: ';'},
	)
}

func TestExport_MovimientosCSV(t *testing.T) {
	uc := newExportUseCase(t)
	var buf bytes.Buffer
	name, err := uc.Export(context.Background(), &buf, usecase.ExportMovements, export.FormatCSV, dto.NewListQuery(100, ""), category.None)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "movements_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	out := buf.String()
	assert.Contains(t, out, "ID;Fecha;Tipo;Usuario;Producto;Desde;Hacia;Cantidad;OT;Nota;Anulado")
	assert.Contains(t, out, "5;2026-10-02;OUT;ana;R-3 - Rodamiento;1;;2;OT-9;'=SUM(A1);No")
}

func TestExport_AlertasConCategoria(t *testing.T) {
	uc := newExportUseCase(t)
	tbl, err := uc.Table(context.Background(), usecase.ExportAlerts, dto.NewListQuery(100, ""), category.Equipo)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "E-1 - Torno", tbl.Rows[0][0])
	assert.Equal(t, "Bodega #2", tbl.Rows[0][1])
	assert.Equal(t, true, tbl.Rows[0][4])
}

func TestExport_RecursoDesconocido(t *testing.T) {
	uc := newExportUseCase(t)
	_, err := uc.Export(context.Background(), &bytes.Buffer{}, "users", export.FormatCSV, dto.NewListQuery(20, ""), category.None)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockTable(t *testing.T) {
	minQty := mustDec("5")
	tbl := usecase.StockTable([]entity.StockItem{
		{Product: &entity.Product{Code: "R-1", Name: "Filtro", Category: "Repuesto"}, WarehouseName: "Central", Quantity: mustDec("2"), MinQty: &minQty},
	})
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "REPUESTO", tbl.Rows[0][1])
	assert.Equal(t, true, tbl.Rows[0][5])
}
