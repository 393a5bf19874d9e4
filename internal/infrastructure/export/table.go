// Package export convierte filas en memoria o tablas HTML en archivos CSV, Excel HTML (.xls)
// o XLSX, sin que ninguna celda de texto llegue a evaluarse como fórmula.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Table encabezados y filas a exportar.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// AddRow agrega una fila.
func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// TimeLayout formato de fechas en las celdas.
const TimeLayout = "2006-01-02 15:04"

// formulaPrefix celdas que Excel o LibreOffice evaluarían como fórmula.
var formulaPrefix = regexp.MustCompile(`^\s*[=+\-@]`)

// Sanitize antepone ' a un texto que empieza como fórmula.
func Sanitize(s string) string {
	if formulaPrefix.MatchString(s) {
		return "'" + s
	}
	return s
}

// CellString texto de una celda sin sanitizar.
func CellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case decimal.Decimal:
		return t.String()
	case *decimal.Decimal:
		if t == nil {
			return ""
		}
		return t.String()
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(TimeLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(TimeLayout)
	case bool:
		if t {
			return "Sí"
		}
		return "No"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case *int64:
		if t == nil {
			return ""
		}
		return strconv.FormatInt(*t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// cells fila ya convertida y sanitizada.
func cells(row []any, width int) []string {
	out := make([]string, width)
	for i := 0; i < width && i < len(row); i++ {
		out[i] = Sanitize(CellString(row[i]))
	}
	return out
}

func (t *Table) width() int {
	w := len(t.Headers)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
