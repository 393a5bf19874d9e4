package export

import (
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet nombre de la hoja cuando la tabla no trae título.
const DefaultSheet = "Datos"

// WriteXLSX escribe un libro XLSX real con una hoja. Los encabezados van en negrita y
// la primera fila queda fija. Los números quedan como celdas numéricas y el texto como
// cadena literal, que la hoja nunca evalúa como fórmula.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	width := t.width()

	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		for i := 0; i < width; i++ {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			var h string
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			if err := f.SetCellStr(sheet, cell, h); err != nil {
				return err
			}
		}
		last, _ := excelize.CoordinatesToCellName(width, 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return err
		}
	}

	offset := 1
	if len(t.Headers) > 0 {
		offset = 2
	}
	for r, row := range t.Rows {
		for c := 0; c < width && c < len(row); c++ {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+offset)
			if err := setXLSXCell(f, sheet, cell, row[c]); err != nil {
				return err
			}
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func setXLSXCell(f *excelize.File, sheet, cell string, v any) error {
	switch t := v.(type) {
	case decimal.Decimal:
		return f.SetCellFloat(sheet, cell, t.InexactFloat64(), -1, 64)
	case *decimal.Decimal:
		if t != nil {
			return f.SetCellFloat(sheet, cell, t.InexactFloat64(), -1, 64)
		}
	case int:
		return f.SetCellInt(sheet, cell, t)
	case int64:
		return f.SetCellValue(sheet, cell, t)
	case *int64:
		if t != nil {
			return f.SetCellValue(sheet, cell, *t)
		}
	case float64:
		return f.SetCellFloat(sheet, cell, t, -1, 64)
	}
	return f.SetCellStr(sheet, cell, CellString(v))
}

// sheetName nombre válido de hoja: máximo 31 caracteres y sin []:*?/\.
func sheetName(title string) string {
	if title == "" {
		return DefaultSheet
	}
	out := make([]rune, 0, 31)
	for _, r := range title {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			r = ' '
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	return string(out)
}
