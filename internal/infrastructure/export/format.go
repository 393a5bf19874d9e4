package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format formato de exportación.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"  // HTML con tipo MIME de Excel
	FormatXLSX Format = "xlsx" // libro Office Open XML
)

// Tipos MIME de cada formato.
const (
	MIMECSV  = "text/csv; charset=utf-8"
	MIMEXLS  = "application/vnd.ms-excel"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ParseFormat acepta csv, xls, excel y xlsx (sin distinguir mayúsculas). Vacío es csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "xls", "excel":
		return FormatXLS, nil
	case "xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("export: formato no soportado %q", s)
}

// ContentType tipo MIME del formato.
func (f Format) ContentType() string {
	switch f {
	case FormatXLS:
		return MIMEXLS
	case FormatXLSX:
		return MIMEXLSX
	}
	return MIMECSV
}

// Filename nombre de descarga: base_YYYYMMDD_HHMM.ext
func Filename(base string, f Format, now time.Time) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = "export"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	return fmt.Sprintf("%s_%s.%s", base, now.Format("20060102_1504"), f)
}

// Write escribe la tabla en el formato pedido.
func Write(w io.Writer, t Table, f Format, opts CSVOptions) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, t, opts)
	case FormatXLS:
		return WriteExcelHTML(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	}
	return fmt.Errorf("export: formato no soportado %q", f)
}
