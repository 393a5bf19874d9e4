package export

import (
	"encoding/csv"
	"io"
)

// utf8BOM hace que Excel detecte la codificación al abrir el CSV.
const utf8BOM = "\ufeff"

// CSVOptions opciones del CSV.
type CSVOptions struct {
	Delimiter rune // ';' por defecto (configuración regional es-CO)
}

// WriteCSV escribe la tabla con BOM, fin de línea CRLF y comillas RFC 4180.
func WriteCSV(w io.Writer, t Table, opts CSVOptions) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	cw.Comma = ';'
	if opts.Delimiter != 0 {
		cw.Comma = opts.Delimiter
	}
	width := t.width()
	if len(t.Headers) > 0 {
		header := make([]any, len(t.Headers))
		for i, h := range t.Headers {
			header[i] = h
		}
		if err := cw.Write(cells(header, width)); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := cw.Write(cells(row, width)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
