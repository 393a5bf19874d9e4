package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventario-bodega/internal/domain"
)

// readProductsFile lee IDs de producto de un archivo de texto o CSV exportado de Excel:
// primera columna el ID y, opcional, la segunda la etiqueta. Ignora líneas vacías,
// comentarios (#) y encabezados no numéricos.
func readProductsFile(path, encoding string) ([]int64, map[int64]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r, err := decodeReader(f, encoding)
	if err != nil {
		return nil, nil, err
	}
	return parseProducts(r)
}

// decodeReader Excel en Windows guarda los CSV en Windows-1252.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "")) {
	case "", "utf8":
		return r, nil
	case "latin1", "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("%w: codificación %q", domain.ErrInvalidInput, encoding)
}

func parseProducts(r io.Reader) ([]int64, map[int64]string, error) {
	var ids []int64
	labels := map[int64]string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ';' || r == ',' || r == '\t' })
		if len(fields) == 0 {
			continue
		}
		id, err := strconv.ParseInt(strings.Trim(strings.TrimSpace(fields[0]), `"`), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
		if len(fields) > 1 {
			labels[id] = strings.Trim(strings.TrimSpace(fields[1]), `"`)
		}
	}
	return ids, labels, sc.Err()
}

func decimalFlag(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cantidad %q", domain.ErrInvalidInput, s)
	}
	return d, nil
}
