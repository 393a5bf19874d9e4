package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseProducts_CSVDeExcelEnWindows1252(t *testing.T) {
	src := "ID;Producto\r\n12;Válvula de presión\r\n# comentario\r\n\r\n15;\"Correa\"\r\nx;ignorada\r\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(src)
	require.NoError(t, err)

	r, err := decodeReader(strings.NewReader(encoded), "windows-1252")
	require.NoError(t, err)
	ids, labels, err := parseProducts(r)
	require.NoError(t, err)
	assert.Equal(t, []int64{12, 15}, ids)
	assert.Equal(t, "Válvula de presión", labels[12])
	assert.Equal(t, "Correa", labels[15])
}

func TestDecodeReader_CodificacionDesconocida(t *testing.T) {
	_, err := decodeReader(&bytes.Buffer{}, "ebcdic")
	assert.Error(t, err)
}

func TestParseIDsYDecimal(t *testing.T) {
	ids, err := parseIDs(" 1, 2,,3 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = parseIDs("1,-2")
	assert.Error(t, err)

	d, err := decimalFlag("2,5")
	require.NoError(t, err)
	assert.Equal(t, "2.5", d.String())
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	app := &cli{out: &out}
	for in, want := range map[string]bool{"s\n": true, "Sí\n": true, "n\n": false, "": false} {
		app.in = bufioReader(in)
		ok, err := app.confirm(context.Background(), "¿Seguro?")
		require.NoError(t, err)
		assert.Equal(t, want, ok, in)
	}
	assert.Contains(t, out.String(), "¿Seguro? [s/N]: ")
}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
