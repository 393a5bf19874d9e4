package export

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTable el fragmento HTML no contiene ninguna tabla.
var ErrNoTable = errors.New("export: el HTML no contiene una tabla")

// TableFromHTML lee la primera <table> del fragmento. Las filas con <th> antes de la
// primera fila de datos se toman como encabezados.
func TableFromHTML(r io.Reader) (Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Table{}, err
	}
	tbl := findFirst(doc, atom.Table)
	if tbl == nil {
		return Table{}, ErrNoTable
	}
	var t Table
	if caption := findFirst(tbl, atom.Caption); caption != nil {
		t.Title = textOf(caption)
	}
	for _, tr := range rowsOf(tbl) {
		var values []string
		allHeaders := true
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
				continue
			}
			if c.DataAtom == atom.Td {
				allHeaders = false
			}
			values = append(values, textOf(c))
		}
		if len(values) == 0 {
			continue
		}
		if allHeaders && len(t.Headers) == 0 && len(t.Rows) == 0 {
			t.Headers = values
			continue
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// rowsOf filas de la tabla sin descender a tablas anidadas.
func rowsOf(tbl *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Tr:
				rows = append(rows, c)
			case atom.Thead, atom.Tbody, atom.Tfoot:
				walk(c)
			}
		}
	}
	walk(tbl)
	return rows
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// textOf texto visible del nodo con espacios colapsados.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
