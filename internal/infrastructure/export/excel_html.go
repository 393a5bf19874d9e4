package export

import (
	"io"

	"github.com/beevik/etree"
)

// textStyle obliga a Excel a tratar la celda como texto (conserva ceros a la izquierda y códigos).
const textStyle = `mso-number-format:"\@";`

// WriteExcelHTML escribe la tabla como documento HTML que Excel abre como hoja (.xls).
// Es un formato de compatibilidad: sin tipos numéricos reales; para eso existe WriteXLSX.
func WriteExcelHTML(w io.Writer, t Table) error {
	doc := etree.NewDocument()
	root := doc.CreateElement("html")
	root.CreateAttr("xmlns:o", "urn:schemas-microsoft-com:office:office")
	root.CreateAttr("xmlns:x", "urn:schemas-microsoft-com:office:excel")
	root.CreateAttr("xmlns", "http://www.w3.org/TR/REC-html40")

	head := root.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	if t.Title != "" {
		head.CreateElement("title").SetText(t.Title)
	}

	table := root.CreateElement("body").CreateElement("table")
	table.CreateAttr("border", "1")
	width := t.width()

	if len(t.Headers) > 0 {
		tr := table.CreateElement("thead").CreateElement("tr")
		for i := 0; i < width; i++ {
			var h string
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			tr.CreateElement("th").SetText(Sanitize(h))
		}
	}
	tbody := table.CreateElement("tbody")
	for _, row := range t.Rows {
		tr := tbody.CreateElement("tr")
		for _, c := range cells(row, width) {
			td := tr.CreateElement("td")
			td.CreateAttr("style", textStyle)
			td.SetText(c)
		}
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}
