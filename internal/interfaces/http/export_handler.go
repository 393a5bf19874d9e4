package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain/category"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/export"
)

// reservedExportParams parámetros del gateway que no se reenvían como filtros.
var reservedExportParams = map[string]bool{
	"format": true, "category": true, "page": true, "page_size": true, "ordering": true, "filename": true,
}

// ExportHandler descargas de movimientos, existencias y alertas.
type ExportHandler struct {
	services ServicesFactory
}

// NewExportHandler construye el handler.
func NewExportHandler(services ServicesFactory) *ExportHandler {
	return &ExportHandler{services: services}
}

// Export godoc
// @Summary      Exportar un recurso completo
// @Tags         export
// @Produce      octet-stream
// @Param        resource  path   string  true   "movements | stock | alerts"
// @Param        format    query  string  false  "csv | xls | xlsx"  default(csv)
// @Param        category  query  string  false  "EQUIPO | REPUESTO"
// @Param        ordering  query  string  false  "Orden del backend"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /gateway/export/{resource} [get]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	f, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, "INVALID_FORMAT", err.Error())
	}
	cat, ok := category.Parse(c.Query("category"))
	if !ok {
		return badRequest(c, "INVALID_CATEGORY", "categoría no soportada")
	}
	q := dto.NewListQuery(dto.MaxPageSize, c.Query("ordering"))
	for k, v := range c.Queries() {
		if !reservedExportParams[k] {
			q.SetFilter(k, v)
		}
	}

	var buf bytes.Buffer
	name, err := h.services(GetClient(c)).Export.Export(c.UserContext(), &buf, c.Params("resource"), f, q, cat)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, name, buf.Bytes())
}

// ExportTable godoc
// @Summary      Exportar una tabla HTML
// @Description  Convierte la primera <table> del cuerpo en CSV, XLS o XLSX.
// @Tags         export
// @Accept       html
// @Produce      octet-stream
// @Param        format    query  string  false  "csv | xls | xlsx"  default(csv)
// @Param        filename  query  string  false  "Nombre base del archivo"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/export/table [post]
func (h *ExportHandler) ExportTable(c *fiber.Ctx) error {
	f, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, "INVALID_FORMAT", err.Error())
	}
	t, err := export.TableFromHTML(bytes.NewReader(c.Body()))
	if err != nil {
		return badRequest(c, "INVALID_TABLE", err.Error())
	}
	var buf bytes.Buffer
	name, err := h.services(GetClient(c)).Export.Write(&buf, t, c.Query("filename", "tabla"), f)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f, name, buf.Bytes())
}

func sendFile(c *fiber.Ctx, f export.Format, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}
