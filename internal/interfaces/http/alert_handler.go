package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
)

// AlertHandler resolución masiva de alertas.
type AlertHandler struct {
	services ServicesFactory
}

// NewAlertHandler construye el handler.
func NewAlertHandler(services ServicesFactory) *AlertHandler {
	return &AlertHandler{services: services}
}

// Bulk godoc
// @Summary      Resolver o reabrir alertas en bloque
// @Description  Un PATCH por alerta en paralelo. La confirmación la hace quien llama.
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkAlertRequest  true  "IDs y estado"
// @Success      200   {object}  dto.BulkReport
// @Failure      400   {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/alerts/bulk [post]
func (h *AlertHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := dto.Validate(in); err != nil {
		return respondError(c, err)
	}
	report := h.services(GetClient(c)).Alerts.SetResolvedMany(c.UserContext(), in.IDs, in.Resolved)
	return c.JSON(report)
}
