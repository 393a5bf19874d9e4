package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
)

// MinLevelHandler creación masiva de mínimos y panel de errores recientes.
type MinLevelHandler struct {
	services ServicesFactory
}

// NewMinLevelHandler construye el handler.
func NewMinLevelHandler(services ServicesFactory) *MinLevelHandler {
	return &MinLevelHandler{services: services}
}

// Bulk godoc
// @Summary      Crear mínimos en bloque
// @Description  Un mínimo por producto, en secuencia. Los fallos quedan en el panel de errores recientes.
// @Tags         min-levels
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BulkMinLevelRequest  true  "Bodega, productos y cantidad mínima"
// @Success      200   {object}  dto.BulkReport
// @Failure      400   {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/min-levels/bulk [post]
func (h *MinLevelHandler) Bulk(c *fiber.Ctx) error {
	var in dto.BulkMinLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	report, err := h.services(GetClient(c)).MinLevels.BulkCreate(c.UserContext(), GetOwner(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// RecentErrors godoc
// @Summary      Último lote de errores de la creación masiva
// @Tags         min-levels
// @Produce      json
// @Success      200  {object}  entity.RecentErrorBatch
// @Success      204
// @Router       /gateway/min-levels/recent-errors [get]
func (h *MinLevelHandler) RecentErrors(c *fiber.Ctx) error {
	batch, err := h.services(GetClient(c)).MinLevels.RecentErrors(c.UserContext(), GetOwner(c))
	if err != nil {
		return respondError(c, err)
	}
	if batch == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(batch)
}

// ClearRecentErrors godoc
// @Summary      Limpiar el panel de errores recientes
// @Tags         min-levels
// @Success      204
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/min-levels/recent-errors [delete]
func (h *MinLevelHandler) ClearRecentErrors(c *fiber.Ctx) error {
	if err := h.services(GetClient(c)).MinLevels.ClearRecentErrors(c.UserContext(), GetOwner(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
