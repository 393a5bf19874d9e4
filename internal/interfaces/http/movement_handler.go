package http

import (
	"github.com/gofiber/fiber/v2"
)

// MovementHandler anulación de movimientos.
type MovementHandler struct {
	services ServicesFactory
}

// NewMovementHandler construye el handler.
func NewMovementHandler(services ServicesFactory) *MovementHandler {
	return &MovementHandler{services: services}
}

// Void godoc
// @Summary      Anular un movimiento
// @Description  El backend genera el movimiento de reverso. Se reenvía el token CSRF del usuario.
// @Tags         movements
// @Param        id   path  int  true  "ID del movimiento"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/movements/{id} [delete]
func (h *MovementHandler) Void(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	if err := h.services(GetClient(c)).Movements.Void(c.UserContext(), int64(id)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
