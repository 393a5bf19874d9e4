package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
)

// PartRequestHandler aprobación y rechazo de solicitudes de repuestos.
type PartRequestHandler struct {
	services ServicesFactory
}

// NewPartRequestHandler construye el handler.
func NewPartRequestHandler(services ServicesFactory) *PartRequestHandler {
	return &PartRequestHandler{services: services}
}

// Approve godoc
// @Summary      Aprobar solicitud de repuestos
// @Tags         part-requests
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true   "ID de la solicitud"
// @Param        body  body      dto.ReviewPartRequest  false  "Nota"
// @Success      200   {object}  entity.PartRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/part-requests/{id}/approve [post]
func (h *PartRequestHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, true)
}

// Reject godoc
// @Summary      Rechazar solicitud de repuestos
// @Tags         part-requests
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true   "ID de la solicitud"
// @Param        body  body      dto.ReviewPartRequest  false  "Nota"
// @Success      200   {object}  entity.PartRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Param        X-CSRFToken  header  string  true  "Mismo valor que la cookie csrftoken"
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /gateway/part-requests/{id}/reject [post]
func (h *PartRequestHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, false)
}

func (h *PartRequestHandler) review(c *fiber.Ctx, approve bool) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "INVALID_ID", "id inválido")
	}
	var in dto.ReviewPartRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	uc := h.services(GetClient(c)).PartRequests
	var out any
	if approve {
		out, err = uc.Approve(c.UserContext(), int64(id), in)
	} else {
		out, err = uc.Reject(c.UserContext(), int64(id), in)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
