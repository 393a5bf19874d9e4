package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-bodega/internal/application/dto"
	"github.com/jhoicas/inventario-bodega/internal/domain"
	"github.com/jhoicas/inventario-bodega/internal/infrastructure/apiclient"
)

// respondError traduce errores de dominio y del backend a dto.ErrorResponse.
// Los fallos de transporte (estado 0) se responden como 502.
func respondError(c *fiber.Ctx, err error) error {
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.Status
		code := "BACKEND_ERROR"
		switch {
		case apiErr.IsTransport() && apiErr.Kind == apiclient.KindTimeout:
			status, code = fiber.StatusGatewayTimeout, "BACKEND_TIMEOUT"
		case apiErr.IsTransport():
			status, code = fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"
		case apiErr.Kind == apiclient.KindDecode:
			status, code = fiber.StatusBadGateway, "BACKEND_INVALID_RESPONSE"
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Code:    code,
			Message: apiErr.Message,
			Status:  status,
			Detail:  apiErr.Detail,
		})
	case errors.Is(err, domain.ErrNothingSelected):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOTHING_SELECTED", Message: err.Error(), Status: fiber.StatusBadRequest})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Status: fiber.StatusBadRequest})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error(), Status: fiber.StatusNotFound})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: apiclient.MessageOf(err), Status: fiber.StatusInternalServerError})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg, Status: fiber.StatusBadRequest})
}
