package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/usecase"
	"github.com/kazuo-app/kazuo-back/internal/domain"
)

// StatsHandler estadísticas de inventario (protegido).
type StatsHandler struct {
	uc *usecase.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// ByCompany godoc
// @Summary      Resumen de inventario por bodega
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StoreStatsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/statistics [get]
func (h *StatsHandler) ByCompany(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ByCompany(p)
	if err != nil {
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
