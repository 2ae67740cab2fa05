package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain"
)

// InventoryHandler maneja transferencias de stock y el libro de movimientos
// (protegido).
type InventoryHandler struct {
	transfer *inventory.TransferStockUseCase
	history  *inventory.MovementHistoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(transfer *inventory.TransferStockUseCase, history *inventory.MovementHistoryUseCase) *InventoryHandler {
	return &InventoryHandler{transfer: transfer, history: history}
}

// TransferStock godoc
// @Summary      Transferir stock entre bodegas
// @Description  Mueve cantidad de un producto (por código de barras) de una bodega a otra de forma atómica.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "source_store_id, target_store_id, barcode, quantity"
// @Success      200   {object}  dto.TransferStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/products/transfer-stock [post]
func (h *InventoryHandler) TransferStock(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}

	result, err := h.transfer.Transfer(c.Context(), p, inventory.TransferInputDTO{
		SourceStoreID: in.SourceStoreID,
		TargetStoreID: in.TargetStoreID,
		Barcode:       in.Barcode,
		Quantity:      in.Quantity,
	})
	if err != nil {
		return transferError(c, err)
	}

	return c.JSON(dto.TransferStockResponse{
		Message:        "transferencia realizada",
		ProductID:      result.ProductID,
		ProductName:    result.ProductName,
		SourceStoreID:  result.SourceStoreID,
		TargetStoreID:  result.TargetStoreID,
		Quantity:       result.Quantity,
		SourceQuantity: result.SourceQuantity,
		TargetQuantity: result.TargetQuantity,
	})
}

// Movements godoc
// @Summary      Libro de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}   entity.StockMovement
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, offset := pageParams(c)
	list, err := h.history.ByProduct(p, guard.ProductRef{ID: c.Params("id")}, limit, offset)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(list)
}

// transferError traduce los errores del dominio de inventario a HTTP.
func transferError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto, bodega o stock de origen no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la bodega de origen"})
	case domain.ErrConcurrencyConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: "conflicto de concurrencia, reintente"})
	case domain.ErrTimeout:
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: "la operación excedió el tiempo límite"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
