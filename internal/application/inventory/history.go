package inventory

import (
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// MovementHistoryUseCase consulta el libro de movimientos de un producto.
type MovementHistoryUseCase struct {
	guard        *guard.Guard
	movementRepo repository.StockMovementRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(g *guard.Guard, movementRepo repository.StockMovementRepository) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{guard: g, movementRepo: movementRepo}
}

// ByProduct devuelve los movimientos de un producto del principal, más
// recientes primero. Aplica el mismo guard de propiedad que las mutaciones.
func (uc *MovementHistoryUseCase) ByProduct(principal *guard.Principal, ref guard.ProductRef, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := uc.guard.AdmitProduct(principal, ref, "")
	if err != nil {
		return nil, err
	}
	return uc.movementRepo.ListByProduct(product.ID, limit, offset)
}
