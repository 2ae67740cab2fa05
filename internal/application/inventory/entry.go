package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/costing"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockEntryUseCase registra entradas de stock (tipo IN) de forma
// transaccional. Lo usa la creación de productos con cantidad inicial y la
// importación masiva.
type StockEntryUseCase struct {
	txRunner TxRunner
}

// NewStockEntryUseCase construye el caso de uso.
func NewStockEntryUseCase(txRunner TxRunner) *StockEntryUseCase {
	return &StockEntryUseCase{txRunner: txRunner}
}

// AddStock suma cantidad al stock de un producto en una bodega, con bloqueo de
// fila y registro en el libro de movimientos.
func (uc *StockEntryUseCase) AddStock(ctx context.Context, productID, storeID, userID string, quantity int64) (*entity.StockEntry, error) {
	if productID == "" || storeID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var entry *entity.StockEntry
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		current, err := stockRepo.GetForUpdate(storeID, productID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &entity.StockEntry{StoreID: storeID, ProductID: productID}
		}
		current.Quantity += quantity
		current.UpdatedAt = now
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: uuid.New().String(),
			ProductID:     productID,
			StoreID:       storeID,
			Type:          entity.MovementTypeIN,
			Quantity:      quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Restock registra una entrada de compra: suma cantidad en la bodega y
// devuelve, junto con la entrada resultante, el nuevo costo promedio ponderado
// del producto calculado sobre el stock total previo a la entrada.
func (uc *StockEntryUseCase) Restock(ctx context.Context, product *entity.Product, storeID, userID string, quantity int64, unitCost decimal.Decimal) (*entity.StockEntry, decimal.Decimal, error) {
	if product == nil || storeID == "" || quantity <= 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		entry   *entity.StockEntry
		newCost decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		total, err := stockRepo.TotalByProduct(product.ID)
		if err != nil {
			return err
		}
		newCost = costing.WeightedAverage(
			decimal.NewFromInt(total), product.InPrice,
			decimal.NewFromInt(quantity), unitCost,
		)

		current, err := stockRepo.GetForUpdate(storeID, product.ID)
		if err != nil {
			return err
		}
		if current == nil {
			current = &entity.StockEntry{StoreID: storeID, ProductID: product.ID}
		}
		current.Quantity += quantity
		current.UpdatedAt = now
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: uuid.New().String(),
			ProductID:     product.ID,
			StoreID:       storeID,
			Type:          entity.MovementTypeIN,
			Quantity:      quantity,
			CreatedAt:     now,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		entry = current
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return entry, newCost, nil
}
