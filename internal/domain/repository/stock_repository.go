package repository

import "github.com/kazuo-app/kazuo-back/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el stock por
// bodega+producto. Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate devuelven (nil, nil) si la fila no existe: la ausencia
// equivale a cantidad 0 y el caller decide si crearla.
type StockRepository interface {
	Get(storeID, productID string) (*entity.StockEntry, error)
	Upsert(entry *entity.StockEntry) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(storeID, productID string) (*entity.StockEntry, error)
	// ListByStore devuelve las entradas de stock de una bodega.
	ListByStore(storeID string) ([]*entity.StockEntry, error)
	// TotalByProduct suma el stock de un producto en todas las bodegas.
	TotalByProduct(productID string) (int64, error)
}

// StockMovementRepository define el puerto del libro de movimientos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
