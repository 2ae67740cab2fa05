package entity

import "time"

// StockEntry representa la cantidad disponible de un producto en una bodega.
// Clave compuesta (StoreID, ProductID); se crea de forma perezosa la primera
// vez que un producto entra a una bodega. Invariante: Quantity nunca negativa;
// la ausencia de fila equivale a cantidad 0.
type StockEntry struct {
	StoreID   string
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"
	MovementTypeOUT      = "OUT"
	MovementTypeTRANSFER = "TRANSFER"
)

// StockMovement registra un movimiento en el libro de inventario.
// Una transferencia genera dos filas (salida en origen, entrada en destino)
// compartiendo el mismo TransactionID.
type StockMovement struct {
	ID            string
	TransactionID string
	ProductID     string
	StoreID       string
	Type          string // ver constantes MovementType*
	Quantity      int64  // con signo: negativo = salida
	CreatedAt     time.Time
	CreatedBy     string
}
