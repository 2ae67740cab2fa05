package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Barcode es único por empresa y es la clave de búsqueda externa para
// transferencias; el ID es la clave interna. El stock por bodega vive en
// StockEntry, no aquí.
type Product struct {
	ID          string
	CompanyID   string
	UserID      string // dueño del producto
	Barcode     string
	Name        string
	Unit        string          // unidad de medida, ej. "unids"
	InPrice     decimal.Decimal // precio de compra
	OutPrice    decimal.Decimal // precio de venta
	MinStock    int64
	MaxCapacity int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
