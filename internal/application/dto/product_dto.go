package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Si Barcode viene vacío se genera uno. StoreID + Quantity opcionales: stock
// inicial en esa bodega (movimiento IN).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=50"`
	Barcode     string          `json:"barcode"`
	Unit        string          `json:"unit"`
	InPrice     decimal.Decimal `json:"in_price"`
	OutPrice    decimal.Decimal `json:"out_price"`
	MinStock    int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxCapacity int64           `json:"max_capacity" validate:"omitempty,min=0"`
	StoreID     string          `json:"store_id" validate:"omitempty,uuid4"`
	Quantity    int64           `json:"quantity" validate:"omitempty,min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos opcionales.
type UpdateProductRequest struct {
	ID          string           `json:"id"` // permite resolver el recurso desde el body
	Name        *string          `json:"name" validate:"omitempty,min=2,max=50"`
	Unit        *string          `json:"unit"`
	InPrice     *decimal.Decimal `json:"in_price"`
	OutPrice    *decimal.Decimal `json:"out_price"`
	MinStock    *int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxCapacity *int64           `json:"max_capacity" validate:"omitempty,min=0"`
}

// RestockProductRequest body para POST /api/products/:id/restock. Registra
// una entrada de compra: suma stock en la bodega y recalcula el costo
// promedio ponderado del producto con UnitCost.
type RestockProductRequest struct {
	StoreID  string          `json:"store_id" validate:"required,uuid4"`
	Quantity int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	UserID      string          `json:"user_id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	InPrice     decimal.Decimal `json:"in_price"`
	OutPrice    decimal.Decimal `json:"out_price"`
	MinStock    int64           `json:"min_stock"`
	MaxCapacity int64           `json:"max_capacity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
