package dto

// TransferStockRequest body para POST /api/products/transfer-stock.
type TransferStockRequest struct {
	SourceStoreID string `json:"source_store_id" validate:"required,uuid4"`
	TargetStoreID string `json:"target_store_id" validate:"required,uuid4"`
	Barcode       string `json:"barcode" validate:"required"`
	Quantity      int64  `json:"quantity" validate:"required,gt=0"`
}

// TransferStockResponse cantidades resultantes tras la transferencia.
type TransferStockResponse struct {
	Message        string `json:"message"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	SourceStoreID  string `json:"source_store_id"`
	TargetStoreID  string `json:"target_store_id"`
	Quantity       int64  `json:"quantity"`
	SourceQuantity int64  `json:"source_quantity"`
	TargetQuantity int64  `json:"target_quantity"`
}

// StoreStatsResponse resumen de inventario por bodega.
type StoreStatsResponse struct {
	StoreID       string `json:"store_id"`
	StoreName     string `json:"store_name"`
	ProductCount  int64  `json:"product_count"`
	TotalQuantity int64  `json:"total_quantity"`
}
