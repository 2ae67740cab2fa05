package dto

import "time"

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

// UpdateStoreRequest body para PUT /api/stores/:id.
type UpdateStoreRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2,max=50"`
}

// StoreResponse representación pública de una bodega.
type StoreResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse listado paginado de bodegas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
