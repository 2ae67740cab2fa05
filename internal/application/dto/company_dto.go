package dto

import "time"

// CreateCompanyRequest body para POST /api/companies (registro de empresa).
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCompanyRequest body para PUT /api/companies/:id. Campos opcionales.
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CompanyResponse representación pública de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
