package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	CompanyID   string   `json:"company_id" validate:"required,uuid4"`
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	Name        string   `json:"name"`
	Role        string   `json:"role" validate:"omitempty,oneof=admin bodeguero vendedor"`
	Permissions []string `json:"permissions"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePermissionsRequest body para PUT /api/users/:id/permissions.
type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
