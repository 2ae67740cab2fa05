package entity

import "time"

// Store representa una bodega donde se almacena inventario.
// La identidad es inmutable; nombre y metadatos son mutables.
type Store struct {
	ID        string
	CompanyID string
	UserID    string // dueño de la bodega
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
