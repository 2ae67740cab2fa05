package entity

import "time"

// Company representa una empresa registrada en el sistema (tenant).
// Email es la dirección configurada para las notificaciones de inventario.
type Company struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
