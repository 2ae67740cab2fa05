package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrConcurrencyConflict indica que la transacción abortó por un fallo de
	// serialización o deadlock; es seguro reintentarla con lecturas frescas.
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintentar")
	ErrTimeout             = errors.New("tiempo de ejecución excedido")
)
