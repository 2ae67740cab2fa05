package entity

import (
	"slices"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Catálogo fijo de etiquetas de permiso.
const (
	PermManageStores    = "manage_stores"
	PermManageProducts  = "manage_products"
	PermManageInventory = "manage_inventory"
	PermViewStatistics  = "view_statistics"
	PermManageProviders = "manage_providers"
)

// AllPermissions lista el catálogo completo, en orden estable.
var AllPermissions = []string{
	PermManageStores,
	PermManageProducts,
	PermManageInventory,
	PermViewStatistics,
	PermManageProviders,
}

// PermissionLabels etiquetas legibles para el frontend.
var PermissionLabels = map[string]string{
	PermManageStores:    "Gestionar Bodegas",
	PermManageProducts:  "Gestionar Productos",
	PermManageInventory: "Gestionar Inventario",
	PermViewStatistics:  "Ver Estadísticas",
	PermManageProviders: "Gestionar Proveedores",
}

// IsValidPermission verifica que la etiqueta pertenezca al catálogo.
func IsValidPermission(p string) bool {
	return slices.Contains(AllPermissions, p)
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string   // admin, bodeguero, vendedor
	Permissions  []string // subconjunto del catálogo de permisos
	Status       string   // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPermission indica si el usuario tiene la etiqueta de permiso dada.
// El rol admin tiene todos los permisos implícitos.
func (u *User) HasPermission(p string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return slices.Contains(u.Permissions, p)
}
