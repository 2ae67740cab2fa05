package guard

import (
	"slices"

	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// Principal es la identidad autenticada normalizada, independiente de la forma
// del transporte. La capa HTTP la construye desde los claims del JWT; ningún
// componente posterior vuelve a mirar el request.
type Principal struct {
	UserID      string
	CompanyID   string
	Role        string
	Permissions []string
}

// HasPermission indica si el principal tiene la etiqueta de permiso.
// El rol admin tiene todos los permisos implícitos.
func (p *Principal) HasPermission(perm string) bool {
	if p.Role == entity.RoleAdmin {
		return true
	}
	return slices.Contains(p.Permissions, perm)
}

// ProductRef referencia tipada a un producto: por ID interno o por código de
// barras. La extracción (body primero, luego path) ocurre en la capa HTTP.
type ProductRef struct {
	ID      string
	Barcode string
}

// Guard decide la admisión de un principal sobre un recurso antes de cualquier
// mutación. Solo lectura: se ejecuta completo antes de que el motor de
// transferencias abra su transacción, de modo que ningún bloqueo de ledger se
// toma para un caller no autorizado.
type Guard struct {
	productRepo repository.ProductRepository
}

// New construye el guard.
func New(productRepo repository.ProductRepository) *Guard {
	return &Guard{productRepo: productRepo}
}

// AdmitProduct resuelve el producto y decide la admisión:
//   - principal ausente -> ErrUnauthorized
//   - producto inexistente o de otra empresa -> ErrNotFound
//   - dueño distinto (y rol no admin) o permiso faltante -> ErrForbidden
//
// Devuelve el producto resuelto para que el caller no repita la lectura.
func (g *Guard) AdmitProduct(principal *Principal, ref ProductRef, requiredPerm string) (*entity.Product, error) {
	if principal == nil || principal.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	product, err := g.resolve(principal, ref)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	// Un producto de otra empresa no se revela: mismo error que inexistente.
	if product.CompanyID != principal.CompanyID {
		return nil, domain.ErrNotFound
	}

	if product.UserID != principal.UserID && principal.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if requiredPerm != "" && !principal.HasPermission(requiredPerm) {
		return nil, domain.ErrForbidden
	}

	return product, nil
}

func (g *Guard) resolve(principal *Principal, ref ProductRef) (*entity.Product, error) {
	switch {
	case ref.ID != "":
		return g.productRepo.GetByID(ref.ID)
	case ref.Barcode != "":
		return g.productRepo.GetByCompanyAndBarcode(principal.CompanyID, ref.Barcode)
	default:
		return nil, domain.ErrInvalidInput
	}
}
