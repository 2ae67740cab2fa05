package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
)

const (
	companyID = "00000000-0000-0000-0000-0000000000c1"
	ownerID   = "00000000-0000-0000-0000-0000000000u1"
	productID = "00000000-0000-0000-0000-0000000000p1"
	barcode   = "750987654321"
)

// stubProductRepo repo de productos con un único producto.
type stubProductRepo struct {
	product *entity.Product
}

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) Update(*entity.Product) error { return nil }
func (r *stubProductRepo) Delete(string) error          { return nil }

func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		return r.product, nil
	}
	return nil, nil
}

func (r *stubProductRepo) GetByCompanyAndBarcode(cid, bc string) (*entity.Product, error) {
	if r.product != nil && r.product.CompanyID == cid && r.product.Barcode == bc {
		return r.product, nil
	}
	return nil, nil
}

func (r *stubProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) ListByStore(string) ([]*entity.Product, error) { return nil, nil }

func newGuard() *guard.Guard {
	return guard.New(&stubProductRepo{product: &entity.Product{
		ID:        productID,
		CompanyID: companyID,
		UserID:    ownerID,
		Barcode:   barcode,
		Name:      "Harina de trigo 1kg",
	}})
}

func owner() *guard.Principal {
	return &guard.Principal{
		UserID:      ownerID,
		CompanyID:   companyID,
		Role:        entity.RoleBodeguero,
		Permissions: []string{entity.PermManageInventory, entity.PermManageProducts},
	}
}

func TestAdmitProduct_DuenoPorBarcode(t *testing.T) {
	g := newGuard()
	product, err := g.AdmitProduct(owner(), guard.ProductRef{Barcode: barcode}, entity.PermManageInventory)
	require.NoError(t, err)
	assert.Equal(t, productID, product.ID, "devuelve el producto resuelto para evitar una segunda lectura")
}

func TestAdmitProduct_DuenoPorID(t *testing.T) {
	g := newGuard()
	product, err := g.AdmitProduct(owner(), guard.ProductRef{ID: productID}, "")
	require.NoError(t, err)
	assert.Equal(t, barcode, product.Barcode)
}

func TestAdmitProduct_SinPrincipal(t *testing.T) {
	g := newGuard()
	_, err := g.AdmitProduct(nil, guard.ProductRef{Barcode: barcode}, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdmitProduct_SinReferencia(t *testing.T) {
	g := newGuard()
	_, err := g.AdmitProduct(owner(), guard.ProductRef{}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdmitProduct_ProductoInexistente(t *testing.T) {
	g := newGuard()
	_, err := g.AdmitProduct(owner(), guard.ProductRef{Barcode: "000000000000"}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdmitProduct_OtraEmpresaSeVeComoInexistente(t *testing.T) {
	g := newGuard()
	p := owner()
	p.CompanyID = "otra-empresa"
	_, err := g.AdmitProduct(p, guard.ProductRef{ID: productID}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un producto ajeno responde igual que uno inexistente")
}

func TestAdmitProduct_NoDueno(t *testing.T) {
	g := newGuard()
	p := owner()
	p.UserID = "otro-usuario"
	_, err := g.AdmitProduct(p, guard.ProductRef{Barcode: barcode}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdmitProduct_AdminNoDuenoAdmitido(t *testing.T) {
	g := newGuard()
	p := &guard.Principal{UserID: "otro-usuario", CompanyID: companyID, Role: entity.RoleAdmin}
	_, err := g.AdmitProduct(p, guard.ProductRef{Barcode: barcode}, entity.PermManageInventory)
	assert.NoError(t, err, "admin tiene propiedad y permisos implícitos")
}

func TestAdmitProduct_PermisoFaltante(t *testing.T) {
	g := newGuard()
	p := owner()
	p.Permissions = []string{entity.PermViewStatistics}
	_, err := g.AdmitProduct(p, guard.ProductRef{Barcode: barcode}, entity.PermManageInventory)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPrincipal_HasPermission(t *testing.T) {
	p := &guard.Principal{Role: entity.RoleVendedor, Permissions: []string{entity.PermViewStatistics}}
	assert.True(t, p.HasPermission(entity.PermViewStatistics))
	assert.False(t, p.HasPermission(entity.PermManageInventory))

	admin := &guard.Principal{Role: entity.RoleAdmin}
	assert.True(t, admin.HasPermission(entity.PermManageProviders), "admin tiene todo el catálogo")
}
