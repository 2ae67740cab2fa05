package repository

import "github.com/kazuo-app/kazuo-back/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByCompanyAndBarcode resuelve un producto por código de barras dentro
	// de la empresa. El barcode es único por empresa.
	GetByCompanyAndBarcode(companyID, barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	ListByStore(storeID string) ([]*entity.Product, error)
	Delete(id string) error
}
