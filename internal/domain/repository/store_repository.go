package repository

import "github.com/kazuo-app/kazuo-back/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	Update(store *entity.Store) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Store, error)
	ListByUser(userID string) ([]*entity.Store, error)
	Delete(id string) error
}
