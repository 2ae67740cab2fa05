package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para bodegas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una bodega para la empresa del principal.
func (uc *StoreUseCase) Create(principal *guard.Principal, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		CompanyID: principal.CompanyID,
		UserID:    principal.UserID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una bodega; una bodega de otra empresa no se revela.
func (uc *StoreUseCase) GetByID(principal *guard.Principal, id string) (*dto.StoreResponse, error) {
	store, err := uc.resolveOwned(principal, id)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Update renombra una bodega. La identidad es inmutable.
func (uc *StoreUseCase) Update(principal *guard.Principal, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.resolveOwned(principal, id)
	if err != nil {
		return nil, err
	}
	if store.UserID != principal.UserID && principal.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista las bodegas de la empresa con paginación.
func (uc *StoreUseCase) List(principal *guard.Principal, limit, offset int) (*dto.StoreListResponse, error) {
	list, err := uc.repo.ListByCompany(principal.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega del dueño (o admin).
func (uc *StoreUseCase) Delete(principal *guard.Principal, id string) error {
	store, err := uc.resolveOwned(principal, id)
	if err != nil {
		return err
	}
	if store.UserID != principal.UserID && principal.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func (uc *StoreUseCase) resolveOwned(principal *guard.Principal, id string) (*entity.Store, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil || store.CompanyID != principal.CompanyID {
		return nil, domain.ErrNotFound
	}
	return store, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		UserID:    s.UserID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
