package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
	"github.com/kazuo-app/kazuo-back/internal/notification"
)

// productNotifier es el contrato mínimo que necesita el caso de uso para
// emitir eventos post-commit. Lo implementa *notification.Dispatcher; el uso
// de interfaz evita el import circular.
type productNotifier interface {
	PublishProductEvent(kind string, product *entity.Product, detail string)
}

// ProductUseCase casos de uso CRUD para productos. El stock por bodega se
// maneja vía movimientos (inventory), no aquí.
type ProductUseCase struct {
	repo      repository.ProductRepository
	storeRepo repository.StoreRepository
	guard     *guard.Guard
	stockIn   *inventory.StockEntryUseCase
	notifier  productNotifier // puede ser nil
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	g *guard.Guard,
	stockIn *inventory.StockEntryUseCase,
	notifier productNotifier,
) *ProductUseCase {
	return &ProductUseCase{
		repo:      repo,
		storeRepo: storeRepo,
		guard:     g,
		stockIn:   stockIn,
		notifier:  notifier,
	}
}

// generateBarcode genera un código de barras de 12 dígitos: los últimos 9 del
// timestamp más 3 aleatorios.
func generateBarcode() string {
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 9 {
		ts = ts[len(ts)-9:]
	}
	return fmt.Sprintf("%s%03d", ts, rand.Intn(1000))
}

// Create crea un producto propiedad del principal. Si viene StoreID con
// Quantity > 0 registra el stock inicial como movimiento IN.
func (uc *ProductUseCase) Create(ctx context.Context, principal *guard.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	barcode := in.Barcode
	if barcode == "" {
		barcode = generateBarcode()
	}

	existing, err := uc.repo.GetByCompanyAndBarcode(principal.CompanyID, barcode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	unit := in.Unit
	if unit == "" {
		unit = "unids"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   principal.CompanyID,
		UserID:      principal.UserID,
		Barcode:     barcode,
		Name:        in.Name,
		Unit:        unit,
		InPrice:     in.InPrice,
		OutPrice:    in.OutPrice,
		MinStock:    in.MinStock,
		MaxCapacity: in.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}

	if in.StoreID != "" && in.Quantity > 0 {
		store, err := uc.storeRepo.GetByID(in.StoreID)
		if err != nil {
			return nil, err
		}
		if store == nil || store.CompanyID != principal.CompanyID {
			return nil, domain.ErrNotFound
		}
		if _, err := uc.stockIn.AddStock(ctx, product.ID, in.StoreID, principal.UserID, in.Quantity); err != nil {
			return nil, err
		}
	}

	if uc.notifier != nil {
		uc.notifier.PublishProductEvent(notification.KindCreate, product, "El producto fue creado exitosamente.")
	}
	return toProductResponse(product), nil
}

// Restock registra una entrada de compra sobre un producto del principal:
// suma stock en la bodega indicada y, si viene un costo unitario positivo,
// actualiza el precio de compra al promedio ponderado.
func (uc *ProductUseCase) Restock(ctx context.Context, principal *guard.Principal, ref guard.ProductRef, in dto.RestockProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.guard.AdmitProduct(principal, ref, entity.PermManageInventory)
	if err != nil {
		return nil, err
	}

	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.CompanyID != principal.CompanyID {
		return nil, domain.ErrNotFound
	}

	_, newCost, err := uc.stockIn.Restock(ctx, product, in.StoreID, principal.UserID, in.Quantity, in.UnitCost)
	if err != nil {
		return nil, err
	}

	if in.UnitCost.IsPositive() {
		product.InPrice = newCost
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(product); err != nil {
			return nil, err
		}
	}

	if uc.notifier != nil {
		uc.notifier.PublishProductEvent(notification.KindUpdate, product, "Se registró una entrada de stock del producto.")
	}
	return toProductResponse(product), nil
}

// Update modifica un producto del principal (guard de propiedad) y notifica.
func (uc *ProductUseCase) Update(principal *guard.Principal, ref guard.ProductRef, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.guard.AdmitProduct(principal, ref, entity.PermManageProducts)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.InPrice != nil {
		product.InPrice = *in.InPrice
	}
	if in.OutPrice != nil {
		product.OutPrice = *in.OutPrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.MaxCapacity != nil {
		product.MaxCapacity = *in.MaxCapacity
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		uc.notifier.PublishProductEvent(notification.KindUpdate, product, "Se han realizado cambios en los detalles del producto.")
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del principal (guard de propiedad) y notifica.
func (uc *ProductUseCase) Delete(principal *guard.Principal, ref guard.ProductRef) error {
	product, err := uc.guard.AdmitProduct(principal, ref, entity.PermManageProducts)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(product.ID); err != nil {
		return err
	}
	if uc.notifier != nil {
		uc.notifier.PublishProductEvent(notification.KindDelete, product, "El producto ha sido eliminado permanentemente del sistema.")
	}
	return nil
}

// GetByID obtiene un producto de la empresa del principal.
func (uc *ProductUseCase) GetByID(principal *guard.Principal, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != principal.CompanyID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa con paginación.
func (uc *ProductUseCase) List(principal *guard.Principal, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(principal.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListByStore lista los productos con stock en una bodega de la empresa.
func (uc *ProductUseCase) ListByStore(principal *guard.Principal, storeID string) ([]dto.ProductResponse, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil || store.CompanyID != principal.CompanyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		UserID:      p.UserID,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Unit:        p.Unit,
		InPrice:     p.InPrice,
		OutPrice:    p.OutPrice,
		MinStock:    p.MinStock,
		MaxCapacity: p.MaxCapacity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
