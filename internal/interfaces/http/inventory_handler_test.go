package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuo-app/kazuo-back/internal/application/dto"
	"github.com/kazuo-app/kazuo-back/internal/application/guard"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/domain"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
	"github.com/kazuo-app/kazuo-back/internal/domain/repository"
	apphttp "github.com/kazuo-app/kazuo-back/internal/interfaces/http"
	"github.com/kazuo-app/kazuo-back/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: app Fiber completa (auth + ruta) sobre repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	trProductID = "33333333-3333-4333-8333-333333333333"
	trBarcode   = "770123456001"
	trStoreA    = "11111111-1111-4111-8111-111111111111"
	trStoreB    = "22222222-2222-4222-8222-222222222222"
)

type trProductRepo struct{ product *entity.Product }

func (r *trProductRepo) Create(*entity.Product) error { return nil }
func (r *trProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		return r.product, nil
	}
	return nil, nil
}
func (r *trProductRepo) GetByCompanyAndBarcode(companyID, barcode string) (*entity.Product, error) {
	if r.product != nil && r.product.CompanyID == companyID && r.product.Barcode == barcode {
		return r.product, nil
	}
	return nil, nil
}
func (r *trProductRepo) Update(*entity.Product) error { return nil }
func (r *trProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *trProductRepo) ListByStore(string) ([]*entity.Product, error) { return nil, nil }
func (r *trProductRepo) Delete(string) error                           { return nil }

type trStoreRepo struct{ stores map[string]*entity.Store }

func (r *trStoreRepo) Create(*entity.Store) error { return nil }
func (r *trStoreRepo) GetByID(id string) (*entity.Store, error) {
	return r.stores[id], nil
}
func (r *trStoreRepo) Update(*entity.Store) error { return nil }
func (r *trStoreRepo) ListByCompany(string, int, int) ([]*entity.Store, error) {
	return nil, nil
}
func (r *trStoreRepo) ListByUser(string) ([]*entity.Store, error) { return nil, nil }
func (r *trStoreRepo) Delete(string) error                        { return nil }

type trStockRepo struct{ stock map[string]*entity.StockEntry }

func stockKey(storeID, productID string) string { return storeID + "|" + productID }

func (r *trStockRepo) Get(storeID, productID string) (*entity.StockEntry, error) {
	return r.stock[stockKey(storeID, productID)], nil
}
func (r *trStockRepo) GetForUpdate(storeID, productID string) (*entity.StockEntry, error) {
	return r.stock[stockKey(storeID, productID)], nil
}
func (r *trStockRepo) Upsert(entry *entity.StockEntry) error {
	r.stock[stockKey(entry.StoreID, entry.ProductID)] = entry
	return nil
}
func (r *trStockRepo) ListByStore(string) ([]*entity.StockEntry, error) { return nil, nil }
func (r *trStockRepo) TotalByProduct(productID string) (int64, error) {
	var total int64
	for _, e := range r.stock {
		if e.ProductID == productID {
			total += e.Quantity
		}
	}
	return total, nil
}

type trMovementRepo struct{ movements []*entity.StockMovement }

func (r *trMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *trMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// trTxRunner ejecuta la función directamente contra los repos en memoria.
// Si conflict es true simula un conflicto de serialización permanente.
type trTxRunner struct {
	stockRepo    *trStockRepo
	movementRepo *trMovementRepo
	conflict     bool
}

func (r *trTxRunner) Run(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	if r.conflict {
		return domain.ErrConcurrencyConflict
	}
	return fn(r.stockRepo, r.movementRepo)
}

type trFixture struct {
	app          *fiber.App
	stockRepo    *trStockRepo
	movementRepo *trMovementRepo
	txRunner     *trTxRunner
}

// newTransferApp arma la ruta POST /api/products/transfer-stock igual que el
// router real: AuthMiddleware delante, handler detrás.
func newTransferApp(t *testing.T, cfg inventory.Config) *trFixture {
	t.Helper()

	productRepo := &trProductRepo{product: &entity.Product{
		ID:        trProductID,
		CompanyID: testCompanyID,
		UserID:    testUserID,
		Barcode:   trBarcode,
		Name:      "Azúcar refinada 1kg",
	}}
	storeRepo := &trStoreRepo{stores: map[string]*entity.Store{
		trStoreA: {ID: trStoreA, CompanyID: testCompanyID, UserID: testUserID, Name: "Bodega Norte"},
		trStoreB: {ID: trStoreB, CompanyID: testCompanyID, UserID: testUserID, Name: "Bodega Sur"},
	}}
	stockRepo := &trStockRepo{stock: map[string]*entity.StockEntry{
		stockKey(trStoreA, trProductID): {StoreID: trStoreA, ProductID: trProductID, Quantity: 50},
	}}
	movementRepo := &trMovementRepo{}
	txRunner := &trTxRunner{stockRepo: stockRepo, movementRepo: movementRepo}

	g := guard.New(productRepo)
	transferUC := inventory.NewTransferStockUseCase(txRunner, g, storeRepo, nil, logger.Nop(), cfg)
	historyUC := inventory.NewMovementHistoryUseCase(g, movementRepo)
	handler := apphttp.NewInventoryHandler(transferUC, historyUC)

	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))
	api.Post("/products/transfer-stock", handler.TransferStock)
	api.Get("/products/:id/movements", handler.Movements)

	return &trFixture{app: app, stockRepo: stockRepo, movementRepo: movementRepo, txRunner: txRunner}
}

func postTransfer(t *testing.T, app *fiber.App, authHeader string, body dto.TransferStockRequest) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/products/transfer-stock", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func validTransferBody() dto.TransferStockRequest {
	return dto.TransferStockRequest{
		SourceStoreID: trStoreA,
		TargetStoreID: trStoreB,
		Barcode:       trBarcode,
		Quantity:      20,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del endpoint de transferencia
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferStock_Exitosa(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{RequireSameCompanyStores: true})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	resp := postTransfer(t, fx.app, auth, validTransferBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.TransferStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "transferencia realizada", body.Message)
	assert.Equal(t, trProductID, body.ProductID)
	assert.Equal(t, "Azúcar refinada 1kg", body.ProductName)
	assert.Equal(t, int64(20), body.Quantity)
	assert.Equal(t, int64(30), body.SourceQuantity)
	assert.Equal(t, int64(20), body.TargetQuantity)

	// El ledger registró la pareja de movimientos
	assert.Len(t, fx.movementRepo.movements, 2)
}

func TestTransferStock_SinToken_Retorna401(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	resp := postTransfer(t, fx.app, "", validTransferBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransferStock_CuerpoInvalido_Retorna400(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	body := validTransferBody()
	body.Quantity = 0 // viola validate:"gt=0"
	resp := postTransfer(t, fx.app, auth, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestTransferStock_MismaBodega_Retorna400(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	body := validTransferBody()
	body.TargetStoreID = body.SourceStoreID
	resp := postTransfer(t, fx.app, auth, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, resp).Code)
}

func TestTransferStock_SinPermiso_Retorna403(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "vendedor", entity.PermViewStatistics)

	resp := postTransfer(t, fx.app, auth, validTransferBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
}

func TestTransferStock_BarcodeDesconocido_Retorna404(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	body := validTransferBody()
	body.Barcode = "000000000000"
	resp := postTransfer(t, fx.app, auth, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestTransferStock_StockInsuficiente_Retorna409(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	body := validTransferBody()
	body.Quantity = 500 // solo hay 50
	resp := postTransfer(t, fx.app, auth, body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, resp).Code)

	// El stock de origen no cambió
	entry := fx.stockRepo.stock[stockKey(trStoreA, trProductID)]
	require.NotNil(t, entry)
	assert.Equal(t, int64(50), entry.Quantity)
}

func TestTransferStock_ConflictoPersistente_Retorna409(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{MaxRetries: 2})
	fx.txRunner.conflict = true
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	resp := postTransfer(t, fx.app, auth, validTransferBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONCURRENCY_CONFLICT", decodeError(t, resp).Code)
}

func TestTransferStock_TimeoutRetorna504(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{Timeout: time.Nanosecond})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	resp := postTransfer(t, fx.app, auth, validTransferBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovements_DevuelveHistorialDelProducto(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	// Generar una transferencia para poblar el libro
	resp := postTransfer(t, fx.app, auth, validTransferBody())
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+trProductID+"/movements", nil)
	req.Header.Set("Authorization", auth)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []entity.StockMovement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, list[0].TransactionID, list[1].TransactionID,
		"ambas filas comparten el mismo id de transacción")
}

func TestMovements_ProductoAjeno_Retorna404(t *testing.T) {
	fx := newTransferApp(t, inventory.Config{})
	auth := tokenFor(t, "bodeguero", entity.PermManageInventory)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+trStoreA+"/movements", nil)
	req.Header.Set("Authorization", auth)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
