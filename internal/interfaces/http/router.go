package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/kazuo-app/kazuo-back/internal/application/auth"
	"github.com/kazuo-app/kazuo-back/internal/application/inventory"
	"github.com/kazuo-app/kazuo-back/internal/application/usecase"
	"github.com/kazuo-app/kazuo-back/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC *usecase.CompanyUseCase
	StoreUC   *usecase.StoreUseCase
	ProductUC *usecase.ProductUseCase
	StatsUC   *usecase.StatsUseCase
	Transfer  *inventory.TransferStockUseCase
	History   *inventory.MovementHistoryUseCase
	AuthUC    *auth.AuthUseCase
	WSHandler func(*websocket.Conn)
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/permissions", authHandler.Permissions)

	// Companies (registro público; el resto protegido)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.Update)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, solo admin)
	protected.Put("/users/:id/permissions", RequireRole("admin"), authHandler.UpdatePermissions)

	// Stores (protegido; mutaciones requieren el permiso de bodegas)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", RequirePermission(entity.PermManageStores), storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", RequirePermission(entity.PermManageStores), storeHandler.Update)
	stores.Delete("/:id", RequirePermission(entity.PermManageStores), storeHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.Transfer, deps.History)
	products.Post("/", RequirePermission(entity.PermManageProducts), productHandler.Create)
	products.Get("/", productHandler.List)
	// Registrada antes de /:id para que "transfer-stock" no se capture como id.
	products.Post("/transfer-stock", inventoryHandler.TransferStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", inventoryHandler.Movements)
	products.Post("/:id/restock", productHandler.Restock)
	stores.Get("/:id/products", productHandler.ListByStore)

	// Statistics (protegido)
	statsHandler := NewStatsHandler(deps.StatsUC)
	protected.Get("/statistics", statsHandler.ByCompany)

	// Canal push websocket (protegido; el upgrade conserva los Locals del auth)
	if deps.WSHandler != nil {
		app.Use("/ws", AuthMiddleware(deps.JWTSecret), func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws", websocket.New(deps.WSHandler))
	}
}
