package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventorySvc *inventory.Service
	ProductUC    *usecase.ProductUseCase
	AuthUC       *auth.AuthUseCase
	UserUC       *usecase.UserUseCase
	JWTSecret    string
	Logger       *logger.Logger
	Service      ServiceInfo
}

// Router registra middlewares y rutas de la API.
//
// Orden de la cadena: recover → requestid → log de la petición → AuthMiddleware →
// RequirePermission → ValidateBody → handler.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger.Component("http")

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))

	app.Get("/health", NewHealthHandler(deps.Service).Health)

	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", ValidateBody[dto.LoginRequest](), authHandler.Login)
	authGroup.Get("/me", authn, authHandler.Me)

	// Inventory: las rutas de reportes van antes de /:produto_id
	inv := NewInventoryHandler(deps.InventorySvc, log)
	read := RequirePermission(entity.PermissionStockRead)
	write := RequirePermission(entity.PermissionStockWrite)
	invGroup := api.Group("/inventory", authn)
	invGroup.Post("/", write, ValidateBody[dto.CreateInventoryRequest](), inv.Create)
	invGroup.Get("/", read, inv.List)
	invGroup.Get("/reports/low-stock", read, inv.LowStockReport)
	invGroup.Get("/reports/low-stock.pdf", read, inv.LowStockReportPDF)
	invGroup.Get("/reports/out-of-stock", read, inv.OutOfStockReport)
	invGroup.Get("/reports/summary", read, inv.Summary)
	invGroup.Get("/:produto_id", read, inv.GetByProductID)
	invGroup.Get("/:produto_id/availability", read, inv.CheckAvailability)
	invGroup.Get("/:produto_id/movements", read, inv.ListMovements)
	invGroup.Post("/:produto_id/add", write, ValidateBody[dto.StockMovementRequest](), inv.AddStock)
	invGroup.Post("/:produto_id/remove", write, ValidateBody[dto.StockMovementRequest](), inv.RemoveStock)
	invGroup.Post("/:produto_id/release", write, ValidateBody[dto.StockMovementRequest](), inv.ReleaseReservation)
	invGroup.Post("/:produto_id/adjust", write, ValidateBody[dto.AdjustStockRequest](), inv.AdjustStock)
	invGroup.Put("/:produto_id/minimum-level", write, ValidateBody[dto.UpdateMinimumLevelRequest](), inv.UpdateMinimumLevel)
	invGroup.Put("/:produto_id/unit-of-measure", write, ValidateBody[dto.UpdateUnitOfMeasureRequest](), inv.UpdateUnitOfMeasure)

	// Products
	products := NewProductHandler(deps.ProductUC, log)
	prodGroup := api.Group("/products", authn)
	prodGroup.Post("/", RequirePermission(entity.PermissionProductsWrite), ValidateBody[dto.CreateProductRequest](), products.Create)
	prodGroup.Get("/", RequirePermission(entity.PermissionProductsRead), products.List)
	prodGroup.Get("/:id", RequirePermission(entity.PermissionProductsRead), products.GetByID)
	prodGroup.Put("/:id", RequirePermission(entity.PermissionProductsWrite), ValidateBody[dto.UpdateProductRequest](), products.Update)
}
