package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de estoque (protegido).
type InventoryHandler struct {
	svc  *inventory.Service
	errs errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *inventory.Service, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, errs: errorResponder{log: log}}
}

// Create godoc
// @Summary      Crear registro de estoque
// @Description  Unidad y nivel mínimo se heredan del producto si se omiten.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id y cantidades iniciales"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	in := Body[dto.CreateInventoryRequest](c)
	out, err := h.svc.CreateInventory(c.Context(), *in)
	if err != nil {
		return h.errs.respond(c, "inventory.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar estoque
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        skip   query  int  false  "Desplazamiento (>= 0)"  default(0)
// @Param        limit  query  int  false  "Tamaño de página (1-1000)"  default(100)
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return h.errs.respond(c, "inventory.list", err)
	}
	out, err := h.svc.List(c.Context(), page.Skip, page.Limit)
	if err != nil {
		return h.errs.respond(c, "inventory.list", err)
	}
	return c.JSON(out)
}

// GetByProductID godoc
// @Summary      Obtener estoque de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        produto_id  path  string  true  "ID del producto (UUID)"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id} [get]
func (h *InventoryHandler) GetByProductID(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.get", err)
	}
	out, err := h.svc.GetByProductID(c.Context(), productID)
	if err != nil {
		return h.errs.respond(c, "inventory.get", err)
	}
	return c.JSON(out)
}

// CheckAvailability godoc
// @Summary      Verificar disponibilidad
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        produto_id  path   string  true  "ID del producto (UUID)"
// @Param        quantity    query  int     true  "Cantidad requerida (> 0)"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/availability [get]
func (h *InventoryHandler) CheckAvailability(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.availability", err)
	}
	out, err := h.svc.CheckAvailability(c.Context(), productID, c.QueryInt("quantity", 0))
	if err != nil {
		return h.errs.respond(c, "inventory.availability", err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Movimientos del producto, más recientes primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        produto_id  path   string  true   "ID del producto (UUID)"
// @Param        skip        query  int     false  "Desplazamiento (>= 0)"  default(0)
// @Param        limit       query  int     false  "Tamaño de página (1-1000)"  default(100)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.movements", err)
	}
	page, err := parsePage(c)
	if err != nil {
		return h.errs.respond(c, "inventory.movements", err)
	}
	out, err := h.svc.ListMovements(c.Context(), productID, page.Skip, page.Limit)
	if err != nil {
		return h.errs.respond(c, "inventory.movements", err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Entrada de estoque
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                    true  "ID del producto (UUID)"
// @Param        body        body  dto.StockMovementRequest  true  "quantity > 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	return h.movement(c, "inventory.add", h.svc.AddStock)
}

// RemoveStock godoc
// @Summary      Salida de estoque
// @Description  Solo puede salir la cantidad disponible (actual - reservada).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                    true  "ID del producto (UUID)"
// @Param        body        body  dto.StockMovementRequest  true  "quantity > 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/remove [post]
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	return h.movement(c, "inventory.remove", h.svc.RemoveStock)
}

// ReleaseReservation godoc
// @Summary      Liberar reserva
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                    true  "ID del producto (UUID)"
// @Param        body        body  dto.StockMovementRequest  true  "quantity > 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/release [post]
func (h *InventoryHandler) ReleaseReservation(c *fiber.Ctx) error {
	return h.movement(c, "inventory.release", h.svc.ReleaseReservation)
}

// AdjustStock godoc
// @Summary      Ajuste de inventario
// @Description  Fija la cantidad actual; no puede quedar por debajo de la reservada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                  true  "ID del producto (UUID)"
// @Param        body        body  dto.AdjustStockRequest  true  "new_quantity >= 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.adjust", err)
	}
	out, err := h.svc.AdjustStock(c.Context(), productID, GetUserID(c), *Body[dto.AdjustStockRequest](c))
	if err != nil {
		return h.errs.respond(c, "inventory.adjust", err)
	}
	return c.JSON(out)
}

// UpdateMinimumLevel godoc
// @Summary      Actualizar nivel mínimo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                         true  "ID del producto (UUID)"
// @Param        body        body  dto.UpdateMinimumLevelRequest  true  "minimum_level >= 0"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/minimum-level [put]
func (h *InventoryHandler) UpdateMinimumLevel(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.minimum_level", err)
	}
	out, err := h.svc.UpdateMinimumLevel(c.Context(), productID, *Body[dto.UpdateMinimumLevelRequest](c))
	if err != nil {
		return h.errs.respond(c, "inventory.minimum_level", err)
	}
	return c.JSON(out)
}

// UpdateUnitOfMeasure godoc
// @Summary      Actualizar unidad de medida
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        produto_id  path  string                          true  "ID del producto (UUID)"
// @Param        body        body  dto.UpdateUnitOfMeasureRequest  true  "unit_of_measure"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{produto_id}/unit-of-measure [put]
func (h *InventoryHandler) UpdateUnitOfMeasure(c *fiber.Ctx) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, "inventory.unit_of_measure", err)
	}
	out, err := h.svc.UpdateUnitOfMeasure(c.Context(), productID, *Body[dto.UpdateUnitOfMeasureRequest](c))
	if err != nil {
		return h.errs.respond(c, "inventory.unit_of_measure", err)
	}
	return c.JSON(out)
}

// LowStockReport godoc
// @Summary      Reporte de bajo estoque
// @Description  Productos con estoque actual <= nivel mínimo, con cantidad sugerida de reposición.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/inventory/reports/low-stock [get]
func (h *InventoryHandler) LowStockReport(c *fiber.Ctx) error {
	out, err := h.svc.LowStockReport(c.Context())
	if err != nil {
		return h.errs.respond(c, "inventory.report_low_stock", err)
	}
	return c.JSON(out)
}

// LowStockReportPDF godoc
// @Summary      Reporte de bajo estoque en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/reports/low-stock.pdf [get]
func (h *InventoryHandler) LowStockReportPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.svc.LowStockReportPDF(c.Context())
	if errors.Is(err, inventory.ErrPDFUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PDF_UNAVAILABLE", Message: err.Error()})
	}
	if err != nil {
		return h.errs.respond(c, "inventory.report_low_stock_pdf", err)
	}
	filename := fmt.Sprintf("estoque-bajo-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// OutOfStockReport godoc
// @Summary      Reporte de productos sin estoque
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportResponse
// @Router       /api/inventory/reports/out-of-stock [get]
func (h *InventoryHandler) OutOfStockReport(c *fiber.Ctx) error {
	out, err := h.svc.OutOfStockReport(c.Context())
	if err != nil {
		return h.errs.respond(c, "inventory.report_out_of_stock", err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del estoque
// @Description  healthy_stock_items = total_items - low_stock_items. Los productos sin estoque ya cuentan como bajo mínimo, por eso no se restan dos veces.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/inventory/reports/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.svc.Summary(c.Context())
	if err != nil {
		return h.errs.respond(c, "inventory.report_summary", err)
	}
	return c.JSON(out)
}

type movementFunc func(ctx context.Context, productID, userID string, in dto.StockMovementRequest) (*dto.InventoryResponse, error)

// movement add / remove / release comparten forma: produto_id + StockMovementRequest.
func (h *InventoryHandler) movement(c *fiber.Ctx, op string, fn movementFunc) error {
	productID, err := uuidParam(c, "produto_id")
	if err != nil {
		return h.errs.respond(c, op, err)
	}
	out, err := fn(c.Context(), productID, GetUserID(c), *Body[dto.StockMovementRequest](c))
	if err != nil {
		return h.errs.respond(c, op, err)
	}
	return c.JSON(out)
}
