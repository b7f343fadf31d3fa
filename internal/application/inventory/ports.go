package inventory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad de cada escritura de estoque (registro + movimiento).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ReportPDFGenerator renderiza el reporte de bajo estoque en PDF.
type ReportPDFGenerator interface {
	GenerateLowStockReport(report *dto.StockReportResponse) ([]byte, error)
}
