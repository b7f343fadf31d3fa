package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// InventoryRepository define el puerto de persistencia para InventoryRecord (DIP).
// Las lecturas sin resultado devuelven (nil, nil).
type InventoryRepository interface {
	Create(ctx context.Context, record *entity.InventoryRecord) error
	GetByProductID(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	// GetByProductIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error)
	Update(ctx context.Context, record *entity.InventoryRecord) error
	List(ctx context.Context, skip, limit int) ([]*entity.InventoryRecord, error)
	Count(ctx context.Context) (int, error)
	// ListBelowMinimum registros con current <= minimum, ordenados por producto.
	ListBelowMinimum(ctx context.Context) ([]*entity.InventoryRecord, error)
	// ListOutOfStock registros con current = 0.
	ListOutOfStock(ctx context.Context) ([]*entity.InventoryRecord, error)
	// Totals agregados para el resumen de estoque.
	Totals(ctx context.Context) (InventoryTotals, error)
}

// InventoryTotals resultado crudo del resumen.
type InventoryTotals struct {
	TotalProducts   int
	TotalQuantity   int
	TotalReserved   int
	LowStockCount   int
	OutOfStockCount int
}
