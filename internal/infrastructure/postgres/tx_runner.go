package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// stockTxOptions: READ COMMITTED basta porque cada mutación bloquea su fila con
// GetByProductIDForUpdate antes de leer las cantidades.
var stockTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}

// TxRunner abre una transacción por escritura de estoque (registro + movimiento).
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool, opts: stockTxOptions}
}

// Run entrega a fn repositorios atados a la tx. pgx.BeginTxFunc hace Commit si fn
// devuelve nil y Rollback en cualquier otro caso; el error de fn llega sin envolver
// para que errors.As siga encontrando los errores de dominio.
func (r *TxRunner) Run(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, r.pool, r.opts, func(tx pgx.Tx) error {
		fnErr = fn(NewInventoryRepository(tx), NewStockMovementRepository(tx), NewProductRepository(tx))
		return fnErr
	})
	switch {
	case err == nil:
		return nil
	case fnErr != nil:
		return fnErr
	default:
		return fmt.Errorf("transacción de estoque: %w", err)
	}
}
