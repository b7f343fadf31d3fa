package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, current_quantity, reserved_quantity, minimum_level, unit_of_measure, updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de estoque. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create persiste un registro nuevo. Ya existe uno para el producto → domain.ErrDuplicate.
func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rec.ID(), rec.ProductID(), rec.CurrentQuantity(), rec.ReservedQuantity(),
		rec.MinimumLevel(), rec.UnitOfMeasure().String(), rec.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByProductID obtiene el registro del producto.
func (r *InventoryRepo) GetByProductID(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE product_id = $1`
	return r.getOne(ctx, "get inventory record", query, productID)
}

// GetByProductIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records WHERE product_id = $1 FOR UPDATE`
	return r.getOne(ctx, "get inventory record for update", query, productID)
}

// Update persiste el estado del agregado. Los CHECK de la tabla repiten los invariantes.
func (r *InventoryRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory_records
		SET current_quantity = $2, reserved_quantity = $3, minimum_level = $4, unit_of_measure = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rec.ID(), rec.CurrentQuantity(), rec.ReservedQuantity(), rec.MinimumLevel(),
		rec.UnitOfMeasure().String(), rec.UpdatedAt(),
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewBusinessRuleError("el estoque resultante viola las restricciones de cantidad")
		}
		return fmt.Errorf("update inventory record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List página ordenada por product_id.
func (r *InventoryRepo) List(ctx context.Context, skip, limit int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records ORDER BY product_id LIMIT $1 OFFSET $2`
	return r.list(ctx, "list inventory records", query, limit, skip)
}

// Count total de registros.
func (r *InventoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory records: %w", err)
	}
	return n, nil
}

// ListBelowMinimum registros con current_quantity <= minimum_level.
func (r *InventoryRepo) ListBelowMinimum(ctx context.Context) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records
		WHERE current_quantity <= minimum_level ORDER BY product_id`
	return r.list(ctx, "list low stock", query)
}

// ListOutOfStock registros con current_quantity = 0.
func (r *InventoryRepo) ListOutOfStock(ctx context.Context) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records
		WHERE current_quantity = 0 ORDER BY product_id`
	return r.list(ctx, "list out of stock", query)
}

// Totals agregados en una sola consulta.
func (r *InventoryRepo) Totals(ctx context.Context) (repository.InventoryTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(current_quantity), 0),
		       COALESCE(SUM(reserved_quantity), 0),
		       COUNT(*) FILTER (WHERE current_quantity <= minimum_level),
		       COUNT(*) FILTER (WHERE current_quantity = 0)
		FROM inventory_records`
	var t repository.InventoryTotals
	err := r.q.QueryRow(ctx, query).Scan(
		&t.TotalProducts, &t.TotalQuantity, &t.TotalReserved, &t.LowStockCount, &t.OutOfStockCount,
	)
	if err != nil {
		return repository.InventoryTotals{}, fmt.Errorf("inventory totals: %w", err)
	}
	return t, nil
}

func (r *InventoryRepo) getOne(ctx context.Context, op, query string, args ...any) (*entity.InventoryRecord, error) {
	rec, err := scanInventoryRecord(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

func (r *InventoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.InventoryRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.InventoryRecord, 0)
	for rows.Next() {
		rec, err := scanInventoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanInventoryRecord(row rowScanner) (*entity.InventoryRecord, error) {
	var (
		id, productID, unit        string
		current, reserved, minimum int
		updatedAt                  time.Time
	)
	if err := row.Scan(&id, &productID, &current, &reserved, &minimum, &unit, &updatedAt); err != nil {
		return nil, err
	}
	return entity.RestoreInventoryRecord(id, productID, current, reserved, minimum, entity.UnitOfMeasure(unit), updatedAt.UTC()), nil
}
