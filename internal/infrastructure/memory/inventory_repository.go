package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo InventoryRepository en memoria.
type InventoryRepo struct {
	store *Store
	tx    *state
}

func (r *InventoryRepo) Create(_ context.Context, record *entity.InventoryRecord) error {
	return r.store.access(r.tx, true, func(st *state) error {
		if _, ok := st.inventory[record.ProductID()]; ok {
			return domain.ErrDuplicate
		}
		st.inventory[record.ProductID()] = *record
		return nil
	})
}

func (r *InventoryRepo) GetByProductID(_ context.Context, productID string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.store.access(r.tx, false, func(st *state) error {
		if rec, ok := st.inventory[productID]; ok {
			out = &rec
		}
		return nil
	})
	return out, err
}

// GetByProductIDForUpdate dentro de Run el almacén ya está bloqueado.
func (r *InventoryRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	return r.GetByProductID(ctx, productID)
}

func (r *InventoryRepo) Update(_ context.Context, record *entity.InventoryRecord) error {
	return r.store.access(r.tx, true, func(st *state) error {
		if _, ok := st.inventory[record.ProductID()]; !ok {
			return domain.ErrNotFound
		}
		st.inventory[record.ProductID()] = *record
		return nil
	})
}

func (r *InventoryRepo) List(_ context.Context, skip, limit int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	err := r.store.access(r.tx, false, func(st *state) error {
		out = page(sorted(st, nil), skip, limit)
		return nil
	})
	return out, err
}

func (r *InventoryRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.store.access(r.tx, false, func(st *state) error {
		n = len(st.inventory)
		return nil
	})
	return n, err
}

func (r *InventoryRepo) ListBelowMinimum(_ context.Context) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	err := r.store.access(r.tx, false, func(st *state) error {
		out = sorted(st, (*entity.InventoryRecord).IsBelowMinimum)
		return nil
	})
	return out, err
}

func (r *InventoryRepo) ListOutOfStock(_ context.Context) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	err := r.store.access(r.tx, false, func(st *state) error {
		out = sorted(st, (*entity.InventoryRecord).IsOutOfStock)
		return nil
	})
	return out, err
}

func (r *InventoryRepo) Totals(_ context.Context) (repository.InventoryTotals, error) {
	var t repository.InventoryTotals
	err := r.store.access(r.tx, false, func(st *state) error {
		for _, rec := range st.inventory {
			t.TotalProducts++
			t.TotalQuantity += rec.CurrentQuantity()
			t.TotalReserved += rec.ReservedQuantity()
			if rec.IsBelowMinimum() {
				t.LowStockCount++
			}
			if rec.IsOutOfStock() {
				t.OutOfStockCount++
			}
		}
		return nil
	})
	return t, err
}

// sorted copias de los registros que cumplen keep (nil = todos), ordenadas por product_id.
func sorted(st *state, keep func(*entity.InventoryRecord) bool) []*entity.InventoryRecord {
	out := make([]*entity.InventoryRecord, 0, len(st.inventory))
	for _, rec := range st.inventory {
		if keep != nil && !keep(&rec) {
			continue
		}
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID() < out[j].ProductID() })
	return out
}
