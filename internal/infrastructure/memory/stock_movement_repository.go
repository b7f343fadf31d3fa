package memory

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo StockMovementRepository en memoria (append-only).
type StockMovementRepo struct {
	store *Store
	tx    *state
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.store.access(r.tx, true, func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

// ListByProduct recorre en orden inverso de inserción (más reciente primero).
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string, skip, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.store.access(r.tx, false, func(st *state) error {
		var all []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			if st.movements[i].ProductID == productID {
				m := st.movements[i]
				all = append(all, &m)
			}
		}
		out = page(all, skip, limit)
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) CountByProduct(_ context.Context, productID string) (int, error) {
	var n int
	err := r.store.access(r.tx, false, func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				n++
			}
		}
		return nil
	})
	return n, err
}
