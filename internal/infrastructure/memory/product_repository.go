package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository en memoria.
type ProductRepo struct {
	store *Store
	tx    *state
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.store.access(r.tx, true, func(st *state) error {
		if _, ok := st.skus[p.SKU().String()]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID()] = *p
		st.skus[p.SKU().String()] = p.ID()
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.access(r.tx, false, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku entity.SKU) (*entity.Product, error) {
	var out *entity.Product
	err := r.store.access(r.tx, false, func(st *state) error {
		if id, ok := st.skus[sku.String()]; ok {
			p := st.products[id]
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.store.access(r.tx, true, func(st *state) error {
		if _, ok := st.products[p.ID()]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID()] = *p
		return nil
	})
}

// List ordena por fecha de creación descendente, como el adaptador PostgreSQL.
func (r *ProductRepo) List(_ context.Context, skip, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.store.access(r.tx, false, func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, &p)
		}
		sort.Slice(all, func(i, j int) bool {
			if !all[i].CreatedAt().Equal(all[j].CreatedAt()) {
				return all[i].CreatedAt().After(all[j].CreatedAt())
			}
			return all[i].SKU().String() < all[j].SKU().String()
		})
		out = page(all, skip, limit)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.store.access(r.tx, false, func(st *state) error {
		n = len(st.products)
		return nil
	})
	return n, err
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	err := r.store.access(r.tx, false, func(st *state) error {
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				out[id] = &p
			}
		}
		return nil
	})
	return out, err
}
