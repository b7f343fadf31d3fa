package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku entity.SKU) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, skip, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	// GetByIDs devuelve los productos encontrados indexados por ID (para enriquecer reportes).
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}
