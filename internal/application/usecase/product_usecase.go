package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El estoque se maneja en inventory.Service.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. SKU duplicado → BusinessRuleError.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku, err := entity.ParseSKU(in.SKU)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateSKU(sku)
	}
	unit, err := entity.ParseUnitOfMeasure(in.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	product, err := entity.NewProduct(sku, entity.ProductAttributes{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Unit:         unit,
		MinimumLevel: in.MinimumLevel,
		Active:       active,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		// carrera entre el GetBySKU y el INSERT: lo resuelve el índice único
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, duplicateSKU(sku)
		}
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// Update actualización parcial: solo cambian los campos presentes. El SKU es inmutable.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	attrs := product.Attributes()
	if in.Name != nil {
		attrs.Name = *in.Name
	}
	if in.Description != nil {
		attrs.Description = *in.Description
	}
	if in.Category != nil {
		attrs.Category = *in.Category
	}
	if in.UnitOfMeasure != nil {
		if attrs.Unit, err = entity.ParseUnitOfMeasure(*in.UnitOfMeasure); err != nil {
			return nil, err
		}
	}
	if in.MinimumLevel != nil {
		attrs.MinimumLevel = *in.MinimumLevel
	}
	if in.Active != nil {
		attrs.Active = *in.Active
	}
	if err := product.Update(attrs); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación (más recientes primero).
func (uc *ProductUseCase) List(ctx context.Context, skip, limit int) (*dto.ProductListResponse, error) {
	if skip < 0 || limit < 1 || limit > dto.MaxLimit {
		return nil, domain.NewValidationError("paginación inválida: skip >= 0 y 1 <= limit <= %d", dto.MaxLimit)
	}
	list, err := uc.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: skip, Limit: limit, Total: total},
	}, nil
}

func duplicateSKU(sku entity.SKU) error {
	return domain.NewBusinessRuleError("ya existe un producto con SKU %s", sku)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID(),
		SKU:           p.SKU().String(),
		Name:          p.Name(),
		Description:   p.Description(),
		Category:      p.Category(),
		UnitOfMeasure: p.UnitOfMeasure().String(),
		MinimumLevel:  p.MinimumLevel(),
		Active:        p.Active(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
