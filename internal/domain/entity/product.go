package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Product agregado de producto. Relacionado con InventoryRecord por ID, sin poseerlo.
type Product struct {
	id           string
	sku          SKU
	name         string
	description  string
	category     string
	unit         UnitOfMeasure
	minimumLevel int
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// ProductAttributes campos editables de Product.
type ProductAttributes struct {
	Name         string
	Description  string
	Category     string
	Unit         UnitOfMeasure
	MinimumLevel int
	Active       bool
}

// NewProduct crea un producto. El SKU llega ya validado (ParseSKU en la frontera).
func NewProduct(sku SKU, attrs ProductAttributes) (*Product, error) {
	if sku.IsZero() {
		return nil, domain.NewValidationError("SKU es requerido")
	}
	now := time.Now().UTC()
	p := &Product{
		id:        uuid.New().String(),
		sku:       sku,
		createdAt: now,
	}
	if err := p.apply(attrs); err != nil {
		return nil, err
	}
	p.updatedAt = now
	return p, nil
}

// RestoreProduct reconstruye un producto persistido (uso exclusivo de repositorios).
func RestoreProduct(id string, sku SKU, attrs ProductAttributes, createdAt, updatedAt time.Time) *Product {
	return &Product{
		id:           id,
		sku:          sku,
		name:         attrs.Name,
		description:  attrs.Description,
		category:     attrs.Category,
		unit:         attrs.Unit,
		minimumLevel: attrs.MinimumLevel,
		active:       attrs.Active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Update reemplaza los campos editables con las mismas reglas de la construcción.
func (p *Product) Update(attrs ProductAttributes) error {
	if err := p.apply(attrs); err != nil {
		return err
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

func (p *Product) apply(attrs ProductAttributes) error {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return domain.NewValidationError("el nombre del producto no puede estar vacío")
	}
	category := strings.TrimSpace(attrs.Category)
	if category == "" {
		return domain.NewValidationError("la categoría del producto no puede estar vacía")
	}
	if !attrs.Unit.Valid() {
		return domain.NewValidationError("unidad de medida inválida: %q", attrs.Unit)
	}
	if attrs.MinimumLevel < 0 {
		return domain.NewValidationError("el nivel mínimo no puede ser negativo")
	}
	if attrs.MinimumLevel > MaxQuantity {
		return domain.NewValidationError("el nivel mínimo no puede superar %d", MaxQuantity)
	}
	p.name = name
	p.description = strings.TrimSpace(attrs.Description)
	p.category = category
	p.unit = attrs.Unit
	p.minimumLevel = attrs.MinimumLevel
	p.active = attrs.Active
	return nil
}

func (p *Product) ID() string                   { return p.id }
func (p *Product) SKU() SKU                     { return p.sku }
func (p *Product) Name() string                 { return p.name }
func (p *Product) Description() string          { return p.description }
func (p *Product) Category() string             { return p.category }
func (p *Product) UnitOfMeasure() UnitOfMeasure { return p.unit }
func (p *Product) MinimumLevel() int            { return p.minimumLevel }
func (p *Product) Active() bool                 { return p.active }
func (p *Product) CreatedAt() time.Time         { return p.createdAt }
func (p *Product) UpdatedAt() time.Time         { return p.updatedAt }

// Attributes devuelve una copia de los campos editables.
func (p *Product) Attributes() ProductAttributes {
	return ProductAttributes{
		Name:         p.name,
		Description:  p.description,
		Category:     p.category,
		Unit:         p.unit,
		MinimumLevel: p.minimumLevel,
		Active:       p.active,
	}
}
