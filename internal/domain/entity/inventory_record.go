package entity

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// MaxQuantity tope de cualquier cantidad o nivel; es el rango de INTEGER en postgres.
const MaxQuantity = math.MaxInt32

// InventoryRecord estoque de un producto (uno a uno con Product).
// Invariantes: current >= 0, reserved >= 0, reserved <= current, minimum >= 0.
// Los campos son privados: solo cambian a través de las operaciones del agregado.
type InventoryRecord struct {
	id               string
	productID        string
	currentQuantity  int
	reservedQuantity int
	minimumLevel     int
	unit             UnitOfMeasure
	updatedAt        time.Time
}

// NewInventoryRecord crea el estoque de un producto validando los invariantes.
func NewInventoryRecord(productID string, currentQuantity int, unit UnitOfMeasure, reservedQuantity, minimumLevel int) (*InventoryRecord, error) {
	if productID == "" {
		return nil, domain.NewValidationError("produto_id es requerido")
	}
	if currentQuantity < 0 {
		return nil, domain.NewValidationError("la cantidad actual no puede ser negativa")
	}
	if reservedQuantity < 0 {
		return nil, domain.NewValidationError("la cantidad reservada no puede ser negativa")
	}
	if minimumLevel < 0 {
		return nil, domain.NewValidationError("el nivel mínimo no puede ser negativo")
	}
	if currentQuantity > MaxQuantity || minimumLevel > MaxQuantity {
		return nil, domain.NewValidationError("las cantidades no pueden superar %d", MaxQuantity)
	}
	if reservedQuantity > currentQuantity {
		return nil, domain.NewValidationError("la cantidad reservada no puede superar la cantidad actual")
	}
	if !unit.Valid() {
		return nil, domain.NewValidationError("unidad de medida inválida: %q", unit)
	}
	return &InventoryRecord{
		id:               uuid.New().String(),
		productID:        productID,
		currentQuantity:  currentQuantity,
		reservedQuantity: reservedQuantity,
		minimumLevel:     minimumLevel,
		unit:             unit,
		updatedAt:        time.Now().UTC(),
	}, nil
}

// RestoreInventoryRecord reconstruye un registro persistido (uso exclusivo de repositorios).
func RestoreInventoryRecord(id, productID string, currentQuantity, reservedQuantity, minimumLevel int, unit UnitOfMeasure, updatedAt time.Time) *InventoryRecord {
	return &InventoryRecord{
		id:               id,
		productID:        productID,
		currentQuantity:  currentQuantity,
		reservedQuantity: reservedQuantity,
		minimumLevel:     minimumLevel,
		unit:             unit,
		updatedAt:        updatedAt,
	}
}

func (r *InventoryRecord) ID() string                   { return r.id }
func (r *InventoryRecord) ProductID() string            { return r.productID }
func (r *InventoryRecord) CurrentQuantity() int         { return r.currentQuantity }
func (r *InventoryRecord) ReservedQuantity() int        { return r.reservedQuantity }
func (r *InventoryRecord) MinimumLevel() int            { return r.minimumLevel }
func (r *InventoryRecord) UnitOfMeasure() UnitOfMeasure { return r.unit }
func (r *InventoryRecord) UpdatedAt() time.Time         { return r.updatedAt }

// AvailableQuantity current - reserved; nunca se almacena.
func (r *InventoryRecord) AvailableQuantity() int {
	return r.currentQuantity - r.reservedQuantity
}

// AddStock suma quantity a la cantidad actual.
func (r *InventoryRecord) AddStock(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("la cantidad a agregar debe ser positiva")
	}
	if quantity > MaxQuantity-r.currentQuantity {
		return domain.NewBusinessRuleError(
			"la entrada supera la capacidad máxima. Actual: %d, Solicitado: %d, Máximo: %d",
			r.currentQuantity, quantity, MaxQuantity,
		)
	}
	r.currentQuantity += quantity
	r.touch()
	return nil
}

// RemoveStock resta quantity de la cantidad actual; no puede tocar lo reservado.
func (r *InventoryRecord) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("la cantidad a remover debe ser positiva")
	}
	if quantity > r.AvailableQuantity() {
		return domain.NewBusinessRuleError(
			"stock disponible insuficiente. Disponible: %d, Solicitado: %d",
			r.AvailableQuantity(), quantity,
		)
	}
	r.currentQuantity -= quantity
	r.touch()
	return nil
}

// ReleaseReservation libera quantity unidades reservadas.
func (r *InventoryRecord) ReleaseReservation(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("la cantidad a liberar debe ser positiva")
	}
	if quantity > r.reservedQuantity {
		return domain.NewBusinessRuleError(
			"no se puede liberar más de lo reservado. Reservado: %d, Solicitado: %d",
			r.reservedQuantity, quantity,
		)
	}
	r.reservedQuantity -= quantity
	r.touch()
	return nil
}

// AdjustStock fija la cantidad actual en newQuantity (valor absoluto, no delta).
func (r *InventoryRecord) AdjustStock(newQuantity int) error {
	if newQuantity < 0 {
		return domain.NewValidationError("la nueva cantidad no puede ser negativa")
	}
	if newQuantity > MaxQuantity {
		return domain.NewValidationError("la nueva cantidad no puede superar %d", MaxQuantity)
	}
	if newQuantity < r.reservedQuantity {
		return domain.NewBusinessRuleError(
			"la nueva cantidad no puede ser menor que la reservada. Reservado: %d, Nueva: %d",
			r.reservedQuantity, newQuantity,
		)
	}
	r.currentQuantity = newQuantity
	r.touch()
	return nil
}

// UpdateMinimumLevel cambia el punto de reorden.
func (r *InventoryRecord) UpdateMinimumLevel(level int) error {
	if level < 0 {
		return domain.NewValidationError("el nivel mínimo no puede ser negativo")
	}
	if level > MaxQuantity {
		return domain.NewValidationError("el nivel mínimo no puede superar %d", MaxQuantity)
	}
	r.minimumLevel = level
	r.touch()
	return nil
}

// UpdateUnitOfMeasure cambia la unidad de medida.
func (r *InventoryRecord) UpdateUnitOfMeasure(unit UnitOfMeasure) error {
	if !unit.Valid() {
		return domain.NewValidationError("unidad de medida inválida: %q", unit)
	}
	r.unit = unit
	r.touch()
	return nil
}

// IsBelowMinimum current <= minimum (incluye el caso igual).
func (r *InventoryRecord) IsBelowMinimum() bool {
	return r.currentQuantity <= r.minimumLevel
}

// IsOutOfStock current == 0, independiente de lo reservado.
func (r *InventoryRecord) IsOutOfStock() bool {
	return r.currentQuantity == 0
}

// HasAvailableStock available >= quantity.
func (r *InventoryRecord) HasAvailableStock(quantity int) bool {
	return r.AvailableQuantity() >= quantity
}

func (r *InventoryRecord) touch() {
	r.updatedAt = time.Now().UTC()
}
