package entity

import (
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// UnitOfMeasure unidad de medida de un producto (conjunto cerrado).
type UnitOfMeasure string

// Unidades de medida válidas.
const (
	UnitPiece      UnitOfMeasure = "piece"
	UnitKilogram   UnitOfMeasure = "kilogram"
	UnitGram       UnitOfMeasure = "gram"
	UnitLiter      UnitOfMeasure = "liter"
	UnitMilliliter UnitOfMeasure = "milliliter"
	UnitMeter      UnitOfMeasure = "meter"
	UnitBox        UnitOfMeasure = "box"
	UnitPack       UnitOfMeasure = "pack"
)

var validUnits = map[UnitOfMeasure]struct{}{
	UnitPiece: {}, UnitKilogram: {}, UnitGram: {}, UnitLiter: {},
	UnitMilliliter: {}, UnitMeter: {}, UnitBox: {}, UnitPack: {},
}

// ParseUnitOfMeasure convierte el texto recibido en la frontera en una unidad válida.
func ParseUnitOfMeasure(s string) (UnitOfMeasure, error) {
	u := UnitOfMeasure(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", domain.NewValidationError("unidad de medida inválida: %q", s)
	}
	return u, nil
}

// Valid informa si la unidad pertenece al conjunto cerrado.
func (u UnitOfMeasure) Valid() bool {
	_, ok := validUnits[u]
	return ok
}

func (u UnitOfMeasure) String() string { return string(u) }
