package entity

import (
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
)

const (
	skuMinLen = 3
	skuMaxLen = 50
)

// SKU código único de producto ya validado. Solo se obtiene vía ParseSKU.
type SKU struct {
	value string
}

// ParseSKU normaliza (trim + mayúsculas) y valida un SKU: 3-50 caracteres A-Z, 0-9, '-' o '_'.
func ParseSKU(raw string) (SKU, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) < skuMinLen || len(s) > skuMaxLen {
		return SKU{}, domain.NewValidationError("SKU debe tener entre %d y %d caracteres", skuMinLen, skuMaxLen)
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return SKU{}, domain.NewValidationError("SKU contiene caracteres inválidos: %q", raw)
		}
	}
	return SKU{value: s}, nil
}

func (s SKU) String() string { return s.value }

// IsZero informa si el SKU no fue inicializado.
func (s SKU) IsZero() bool { return s.value == "" }
