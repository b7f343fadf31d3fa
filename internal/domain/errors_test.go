package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain"
)

func TestValidationError_IsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("service: %w", domain.NewValidationError("cantidad %d inválida", -1))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.False(t, errors.Is(err, domain.ErrConflict))

	var vErr *domain.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "cantidad -1 inválida", vErr.Message)
}

func TestBusinessRuleError_IsErrConflict(t *testing.T) {
	err := domain.NewBusinessRuleError("reservado %d", 3)

	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "reservado 3", err.Error())
}
