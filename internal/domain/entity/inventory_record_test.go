package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const testProductID = "11111111-1111-1111-1111-111111111111"

func newRecord(t *testing.T, current, reserved, minimum int) *entity.InventoryRecord {
	t.Helper()
	r, err := entity.NewInventoryRecord(testProductID, current, entity.UnitPiece, reserved, minimum)
	require.NoError(t, err)
	return r
}

func assertInvariants(t *testing.T, r *entity.InventoryRecord) {
	t.Helper()
	assert.GreaterOrEqual(t, r.CurrentQuantity(), 0)
	assert.GreaterOrEqual(t, r.ReservedQuantity(), 0)
	assert.LessOrEqual(t, r.ReservedQuantity(), r.CurrentQuantity())
	assert.GreaterOrEqual(t, r.MinimumLevel(), 0)
}

func isValidation(err error) bool {
	var v *domain.ValidationError
	return errors.As(err, &v)
}

func isBusinessRule(err error) bool {
	var b *domain.BusinessRuleError
	return errors.As(err, &b)
}

func TestNewInventoryRecord_Validaciones(t *testing.T) {
	cases := []struct {
		name                       string
		current, reserved, minimum int
		unit                       entity.UnitOfMeasure
	}{
		{"actual negativa", -1, 0, 0, entity.UnitPiece},
		{"reservada negativa", 5, -1, 0, entity.UnitPiece},
		{"minimo negativo", 5, 0, -1, entity.UnitPiece},
		{"reservada mayor que actual", 5, 6, 0, entity.UnitPiece},
		{"unidad desconocida", 5, 0, 0, entity.UnitOfMeasure("barril")},
		{"actual sobre el máximo", entity.MaxQuantity + 1, 0, 0, entity.UnitPiece},
		{"minimo sobre el máximo", 5, 0, entity.MaxQuantity + 1, entity.UnitPiece},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entity.NewInventoryRecord(testProductID, tc.current, tc.unit, tc.reserved, tc.minimum)
			require.Error(t, err)
			assert.True(t, isValidation(err))
		})
	}
}

func TestNewInventoryRecord_OK(t *testing.T) {
	r := newRecord(t, 10, 3, 2)
	assert.NotEmpty(t, r.ID())
	assert.Equal(t, testProductID, r.ProductID())
	assert.Equal(t, 7, r.AvailableQuantity())
	assert.Equal(t, entity.UnitPiece, r.UnitOfMeasure())
	assert.False(t, r.UpdatedAt().IsZero())
}

func TestAddStock(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		r := newRecord(t, 10, 3, 0)
		err := r.AddStock(q)
		assert.True(t, isValidation(err), "q=%d debe fallar validación", q)
		assert.Equal(t, 10, r.CurrentQuantity())
	}

	r := newRecord(t, 10, 3, 0)
	before := r.UpdatedAt()
	require.NoError(t, r.AddStock(5))
	assert.Equal(t, 15, r.CurrentQuantity())
	assert.Equal(t, 3, r.ReservedQuantity(), "reservado no cambia")
	assert.False(t, r.UpdatedAt().Before(before))
	assertInvariants(t, r)
}

func TestAddStock_NoSuperaElMaximo(t *testing.T) {
	r := newRecord(t, 10, 3, 0)

	err := r.AddStock(entity.MaxQuantity)
	assert.True(t, isBusinessRule(err), "la suma desbordaría el máximo")
	assert.Equal(t, 10, r.CurrentQuantity())
	assert.Equal(t, 3, r.ReservedQuantity())

	require.NoError(t, r.AddStock(entity.MaxQuantity-10))
	assert.Equal(t, entity.MaxQuantity, r.CurrentQuantity())
	assert.True(t, isBusinessRule(r.AddStock(1)))
	assertInvariants(t, r)
}

func TestRemoveStock_EjemploDisponible(t *testing.T) {
	r := newRecord(t, 10, 3, 0)

	err := r.RemoveStock(8)
	require.Error(t, err)
	assert.True(t, isBusinessRule(err))
	assert.Contains(t, err.Error(), "Disponible: 7")
	assert.Contains(t, err.Error(), "Solicitado: 8")
	assert.Equal(t, 10, r.CurrentQuantity())

	require.NoError(t, r.RemoveStock(7))
	assert.Equal(t, 3, r.CurrentQuantity())
	assert.Equal(t, 3, r.ReservedQuantity())
	assert.Equal(t, 0, r.AvailableQuantity())
	assertInvariants(t, r)
}

func TestRemoveStock_CantidadNoPositiva(t *testing.T) {
	r := newRecord(t, 10, 0, 0)
	assert.True(t, isValidation(r.RemoveStock(0)))
	assert.True(t, isValidation(r.RemoveStock(-2)))
}

func TestReleaseReservation(t *testing.T) {
	cases := []struct {
		name      string
		q         int
		wantValid bool
		wantRule  bool
	}{
		{"cero", 0, true, false},
		{"negativa", -1, true, false},
		{"mayor que reservado", 4, false, true},
		{"igual a reservado", 3, false, false},
		{"parcial", 1, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRecord(t, 10, 3, 0)
			err := r.ReleaseReservation(tc.q)
			switch {
			case tc.wantValid:
				assert.True(t, isValidation(err))
				assert.Equal(t, 3, r.ReservedQuantity())
			case tc.wantRule:
				assert.True(t, isBusinessRule(err))
				assert.Equal(t, 3, r.ReservedQuantity())
			default:
				require.NoError(t, err)
				assert.Equal(t, 3-tc.q, r.ReservedQuantity())
				assert.Equal(t, 10, r.CurrentQuantity())
			}
			assertInvariants(t, r)
		})
	}
}

func TestAdjustStock(t *testing.T) {
	r := newRecord(t, 10, 3, 0)

	assert.True(t, isValidation(r.AdjustStock(-1)))
	assert.True(t, isValidation(r.AdjustStock(entity.MaxQuantity+1)))

	err := r.AdjustStock(2)
	assert.True(t, isBusinessRule(err), "ajustar por debajo de lo reservado no está permitido")
	assert.Equal(t, 10, r.CurrentQuantity())

	require.NoError(t, r.AdjustStock(3))
	assert.Equal(t, 3, r.CurrentQuantity(), "valor absoluto, no delta")

	require.NoError(t, r.AdjustStock(40))
	assert.Equal(t, 40, r.CurrentQuantity())
	assertInvariants(t, r)
}

func TestUpdateMinimumLevel(t *testing.T) {
	r := newRecord(t, 10, 0, 0)
	assert.True(t, isValidation(r.UpdateMinimumLevel(-1)))
	assert.True(t, isValidation(r.UpdateMinimumLevel(entity.MaxQuantity+1)))
	assert.Equal(t, 0, r.MinimumLevel())
	require.NoError(t, r.UpdateMinimumLevel(12))
	assert.Equal(t, 12, r.MinimumLevel())
	assert.True(t, r.IsBelowMinimum())
}

func TestUpdateUnitOfMeasure(t *testing.T) {
	r := newRecord(t, 1, 0, 0)
	assert.True(t, isValidation(r.UpdateUnitOfMeasure("barril")))
	require.NoError(t, r.UpdateUnitOfMeasure(entity.UnitKilogram))
	assert.Equal(t, entity.UnitKilogram, r.UnitOfMeasure())
}

func TestConsultas(t *testing.T) {
	r := newRecord(t, 5, 0, 5)
	assert.True(t, r.IsBelowMinimum(), "igual al mínimo cuenta como bajo")
	assert.False(t, r.IsOutOfStock())

	r = newRecord(t, 6, 0, 5)
	assert.False(t, r.IsBelowMinimum())

	r = newRecord(t, 0, 0, 0)
	assert.True(t, r.IsOutOfStock())

	r = newRecord(t, 4, 4, 0)
	assert.False(t, r.IsOutOfStock(), "independiente de lo reservado")
	assert.False(t, r.HasAvailableStock(1))
	assert.True(t, r.HasAvailableStock(0))

	r = newRecord(t, 10, 3, 0)
	assert.True(t, r.HasAvailableStock(7))
	assert.False(t, r.HasAvailableStock(8))
}

func TestSecuenciaMantieneInvariantes(t *testing.T) {
	r := newRecord(t, 10, 3, 2)
	ops := []func() error{
		func() error { return r.RemoveStock(5) },
		func() error { return r.AdjustStock(1) },
		func() error { return r.ReleaseReservation(2) },
		func() error { return r.RemoveStock(4) },
		func() error { return r.AddStock(9) },
		func() error { return r.ReleaseReservation(5) },
		func() error { return r.AdjustStock(0) },
	}
	for _, op := range ops {
		_ = op()
		assertInvariants(t, r)
	}
}

func TestRestoreInventoryRecord(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := entity.RestoreInventoryRecord("id-1", testProductID, 8, 2, 1, entity.UnitBox, ts)
	assert.Equal(t, "id-1", r.ID())
	assert.Equal(t, 6, r.AvailableQuantity())
	assert.Equal(t, ts, r.UpdatedAt())
}
