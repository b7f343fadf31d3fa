package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func validAttrs() entity.ProductAttributes {
	return entity.ProductAttributes{
		Name:     "  Arroz 5kg ",
		Category: " Alimentos ",
		Unit:     entity.UnitPack,
		Active:   true,
	}
}

func TestParseSKU(t *testing.T) {
	sku, err := entity.ParseSKU("  arr-005_kg ")
	require.NoError(t, err)
	assert.Equal(t, "ARR-005_KG", sku.String())

	for _, raw := range []string{"", "ab", "ABC DEF", "ÑAND-1", "A/B/C", string(make([]byte, 51))} {
		_, err := entity.ParseSKU(raw)
		assert.True(t, isValidation(err), "raw=%q", raw)
	}
}

func TestParseUnitOfMeasure(t *testing.T) {
	u, err := entity.ParseUnitOfMeasure(" Kilogram ")
	require.NoError(t, err)
	assert.Equal(t, entity.UnitKilogram, u)

	_, err = entity.ParseUnitOfMeasure("arroba")
	assert.True(t, isValidation(err))
}

func TestNewProduct(t *testing.T) {
	sku, err := entity.ParseSKU("ARR-005")
	require.NoError(t, err)

	p, err := entity.NewProduct(sku, validAttrs())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())
	assert.Equal(t, "Arroz 5kg", p.Name())
	assert.Equal(t, "Alimentos", p.Category())
	assert.Equal(t, "", p.Description())
	assert.True(t, p.Active())
}

func TestNewProduct_Validaciones(t *testing.T) {
	sku, _ := entity.ParseSKU("ARR-005")

	_, err := entity.NewProduct(entity.SKU{}, validAttrs())
	assert.True(t, isValidation(err), "SKU vacío")

	attrs := validAttrs()
	attrs.Name = "   "
	_, err = entity.NewProduct(sku, attrs)
	assert.True(t, isValidation(err), "nombre vacío")

	attrs = validAttrs()
	attrs.Category = ""
	_, err = entity.NewProduct(sku, attrs)
	assert.True(t, isValidation(err), "categoría vacía")

	attrs = validAttrs()
	attrs.MinimumLevel = -3
	_, err = entity.NewProduct(sku, attrs)
	assert.True(t, isValidation(err), "mínimo negativo")

	attrs = validAttrs()
	attrs.Unit = "quintal"
	_, err = entity.NewProduct(sku, attrs)
	assert.True(t, isValidation(err), "unidad inválida")
}

func TestProduct_UpdateNoCambiaSiFalla(t *testing.T) {
	sku, _ := entity.ParseSKU("ARR-005")
	p, err := entity.NewProduct(sku, validAttrs())
	require.NoError(t, err)

	bad := p.Attributes()
	bad.Name = ""
	assert.Error(t, p.Update(bad))
	assert.Equal(t, "Arroz 5kg", p.Name())

	good := p.Attributes()
	good.Active = false
	good.Description = " integral "
	require.NoError(t, p.Update(good))
	assert.False(t, p.Active())
	assert.Equal(t, "integral", p.Description())
}

func TestRoleHasPermission(t *testing.T) {
	assert.True(t, entity.RoleHasPermission(entity.RoleAdmin, entity.PermissionProductsWrite))
	assert.True(t, entity.RoleHasPermission(entity.RoleBodeguero, entity.PermissionStockWrite))
	assert.False(t, entity.RoleHasPermission(entity.RoleVendedor, entity.PermissionStockWrite))
	assert.True(t, entity.RoleHasPermission(entity.RoleVendedor, entity.PermissionStockRead))
	assert.False(t, entity.RoleHasPermission("", entity.PermissionStockRead))
}
