package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const catalog = `sku;name;description;category;unit;minimum_level;quantity
ABC-001;Tornillo;Acero 3mm;Ferretería;box;10;25
ABC-002;Tuerca;;Ferretería;piece;5;0
MAL-001;Sin cantidad;;Ferretería;piece;5;muchos
MAL-002;Pocos campos;piece
`

func TestReadCatalog(t *testing.T) {
	rows, skipped, err := readCatalog(strings.NewReader(catalog), false)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "ABC-001", rows[0].SKU)
	assert.Equal(t, "Ferretería", rows[0].Category)
	assert.Equal(t, 10, rows[0].MinimumLevel)
	assert.Equal(t, 25, rows[0].Quantity)
	assert.Equal(t, 2, rows[0].Line)

	require.Len(t, skipped, 2)
	assert.Equal(t, 4, skipped[0].Line)
	assert.Equal(t, 5, skipped[1].Line)
}

func TestReadCatalog_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("LAT-001;Caño;;Fontanería;meter;1;3\n")
	require.NoError(t, err)

	rows, skipped, err := readCatalog(bytes.NewReader([]byte(encoded)), true)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Caño", rows[0].Name)
	assert.Equal(t, "Fontanería", rows[0].Category)
}

func TestSeedCatalog(t *testing.T) {
	store := memory.NewStore()
	productUC := usecase.NewProductUseCase(store.Products())
	svc := inventory.NewService(store, store.Inventory(), store.Products(), store.Movements(), nil)
	rows, _, err := readCatalog(strings.NewReader(catalog), false)
	require.NoError(t, err)
	rows = append(rows, catalogRow{Line: 9, SKU: "BAD-001", Name: "Unidad rara", Category: "X", Unit: "barril"})

	res := seedCatalog(context.Background(), productUC, svc, rows, logger.Nop())
	assert.Equal(t, seedResult{Created: 2, Failed: 1}, res)

	again := seedCatalog(context.Background(), productUC, svc, rows[:2], logger.Nop())
	assert.Equal(t, seedResult{Existing: 2}, again)

	list, err := svc.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Page.Total)
}
