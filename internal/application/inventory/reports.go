package inventory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// Estoque ideal de reposición: MinimumLevel * 3/2, redondeado hacia arriba.
const (
	idealStockNum = 3
	idealStockDen = 2
)

// ErrPDFUnavailable el servicio se construyó sin generador de PDF.
var ErrPDFUnavailable = errors.New("generador de PDF no configurado")

// LowStockReport productos con estoque actual <= nivel mínimo, con la cantidad sugerida
// de reposición y prioridad (mayor déficit primero).
func (s *Service) LowStockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	records, err := s.inventoryRepo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildReport(ctx, records, (*entity.InventoryRecord).IsBelowMinimum)
}

// OutOfStockReport productos con estoque actual en cero.
func (s *Service) OutOfStockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	records, err := s.inventoryRepo.ListOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	return s.buildReport(ctx, records, (*entity.InventoryRecord).IsOutOfStock)
}

// Summary totales del estoque. Un registro sin estoque también está bajo el mínimo,
// por eso los saludables son total - bajo mínimo.
func (s *Service) Summary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	totals, err := s.inventoryRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	healthy := totals.TotalProducts - totals.LowStockCount
	if healthy < 0 {
		healthy = 0
	}
	return &dto.InventorySummaryResponse{
		TotalItems:        totals.TotalProducts,
		LowStockItems:     totals.LowStockCount,
		OutOfStockItems:   totals.OutOfStockCount,
		HealthyStockItems: healthy,
		TotalQuantity:     totals.TotalQuantity,
		TotalReserved:     totals.TotalReserved,
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// LowStockReportPDF renderiza LowStockReport en PDF.
func (s *Service) LowStockReportPDF(ctx context.Context) ([]byte, error) {
	if s.pdfGenerator == nil {
		return nil, ErrPDFUnavailable
	}
	report, err := s.LowStockReport(ctx)
	if err != nil {
		return nil, err
	}
	return s.pdfGenerator.GenerateLowStockReport(report)
}

// buildReport filtra con keep (el repositorio ya filtra; se re-verifica contra el agregado),
// enriquece con SKU y nombre del producto y asigna prioridad.
func (s *Service) buildReport(
	ctx context.Context,
	records []*entity.InventoryRecord,
	keep func(*entity.InventoryRecord) bool,
) (*dto.StockReportResponse, error) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ProductID())
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockReportItem, 0, len(records))
	for _, r := range records {
		if !keep(r) {
			continue
		}
		ideal := (r.MinimumLevel()*idealStockNum + idealStockDen - 1) / idealStockDen
		suggested := ideal - r.CurrentQuantity()
		if suggested < 0 {
			suggested = 0
		}
		item := dto.StockReportItem{
			InventoryResponse: toInventoryResponse(r),
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
		}
		if p, ok := products[r.ProductID()]; ok {
			item.SKU = p.SKU().String()
			item.ProductName = p.Name()
		}
		items = append(items, item)
	}

	// Mayor déficit (mínimo - actual) primero; desempate por SKU para un orden estable.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		defA := a.MinimumLevel - a.CurrentQuantity
		defB := b.MinimumLevel - b.CurrentQuantity
		if defA != defB {
			return defA > defB
		}
		return a.SKU < b.SKU
	})
	for i := range items {
		items[i].Priority = i + 1
	}

	return &dto.StockReportResponse{
		Items:       items,
		Total:       len(items),
		GeneratedAt: time.Now().UTC(),
	}, nil
}
