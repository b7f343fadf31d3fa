package dto

import "time"

// CreateInventoryRequest body para POST /api/inventory.
// UnitOfMeasure y MinimumLevel toman el valor del producto si se omiten.
type CreateInventoryRequest struct {
	ProductID        string `json:"product_id" validate:"required,uuid"`
	CurrentQuantity  int    `json:"current_quantity" validate:"min=0,max=2147483647"`
	ReservedQuantity int    `json:"reserved_quantity" validate:"min=0,max=2147483647"`
	MinimumLevel     *int   `json:"minimum_level,omitempty" validate:"omitempty,min=0,max=2147483647"`
	UnitOfMeasure    string `json:"unit_of_measure,omitempty" validate:"omitempty,max=20"`
}

// StockMovementRequest body para add / remove / release.
type StockMovementRequest struct {
	Quantity int    `json:"quantity" validate:"gt=0,max=2147483647"`
	Reason   string `json:"reason,omitempty" validate:"max=500"`
}

// AdjustStockRequest body para POST /api/inventory/:produto_id/adjust (valor absoluto).
// NewQuantity es puntero para distinguir 0 de un campo omitido.
type AdjustStockRequest struct {
	NewQuantity *int   `json:"new_quantity" validate:"required,min=0,max=2147483647"`
	Reason      string `json:"reason,omitempty" validate:"max=500"`
}

// UpdateMinimumLevelRequest body para PUT /api/inventory/:produto_id/minimum-level.
type UpdateMinimumLevelRequest struct {
	MinimumLevel *int `json:"minimum_level" validate:"required,min=0,max=2147483647"`
}

// UpdateUnitOfMeasureRequest body para PUT /api/inventory/:produto_id/unit-of-measure.
type UpdateUnitOfMeasureRequest struct {
	UnitOfMeasure string `json:"unit_of_measure" validate:"required,max=20"`
}

// InventoryResponse representación de un InventoryRecord.
type InventoryResponse struct {
	ID                string    `json:"id"`
	ProductID         string    `json:"product_id"`
	CurrentQuantity   int       `json:"current_quantity"`
	ReservedQuantity  int       `json:"reserved_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	MinimumLevel      int       `json:"minimum_level"`
	UnitOfMeasure     string    `json:"unit_of_measure"`
	IsBelowMinimum    bool      `json:"is_below_minimum"`
	IsOutOfStock      bool      `json:"is_out_of_stock"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// InventoryListResponse lista paginada de estoque.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// AvailabilityResponse salida de GET /api/inventory/:produto_id/availability.
type AvailabilityResponse struct {
	ProductID         string `json:"product_id"`
	Requested         int    `json:"requested"`
	AvailableQuantity int    `json:"available_quantity"`
	Available         bool   `json:"available"`
}

// StockMovementResponse un movimiento del historial.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de un producto.
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockReportItem línea de los reportes de bajo estoque / sin estoque.
type StockReportItem struct {
	InventoryResponse
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	IdealStock        int    `json:"ideal_stock"`         // ceil(MinimumLevel * 1.5)
	SuggestedOrderQty int    `json:"suggested_order_qty"` // IdealStock - CurrentQuantity, mínimo 0
	Priority          int    `json:"priority"`            // 1 = más urgente
}

// StockReportResponse salida de los reportes.
type StockReportResponse struct {
	Items       []StockReportItem `json:"items"`
	Total       int               `json:"total"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// InventorySummaryResponse salida de GET /api/inventory/reports/summary.
type InventorySummaryResponse struct {
	TotalItems        int       `json:"total_items"`
	LowStockItems     int       `json:"low_stock_items"`
	OutOfStockItems   int       `json:"out_of_stock_items"`
	HealthyStockItems int       `json:"healthy_stock_items"` // TotalItems - LowStockItems
	TotalQuantity     int       `json:"total_quantity"`
	TotalReserved     int       `json:"total_reserved"`
	GeneratedAt       time.Time `json:"generated_at"`
}
