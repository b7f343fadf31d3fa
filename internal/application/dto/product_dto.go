package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string `json:"sku" validate:"required,min=3,max=50"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Description   string `json:"description" validate:"max=1000"`
	Category      string `json:"category" validate:"required,min=1,max=100"`
	UnitOfMeasure string `json:"unit_of_measure" validate:"required,max=20"`
	MinimumLevel  int    `json:"minimum_level" validate:"min=0,max=2147483647"`
	Active        *bool  `json:"active,omitempty"`
}

// UpdateProductRequest actualización parcial; los campos nil no cambian.
type UpdateProductRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category      *string `json:"category,omitempty" validate:"omitempty,min=1,max=100"`
	UnitOfMeasure *string `json:"unit_of_measure,omitempty" validate:"omitempty,max=20"`
	MinimumLevel  *int    `json:"minimum_level,omitempty" validate:"omitempty,min=0,max=2147483647"`
	Active        *bool   `json:"active,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	UnitOfMeasure string    `json:"unit_of_measure"`
	MinimumLevel  int       `json:"minimum_level"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
