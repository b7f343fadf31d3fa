package dto

import "time"

// Límites de paginación de los listados.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// PageRequest paginación para listados (?skip=&limit=).
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=1,max=1000"`
}

// NewPageRequest página por defecto; los query params la sobrescriben.
func NewPageRequest() PageRequest {
	return PageRequest{Skip: 0, Limit: DefaultLimit}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse salida de GET /health.
type HealthResponse struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}
