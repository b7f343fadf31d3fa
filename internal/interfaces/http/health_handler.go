package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// ServiceInfo identifica la instancia en /health.
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
}

// HealthHandler responde el estado del servicio sin tocar el almacenamiento.
type HealthHandler struct {
	info ServiceInfo
}

// NewHealthHandler construye el handler.
func NewHealthHandler(info ServiceInfo) *HealthHandler {
	return &HealthHandler{info: info}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:      "healthy",
		Service:     h.info.Name,
		Version:     h.info.Version,
		Environment: h.info.Environment,
		Timestamp:   time.Now().UTC(),
	})
}
