package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// Service orquesta el agregado InventoryRecord: carga con bloqueo, muta, persiste y registra
// el movimiento, todo en una transacción por operación.
type Service struct {
	txRunner      TxRunner
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	movementRepo  repository.StockMovementRepository
	pdfGenerator  ReportPDFGenerator
}

// NewService construye el servicio de estoque. pdfGenerator puede ser nil (sin reporte PDF).
func NewService(
	txRunner TxRunner,
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	pdfGenerator ReportPDFGenerator,
) *Service {
	return &Service{
		txRunner:      txRunner,
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		movementRepo:  movementRepo,
		pdfGenerator:  pdfGenerator,
	}
}

// CreateInventory crea el registro de estoque de un producto existente.
// Unidad y nivel mínimo se heredan del producto cuando no vienen en el request.
func (s *Service) CreateInventory(ctx context.Context, in dto.CreateInventoryRequest) (*dto.InventoryResponse, error) {
	productID, err := parseProductID(in.ProductID)
	if err != nil {
		return nil, err
	}

	var created *entity.InventoryRecord
	err = s.txRunner.Run(ctx, func(
		inventoryRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
		}
		existing, err := inventoryRepo.GetByProductID(ctx, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewBusinessRuleError("ya existe un registro de estoque para el producto %s", productID)
		}

		unit := product.UnitOfMeasure()
		if in.UnitOfMeasure != "" {
			if unit, err = entity.ParseUnitOfMeasure(in.UnitOfMeasure); err != nil {
				return err
			}
		}
		minimum := product.MinimumLevel()
		if in.MinimumLevel != nil {
			minimum = *in.MinimumLevel
		}

		record, err := entity.NewInventoryRecord(productID, in.CurrentQuantity, unit, in.ReservedQuantity, minimum)
		if err != nil {
			return err
		}
		if err := inventoryRepo.Create(ctx, record); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewBusinessRuleError("ya existe un registro de estoque para el producto %s", productID)
			}
			return err
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInventoryResponse(created)
	return &resp, nil
}

// GetByProductID devuelve el estoque del producto o domain.ErrNotFound.
func (s *Service) GetByProductID(ctx context.Context, productID string) (*dto.InventoryResponse, error) {
	record, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := toInventoryResponse(record)
	return &resp, nil
}

// List devuelve una página de registros de estoque.
func (s *Service) List(ctx context.Context, skip, limit int) (*dto.InventoryListResponse, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	records, err := s.inventoryRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.inventoryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toInventoryResponse(r))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: skip, Limit: limit, Total: total},
	}, nil
}

// AddStock suma unidades al estoque actual.
func (s *Service) AddStock(ctx context.Context, productID, userID string, in dto.StockMovementRequest) (*dto.InventoryResponse, error) {
	return s.mutate(ctx, productID, userID, movement{kind: entity.MovementTypeAdd, quantity: in.Quantity, reason: in.Reason},
		func(r *entity.InventoryRecord) error { return r.AddStock(in.Quantity) })
}

// RemoveStock retira unidades disponibles (nunca las reservadas).
func (s *Service) RemoveStock(ctx context.Context, productID, userID string, in dto.StockMovementRequest) (*dto.InventoryResponse, error) {
	return s.mutate(ctx, productID, userID, movement{kind: entity.MovementTypeRemove, quantity: in.Quantity, reason: in.Reason},
		func(r *entity.InventoryRecord) error { return r.RemoveStock(in.Quantity) })
}

// ReleaseReservation libera unidades reservadas.
func (s *Service) ReleaseReservation(ctx context.Context, productID, userID string, in dto.StockMovementRequest) (*dto.InventoryResponse, error) {
	return s.mutate(ctx, productID, userID, movement{kind: entity.MovementTypeReleaseReservation, quantity: in.Quantity, reason: in.Reason},
		func(r *entity.InventoryRecord) error { return r.ReleaseReservation(in.Quantity) })
}

// AdjustStock fija la cantidad actual (inventario físico).
func (s *Service) AdjustStock(ctx context.Context, productID, userID string, in dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	if in.NewQuantity == nil {
		return nil, domain.NewValidationError("new_quantity es requerido")
	}
	newQuantity := *in.NewQuantity
	return s.mutate(ctx, productID, userID, movement{kind: entity.MovementTypeAdjust, quantity: newQuantity, reason: in.Reason},
		func(r *entity.InventoryRecord) error { return r.AdjustStock(newQuantity) })
}

// UpdateMinimumLevel cambia el punto de reorden. No genera movimiento.
func (s *Service) UpdateMinimumLevel(ctx context.Context, productID string, in dto.UpdateMinimumLevelRequest) (*dto.InventoryResponse, error) {
	if in.MinimumLevel == nil {
		return nil, domain.NewValidationError("minimum_level es requerido")
	}
	level := *in.MinimumLevel
	return s.mutate(ctx, productID, "", movement{},
		func(r *entity.InventoryRecord) error { return r.UpdateMinimumLevel(level) })
}

// UpdateUnitOfMeasure cambia la unidad de medida. No genera movimiento.
func (s *Service) UpdateUnitOfMeasure(ctx context.Context, productID string, in dto.UpdateUnitOfMeasureRequest) (*dto.InventoryResponse, error) {
	unit, err := entity.ParseUnitOfMeasure(in.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, productID, "", movement{},
		func(r *entity.InventoryRecord) error { return r.UpdateUnitOfMeasure(unit) })
}

// CheckAvailability informa si hay quantity unidades disponibles.
func (s *Service) CheckAvailability(ctx context.Context, productID string, quantity int) (*dto.AvailabilityResponse, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("la cantidad consultada debe ser positiva")
	}
	record, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{
		ProductID:         record.ProductID(),
		Requested:         quantity,
		AvailableQuantity: record.AvailableQuantity(),
		Available:         record.HasAvailableStock(quantity),
	}, nil
}

// ListMovements historial de movimientos del producto, del más reciente al más antiguo.
func (s *Service) ListMovements(ctx context.Context, productID string, skip, limit int) (*dto.MovementListResponse, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	record, err := s.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.ListByProduct(ctx, record.ProductID(), skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.CountByProduct(ctx, record.ProductID())
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: skip, Limit: limit, Total: total},
	}, nil
}

// movement describe el registro histórico de una mutación; kind vacío = sin movimiento.
type movement struct {
	kind     string
	quantity int
	reason   string
}

// mutate carga el registro con SELECT FOR UPDATE, aplica fn, persiste y agrega el movimiento.
// Cualquier error hace Rollback (TxRunner.Run).
func (s *Service) mutate(
	ctx context.Context,
	productID, userID string,
	mv movement,
	fn func(*entity.InventoryRecord) error,
) (*dto.InventoryResponse, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}

	var updated *entity.InventoryRecord
	err = s.txRunner.Run(ctx, func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
	) error {
		record, err := inventoryRepo.GetByProductIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("estoque del producto %s: %w", id, domain.ErrNotFound)
		}

		previous := trackedQuantity(record, mv.kind)
		if err := fn(record); err != nil {
			return err
		}
		if err := inventoryRepo.Update(ctx, record); err != nil {
			return err
		}
		if mv.kind != "" {
			m := &entity.StockMovement{
				ID:               uuid.New().String(),
				InventoryID:      record.ID(),
				ProductID:        record.ProductID(),
				Type:             mv.kind,
				Quantity:         mv.quantity,
				PreviousQuantity: previous,
				NewQuantity:      trackedQuantity(record, mv.kind),
				Reason:           mv.reason,
				CreatedBy:        userID,
				CreatedAt:        record.UpdatedAt(),
			}
			if err := movementRepo.Create(ctx, m); err != nil {
				return err
			}
		}
		updated = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toInventoryResponse(updated)
	return &resp, nil
}

// trackedQuantity la liberación de reserva registra la cantidad reservada; el resto la actual.
func trackedQuantity(r *entity.InventoryRecord, kind string) int {
	if kind == entity.MovementTypeReleaseReservation {
		return r.ReservedQuantity()
	}
	return r.CurrentQuantity()
}

func (s *Service) load(ctx context.Context, productID string) (*entity.InventoryRecord, error) {
	id, err := parseProductID(productID)
	if err != nil {
		return nil, err
	}
	record, err := s.inventoryRepo.GetByProductID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("estoque del producto %s: %w", id, domain.ErrNotFound)
	}
	return record, nil
}

func parseProductID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", domain.NewValidationError("produto_id inválido: %q", raw)
	}
	return id.String(), nil
}

func validatePage(skip, limit int) error {
	if skip < 0 {
		return domain.NewValidationError("skip debe ser >= 0")
	}
	if limit < 1 || limit > dto.MaxLimit {
		return domain.NewValidationError("limit debe estar entre 1 y %d", dto.MaxLimit)
	}
	return nil
}

func toInventoryResponse(r *entity.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID:                r.ID(),
		ProductID:         r.ProductID(),
		CurrentQuantity:   r.CurrentQuantity(),
		ReservedQuantity:  r.ReservedQuantity(),
		AvailableQuantity: r.AvailableQuantity(),
		MinimumLevel:      r.MinimumLevel(),
		UnitOfMeasure:     r.UnitOfMeasure().String(),
		IsBelowMinimum:    r.IsBelowMinimum(),
		IsOutOfStock:      r.IsOutOfStock(),
		UpdatedAt:         r.UpdatedAt(),
	}
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
