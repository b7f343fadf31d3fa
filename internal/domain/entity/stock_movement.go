package entity

import "time"

// Tipos de movimiento de estoque.
const (
	MovementTypeAdd                = "ADD"
	MovementTypeRemove             = "REMOVE"
	MovementTypeReleaseReservation = "RELEASE_RESERVATION"
	MovementTypeAdjust             = "ADJUST"
)

// StockMovement registro histórico (append-only) de una operación sobre el estoque.
// Previous/New son la cantidad actual antes y después; en RELEASE_RESERVATION son la reservada.
type StockMovement struct {
	ID               string
	InventoryID      string
	ProductID        string
	Type             string
	Quantity         int // argumento de la operación
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	CreatedBy        string // UserID
	CreatedAt        time.Time
}
