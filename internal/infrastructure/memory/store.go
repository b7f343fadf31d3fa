// Package memory implementa los puertos de repositorio en memoria. Se usa con STORAGE=memory
// en desarrollo y como doble de prueba de los servicios y handlers.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// state datos guardados por valor: los agregados entregados al caller son copias.
type state struct {
	inventory map[string]entity.InventoryRecord // por product_id
	products  map[string]entity.Product         // por id
	skus      map[string]string                 // sku -> product id
	movements []entity.StockMovement            // orden de inserción
	users     map[string]entity.User            // por id
}

func newState() *state {
	return &state{
		inventory: make(map[string]entity.InventoryRecord),
		products:  make(map[string]entity.Product),
		skus:      make(map[string]string),
		users:     make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.skus {
		c.skus[k] = v
	}
	c.movements = append(c.movements, s.movements...)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria. Run serializa las transacciones con un mutex y trabaja sobre una
// copia del estado que solo se publica si fn termina sin error.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Inventory repositorio de estoque fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{store: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{store: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{store: s} }

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{store: s} }

// Run ejecuta fn con repositorios atados a una copia del estado; Commit si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.st.clone()
	if err := fn(
		&InventoryRepo{store: s, tx: tx},
		&StockMovementRepo{store: s, tx: tx},
		&ProductRepo{store: s, tx: tx},
	); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.st = tx
	return nil
}

// access ejecuta fn sobre el estado de la tx (ya bloqueado por Run) o sobre el estado global.
func (s *Store) access(tx *state, write bool, fn func(*state) error) error {
	if tx != nil {
		return fn(tx)
	}
	if write {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.st)
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
