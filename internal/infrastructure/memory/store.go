// Package memory implementa los puertos de repositorio en memoria con semántica transaccional:
// una transacción trabaja sobre una copia del estado y la publica al confirmar, o la descarta
// si la función retorna error. Las transacciones se serializan entre sí.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/radiator-inventory/internal/domain/entity"
	"github.com/jhoicas/radiator-inventory/internal/domain/repository"
)

type pairKey struct {
	radiatorID  string
	warehouseID string
}

type state struct {
	radiators  map[string]entity.Radiator
	warehouses map[string]entity.Warehouse
	customers  map[string]entity.Customer
	users      map[string]entity.User
	levels     map[pairKey]entity.StockLevel
	history    []entity.StockHistory
	sales      map[string]entity.Sale // sin Items
	items      map[string][]entity.SaleItem
}

func newState() *state {
	return &state{
		radiators:  map[string]entity.Radiator{},
		warehouses: map[string]entity.Warehouse{},
		customers:  map[string]entity.Customer{},
		users:      map[string]entity.User{},
		levels:     map[pairKey]entity.StockLevel{},
		sales:      map[string]entity.Sale{},
		items:      map[string][]entity.SaleItem{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.radiators {
		c.radiators[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.levels {
		c.levels[k] = v
	}
	c.history = append([]entity.StockHistory(nil), s.history...)
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]entity.SaleItem(nil), v...)
	}
	return c
}

// access abstrae cómo un repositorio llega al estado: directo (con locks) o dentro de una tx.
type access interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

// Store estado compartido y TxRunner en memoria.
type Store struct {
	txMu sync.Mutex   // serializa transacciones y escrituras directas
	mu   sync.RWMutex // protege el puntero st
	st   *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccess struct{ st *state }

func (t txAccess) read(fn func(st *state))              { fn(t.st) }
func (t txAccess) write(fn func(st *state) error) error { return fn(t.st) }

func (s *Store) begin() (*state, func(*state)) {
	s.txMu.Lock()
	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()
	commit := func(w *state) {
		s.mu.Lock()
		s.st = w
		s.mu.Unlock()
	}
	return work, commit
}

// Run ejecuta fn con repositorios de stock atados a una transacción.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	work, commit := s.begin()
	defer s.txMu.Unlock()
	a := txAccess{st: work}
	if err := fn(&StockLevelRepo{a: a}, &StockHistoryRepo{a: a}); err != nil {
		return err
	}
	commit(work)
	return nil
}

// RunSale igual que Run pero incluye el repositorio de ventas.
func (s *Store) RunSale(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	historyRepo repository.StockHistoryRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	work, commit := s.begin()
	defer s.txMu.Unlock()
	a := txAccess{st: work}
	if err := fn(&StockLevelRepo{a: a}, &StockHistoryRepo{a: a}, &SaleRepo{a: a}); err != nil {
		return err
	}
	commit(work)
	return nil
}

// Repositorios sin transacción sobre el estado publicado.

func (s *Store) Radiators() *RadiatorRepo     { return &RadiatorRepo{a: s} }
func (s *Store) Warehouses() *WarehouseRepo   { return &WarehouseRepo{a: s} }
func (s *Store) Customers() *CustomerRepo     { return &CustomerRepo{a: s} }
func (s *Store) Users() *UserRepo             { return &UserRepo{a: s} }
func (s *Store) StockLevels() *StockLevelRepo { return &StockLevelRepo{a: s} }
func (s *Store) History() *StockHistoryRepo   { return &StockHistoryRepo{a: s} }
func (s *Store) Sales() *SaleRepo             { return &SaleRepo{a: s} }
func (s *Store) Reports() *ReportRepo         { return &ReportRepo{a: s} }

// Quantity cantidad publicada del par; 0 y false si no hay fila.
func (s *Store) Quantity(radiatorID, warehouseID string) (int, bool) {
	var (
		q  int
		ok bool
	)
	s.read(func(st *state) {
		var l entity.StockLevel
		l, ok = st.levels[pairKey{radiatorID, warehouseID}]
		q = l.Quantity
	})
	return q, ok
}

// HistoryFor historial publicado del par en orden de inserción.
func (s *Store) HistoryFor(radiatorID, warehouseID string) []entity.StockHistory {
	var out []entity.StockHistory
	s.read(func(st *state) {
		for _, h := range st.history {
			if h.RadiatorID == radiatorID && h.WarehouseID == warehouseID {
				out = append(out, h)
			}
		}
	})
	return out
}

// Counts número de filas publicadas: niveles, historial, ventas y líneas.
func (s *Store) Counts() (levels, history, sales, items int) {
	s.read(func(st *state) {
		levels = len(st.levels)
		history = len(st.history)
		sales = len(st.sales)
		for _, v := range st.items {
			items += len(v)
		}
	})
	return
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

func sortedHistory(st *state) []entity.StockHistory {
	out := append([]entity.StockHistory(nil), st.history...)
	// más reciente primero; a igual timestamp gana el insertado después
	idx := make(map[string]int, len(out))
	for i, h := range out {
		idx[h.ID] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return idx[out[i].ID] > idx[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
