package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

// Memory keeps the account in process memory. Useful for tests and
// throwaway runs; same visibility guarantees as the SQLite store.
type Memory struct {
	mu        sync.RWMutex
	cash      decimal.Decimal
	positions map[string]market.Position
	orders    []market.Order
}

func NewMemory() *Memory {
	return &Memory{positions: make(map[string]market.Position)}
}

func (s *Memory) Balance() (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cash, nil
}

func (s *Memory) AdjustCash(delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cash.Add(delta)
	if next.IsNegative() {
		return fmt.Errorf("cash would go negative: %s + %s", s.cash, delta)
	}
	s.cash = next
	return nil
}

func (s *Memory) Position(symbol string) (market.Position, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[symbol]
	return p, ok, nil
}

func (s *Memory) Positions() ([]market.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]market.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (s *Memory) Orders() ([]market.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]market.Order, len(s.orders))
	for i, o := range s.orders {
		out[len(s.orders)-1-i] = o
	}
	return out, nil
}

func (s *Memory) ApplyTrade(m TradeMutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cash.Add(m.CashDelta)
	if next.IsNegative() {
		return fmt.Errorf("cash would go negative: %s + %s", s.cash, m.CashDelta)
	}

	s.cash = next
	if m.Upsert != nil {
		s.positions[m.Upsert.Symbol] = *m.Upsert
	}
	if m.Remove != "" {
		delete(s.positions, m.Remove)
	}
	s.orders = append(s.orders, m.Order)
	return nil
}

func (s *Memory) Close() error { return nil }
