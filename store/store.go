package store

import (
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

// TradeMutation is the state delta one executed order produces: a cash
// adjustment, a position upsert or removal, and the order record. A
// Store must make the whole mutation visible atomically or not at all.
type TradeMutation struct {
	CashDelta decimal.Decimal
	Upsert    *market.Position // position to insert or replace, nil if none
	Remove    string           // symbol whose position is deleted, "" if none
	Order     market.Order
}

// Store is the durable backend for one account: a single cash balance,
// positions keyed uniquely by symbol, and an append-only order journal.
type Store interface {
	Balance() (decimal.Decimal, error)
	AdjustCash(delta decimal.Decimal) error

	Position(symbol string) (market.Position, bool, error)
	Positions() ([]market.Position, error)

	// Orders returns the journal most recent first.
	Orders() ([]market.Order, error)

	ApplyTrade(m TradeMutation) error

	Close() error
}
