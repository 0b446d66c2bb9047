// Package broker implements a paper-trading account: a cash ledger,
// a position book with weighted average cost, and an append-only order
// journal, mutated only through the execution engine.
package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/pkg/id"
	"github.com/paperquant/aitrader/quote"
	"github.com/paperquant/aitrader/store"
)

const defaultQuoteTimeout = 10 * time.Second

// Engine is the sole writer to one account. Mutating operations are
// serialized by the mutex so every validate-then-apply sequence runs as
// one atomic step against the store; reads go straight to the store and
// observe either the pre- or post-state of any in-flight write.
type Engine struct {
	mu           sync.Mutex
	st           store.Store
	quotes       quote.Port
	log          zerolog.Logger
	quoteTimeout time.Duration
}

type Option func(*Engine)

// WithLogger attaches a structured logger; the default discards events.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithQuoteTimeout bounds the provider lookup during order placement.
func WithQuoteTimeout(d time.Duration) Option {
	return func(e *Engine) { e.quoteTimeout = d }
}

func New(st store.Store, quotes quote.Port, opts ...Option) *Engine {
	e := &Engine{
		st:           st,
		quotes:       quotes,
		log:          zerolog.Nop(),
		quoteTimeout: defaultQuoteTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OrderRequest is a trade intent. Price nil means resolve via the quote
// provider; an explicit price always wins (pre-agreed execution prices).
type OrderRequest struct {
	Symbol   string
	Market   market.Market
	Side     market.Side
	Quantity decimal.Decimal
	Price    *decimal.Decimal
}

// PlaceOrder validates the request, resolves a price, and commits the
// ledger debit/credit, the position change, and the journal entry as a
// single unit. A rejected order leaves no trace beyond the returned
// error.
func (e *Engine) PlaceOrder(ctx context.Context, req OrderRequest) (market.Order, error) {
	if req.Side != market.Buy && req.Side != market.Sell {
		return market.Order{}, fmt.Errorf("%w: %q", ErrInvalidSide, req.Side)
	}
	if !req.Quantity.IsPositive() {
		return market.Order{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidAmount)
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return market.Order{}, fmt.Errorf("%w: price must be positive", ErrInvalidAmount)
	}

	// The provider call is the only suspension point, so it runs before
	// the critical section; a slow vendor never stalls other operations.
	price, err := e.resolvePrice(ctx, req)
	if err != nil {
		return market.Order{}, err
	}

	notional := price.Mul(req.Quantity)

	e.mu.Lock()
	defer e.mu.Unlock()

	order := market.Order{
		ID:       id.New(),
		Symbol:   req.Symbol,
		Market:   req.Market,
		Side:     req.Side,
		Quantity: req.Quantity,
		Price:    price,
		Time:     time.Now().UTC(),
	}

	switch req.Side {
	case market.Buy:
		bal, err := e.st.Balance()
		if err != nil {
			return market.Order{}, err
		}
		if notional.GreaterThan(bal) {
			return market.Order{}, fmt.Errorf("%w: need %s, have %s", ErrInsufficientFunds, notional, bal)
		}

		cur, _, err := e.positionRef(req.Symbol)
		if err != nil {
			return market.Order{}, err
		}
		pos := buyPosition(cur, req.Symbol, req.Market, req.Quantity, price)

		err = e.st.ApplyTrade(store.TradeMutation{
			CashDelta: notional.Neg(),
			Upsert:    &pos,
			Order:     order,
		})
		if err != nil {
			return market.Order{}, err
		}

	case market.Sell:
		cur, ok, err := e.st.Position(req.Symbol)
		if err != nil {
			return market.Order{}, err
		}
		if !ok || req.Quantity.GreaterThan(cur.Quantity) {
			return market.Order{}, fmt.Errorf("%w: %s", ErrInsufficientPosition, req.Symbol)
		}

		next, closed := sellPosition(cur, req.Quantity)
		mut := store.TradeMutation{
			CashDelta: notional,
			Order:     order,
		}
		if closed {
			mut.Remove = req.Symbol
		} else {
			mut.Upsert = &next
		}

		if err := e.st.ApplyTrade(mut); err != nil {
			return market.Order{}, err
		}
	}

	e.log.Info().
		Str("order_id", order.ID).
		Str("symbol", order.Symbol).
		Str("side", string(order.Side)).
		Str("quantity", order.Quantity.String()).
		Str("price", order.Price.String()).
		Msg("order applied")

	return order, nil
}

// Positions lists current holdings in stable (symbol) order.
func (e *Engine) Positions() ([]market.Position, error) {
	return e.st.Positions()
}

// Orders lists the journal, most recent first.
func (e *Engine) Orders() ([]market.Order, error) {
	return e.st.Orders()
}

func (e *Engine) resolvePrice(ctx context.Context, req OrderRequest) (decimal.Decimal, error) {
	if req.Price != nil {
		return *req.Price, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.quoteTimeout)
	defer cancel()

	q, err := e.quotes.Quote(ctx, req.Symbol, req.Market)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	if !q.HasPrice() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceUnavailable, req.Symbol)
	}
	return q.Price, nil
}

// positionRef returns a pointer to the current position, nil if the
// symbol is not held.
func (e *Engine) positionRef(symbol string) (*market.Position, bool, error) {
	cur, ok, err := e.st.Position(symbol)
	if err != nil || !ok {
		return nil, false, err
	}
	return &cur, true, nil
}
