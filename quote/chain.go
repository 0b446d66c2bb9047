package quote

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

// Chain tries each provider in order and returns the first usable quote.
// All failures collapse into ErrUnavailable; the engine does not care
// which vendor was down.
type Chain struct {
	providers []Port
}

func NewChain(providers ...Port) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	var lastErr error
	for _, p := range c.providers {
		q, err := p.Quote(ctx, symbol, m)
		if err == nil && q.HasPrice() {
			return q, nil
		}
		if err != nil {
			lastErr = err
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		return market.Quote{}, lastErr
	}
	return market.Quote{}, fmt.Errorf("%w: no provider produced a price for %s", ErrUnavailable, symbol)
}

// Static serves quotes from a fixed table, keyed by symbol. Used in
// tests and offline demos.
type Static struct {
	prices map[string]decimal.Decimal
}

func NewStatic(prices map[string]decimal.Decimal) *Static {
	return &Static{prices: prices}
}

func (s *Static) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return market.Quote{}, fmt.Errorf("%w: no price for %s", ErrUnavailable, symbol)
	}
	return market.Quote{Symbol: symbol, Price: price}, nil
}
