// Package quote resolves instruments to current prices. The engine only
// depends on the Port interface; how a price is obtained (which vendor,
// fallbacks, symbol translation) stays behind it.
package quote

import (
	"context"
	"errors"

	"github.com/paperquant/aitrader/market"
)

// ErrUnavailable is returned whenever a provider cannot produce a usable
// price, regardless of why (timeout, vendor error, unknown symbol).
var ErrUnavailable = errors.New("quote unavailable")

// Port is the capability the execution engine consumes.
type Port interface {
	Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error)
}

// Func adapts a plain function to a Port.
type Func func(ctx context.Context, symbol string, m market.Market) (market.Quote, error)

func (f Func) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	return f(ctx, symbol, m)
}
