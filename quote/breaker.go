package quote

import (
	"context"
	"fmt"
	"time"

	cb "github.com/sony/gobreaker"

	"github.com/paperquant/aitrader/market"
)

// Breaker wraps a provider in a circuit breaker so a flapping vendor is
// skipped quickly instead of eating the quote timeout on every order.
type Breaker struct {
	next Port
	cb   *cb.CircuitBreaker
}

func NewBreaker(name string, next Port) *Breaker {
	st := cb.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 30 * time.Second
	st.ReadyToTrip = func(counts cb.Counts) bool {
		return counts.ConsecutiveFailures >= 3
	}
	return &Breaker{next: next, cb: cb.NewCircuitBreaker(st)}
}

func (b *Breaker) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	out, err := b.cb.Execute(func() (any, error) {
		return b.next.Quote(ctx, symbol, m)
	})
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out.(market.Quote), nil
}
