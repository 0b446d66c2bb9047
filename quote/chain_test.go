package quote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

func fixed(price string) Port {
	return Func(func(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
		return market.Quote{Symbol: symbol, Price: decimal.RequireFromString(price)}, nil
	})
}

func failing() Port {
	return Func(func(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
		return market.Quote{}, fmt.Errorf("%w: provider down", ErrUnavailable)
	})
}

func TestChainFirstProviderWins(t *testing.T) {
	t.Parallel()

	c := NewChain(fixed("100"), fixed("200"))
	q, err := c.Quote(context.Background(), "600519", market.MarketA)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Price.String() != "100" {
		t.Fatalf("price = %s, want the first provider's 100", q.Price)
	}
}

func TestChainFallsBack(t *testing.T) {
	t.Parallel()

	c := NewChain(failing(), fixed("200"))
	q, err := c.Quote(context.Background(), "600519", market.MarketA)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if q.Price.String() != "200" {
		t.Fatalf("price = %s, want the fallback's 200", q.Price)
	}
}

func TestChainAllFail(t *testing.T) {
	t.Parallel()

	c := NewChain(failing(), failing())
	_, err := c.Quote(context.Background(), "600519", market.MarketA)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestChainEmpty(t *testing.T) {
	t.Parallel()

	c := NewChain()
	_, err := c.Quote(context.Background(), "600519", market.MarketA)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestChainStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := Func(func(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
		calls++
		return market.Quote{}, fmt.Errorf("%w: down", ErrUnavailable)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewChain(counting, counting, counting)
	_, err := c.Quote(ctx, "600519", market.MarketA)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
	if calls != 1 {
		t.Fatalf("chain kept going after cancel: %d calls", calls)
	}
}

func TestStatic(t *testing.T) {
	t.Parallel()

	s := NewStatic(map[string]decimal.Decimal{"600519": decimal.RequireFromString("1800")})

	q, err := s.Quote(context.Background(), "600519", market.MarketA)
	if err != nil || q.Price.String() != "1800" {
		t.Fatalf("quote = %+v, err = %v", q, err)
	}

	_, err = s.Quote(context.Background(), "0700", market.MarketHK)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := Func(func(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
		calls++
		return market.Quote{}, fmt.Errorf("%w: down", ErrUnavailable)
	})

	b := NewBreaker("test", counting)
	for i := 0; i < 10; i++ {
		_, err := b.Quote(context.Background(), "600519", market.MarketA)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("call %d: got %v, want ErrUnavailable", i, err)
		}
	}

	// After three consecutive failures the breaker short-circuits.
	if calls != 3 {
		t.Fatalf("provider called %d times, want 3", calls)
	}
}
