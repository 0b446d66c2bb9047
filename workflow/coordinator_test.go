package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/broker"
	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/quote"
	"github.com/paperquant/aitrader/research"
	"github.com/paperquant/aitrader/store"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeSearcher struct {
	results []research.Result
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string, max int) ([]research.Result, error) {
	return f.results, f.err
}

type fakeAdvisor struct {
	advice string
	err    error
}

func (f *fakeAdvisor) SuggestAllocation(ctx context.Context, goal string, results []research.Result, quotes []market.Quote) (string, error) {
	return f.advice, f.err
}

func newTestCoordinator(t *testing.T, prices map[string]decimal.Decimal) (*Coordinator, *broker.Engine) {
	t.Helper()

	quotes := quote.NewStatic(prices)
	engine := broker.New(store.NewMemory(), quotes)
	searcher := &fakeSearcher{results: []research.Result{
		{Title: "Note", URL: "https://example.com", Snippet: "snippet"},
	}}
	adv := &fakeAdvisor{advice: "hold steady"}

	return NewCoordinator(searcher, quotes, adv, engine, zerolog.Nop()), engine
}

func TestCoordinatorRunExecutesBuyPlan(t *testing.T) {
	t.Parallel()

	c, engine := newTestCoordinator(t, map[string]decimal.Decimal{
		"600519": d("1800"),
		"0700":   d("480"),
	})

	result, err := c.Run(context.Background(), Params{
		Topic: "liquor sector",
		Goal:  "steady growth",
		Targets: []Target{
			{Symbol: "600519", Market: market.MarketA},
			{Symbol: "0700", Market: market.MarketHK},
		},
		BuyPlan: map[string]decimal.Decimal{
			"600519": d("10"),
			"0700":   d("10"),
		},
		Deposit: d("1000000"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// 1000000 - 10*1800 - 10*480 = 977200
	if !result.Balance.Equal(d("977200")) {
		t.Fatalf("balance = %s, want 977200", result.Balance)
	}
	if len(result.Positions) != 2 {
		t.Fatalf("positions = %d, want 2", len(result.Positions))
	}
	if len(result.Orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(result.Orders))
	}
	if result.Advice != "hold steady" {
		t.Fatalf("advice = %q", result.Advice)
	}
	if len(result.Research) != 1 {
		t.Fatalf("research = %d, want 1", len(result.Research))
	}

	// Engine state matches the reported snapshot.
	bal, _ := engine.Balance()
	if !bal.Equal(result.Balance) {
		t.Fatalf("engine balance %s != reported %s", bal, result.Balance)
	}
}

func TestCoordinatorSkipsTargetWithoutPrice(t *testing.T) {
	t.Parallel()

	c, engine := newTestCoordinator(t, map[string]decimal.Decimal{
		"600519": d("1800"),
	})

	result, err := c.Run(context.Background(), Params{
		Topic: "anything",
		Targets: []Target{
			{Symbol: "600519", Market: market.MarketA},
			{Symbol: "NOPRICE", Market: market.MarketA},
		},
		BuyPlan: map[string]decimal.Decimal{
			"600519":  d("1"),
			"NOPRICE": d("1"),
		},
		Deposit: d("10000"),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Orders) != 1 {
		t.Fatalf("orders = %d, want 1 (no-price target skipped)", len(result.Orders))
	}

	positions, _ := engine.Positions()
	if len(positions) != 1 || positions[0].Symbol != "600519" {
		t.Fatalf("positions: %+v", positions)
	}
}

func TestCoordinatorToleratesResearchAndAdvisoryFailures(t *testing.T) {
	t.Parallel()

	quotes := quote.NewStatic(map[string]decimal.Decimal{"600519": d("1800")})
	engine := broker.New(store.NewMemory(), quotes)
	c := NewCoordinator(
		&fakeSearcher{err: errors.New("search down")},
		quotes,
		&fakeAdvisor{err: errors.New("llm down")},
		engine,
		zerolog.Nop(),
	)

	result, err := c.Run(context.Background(), Params{
		Topic:   "anything",
		Targets: []Target{{Symbol: "600519", Market: market.MarketA}},
		BuyPlan: map[string]decimal.Decimal{"600519": d("1")},
		Deposit: d("10000"),
	})
	if err != nil {
		t.Fatalf("run should tolerate helper failures: %v", err)
	}

	if len(result.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(result.Orders))
	}
	if result.Advice != "" || len(result.Research) != 0 {
		t.Fatalf("expected degraded helper output, got %+v", result)
	}
}

func TestCoordinatorFailsWhenLedgerRejects(t *testing.T) {
	t.Parallel()

	c, _ := newTestCoordinator(t, map[string]decimal.Decimal{"600519": d("1800")})

	// Deposit too small for the plan: the engine rejection fails the run.
	_, err := c.Run(context.Background(), Params{
		Topic:   "anything",
		Targets: []Target{{Symbol: "600519", Market: market.MarketA}},
		BuyPlan: map[string]decimal.Decimal{"600519": d("10")},
		Deposit: d("100"),
	})
	if !errors.Is(err, broker.ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
}

func TestPriceFor(t *testing.T) {
	t.Parallel()

	quotes := []market.Quote{
		{Symbol: "600519.SS", Price: d("1800")},
		{Symbol: "0700", Price: d("480")},
		{Symbol: "NOPRICE"},
	}

	if p, ok := priceFor(quotes, "600519"); !ok || !p.Equal(d("1800")) {
		t.Fatalf("vendor-suffixed match failed: %s %v", p, ok)
	}
	if p, ok := priceFor(quotes, "0700"); !ok || !p.Equal(d("480")) {
		t.Fatalf("exact match failed: %s %v", p, ok)
	}
	if _, ok := priceFor(quotes, "NOPRICE"); ok {
		t.Fatal("quote without price must not match")
	}
	if _, ok := priceFor(quotes, "999999"); ok {
		t.Fatal("unknown symbol must not match")
	}
}
