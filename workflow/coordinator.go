// Package workflow combines research, quotes, advisory text, and order
// execution into one run. The engine stays the sole writer; everything
// gathered here is input to it.
package workflow

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/advisor"
	"github.com/paperquant/aitrader/broker"
	"github.com/paperquant/aitrader/market"
	"github.com/paperquant/aitrader/quote"
	"github.com/paperquant/aitrader/research"
)

// Target is one instrument the workflow should research and price.
type Target struct {
	Symbol string
	Market market.Market
}

// Params drives one coordinated run.
type Params struct {
	Topic   string
	Goal    string
	Targets []Target
	// BuyPlan maps symbol to the quantity to buy; zero or absent skips.
	BuyPlan map[string]decimal.Decimal
	Deposit decimal.Decimal
}

// Result is the snapshot handed back to the caller for display.
type Result struct {
	Research  []research.Result
	Quotes    []market.Quote
	Advice    string
	Balance   decimal.Decimal
	Positions []market.Position
	Orders    []market.Order
}

type Coordinator struct {
	searcher research.Searcher
	quotes   quote.Port
	advisor  advisor.Advisor
	engine   *broker.Engine
	log      zerolog.Logger
}

func NewCoordinator(searcher research.Searcher, quotes quote.Port, adv advisor.Advisor, engine *broker.Engine, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		searcher: searcher,
		quotes:   quotes,
		advisor:  adv,
		engine:   engine,
		log:      log,
	}
}

// Run executes research -> quotes -> advice -> deposit -> buy plan.
// Research and advisory failures degrade to empty output; only ledger
// operations can fail the run.
func (c *Coordinator) Run(ctx context.Context, p Params) (*Result, error) {
	out := &Result{}

	results, err := c.searcher.Search(ctx, p.Topic, 6)
	if err != nil {
		c.log.Warn().Err(err).Str("topic", p.Topic).Msg("research failed")
	}
	out.Research = results

	for _, t := range p.Targets {
		q, err := c.quotes.Quote(ctx, t.Symbol, t.Market)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", t.Symbol).Msg("quote failed")
			q = market.Quote{Symbol: t.Symbol}
		}
		out.Quotes = append(out.Quotes, q)
	}

	if c.advisor != nil {
		advice, err := c.advisor.SuggestAllocation(ctx, p.Goal, out.Research, out.Quotes)
		if err != nil {
			c.log.Warn().Err(err).Msg("advisory failed")
		}
		out.Advice = advice
	}

	if p.Deposit.IsPositive() {
		if err := c.engine.Deposit(p.Deposit); err != nil {
			return nil, err
		}
	}

	for _, t := range p.Targets {
		qty, ok := p.BuyPlan[t.Symbol]
		if !ok || !qty.IsPositive() {
			continue
		}

		price, ok := priceFor(out.Quotes, t.Symbol)
		if !ok {
			c.log.Warn().Str("symbol", t.Symbol).Msg("skipping buy, no price")
			continue
		}

		order, err := c.engine.PlaceOrder(ctx, broker.OrderRequest{
			Symbol:   t.Symbol,
			Market:   t.Market,
			Side:     market.Buy,
			Quantity: qty,
			Price:    &price,
		})
		if err != nil {
			return nil, err
		}
		c.log.Info().Str("order_id", order.ID).Str("symbol", t.Symbol).Msg("buy executed")
	}

	if out.Balance, err = c.engine.Balance(); err != nil {
		return nil, err
	}
	if out.Positions, err = c.engine.Positions(); err != nil {
		return nil, err
	}
	if out.Orders, err = c.engine.Orders(); err != nil {
		return nil, err
	}
	return out, nil
}

// priceFor matches a gathered quote to a local symbol. Vendor symbols
// may carry a market suffix (600519.SS), so a suffix match counts.
func priceFor(quotes []market.Quote, symbol string) (decimal.Decimal, bool) {
	for _, q := range quotes {
		if !q.HasPrice() {
			continue
		}
		if q.Symbol == symbol || strings.HasPrefix(q.Symbol, symbol+".") || strings.HasSuffix(q.Symbol, symbol) {
			return q.Price, true
		}
	}
	return decimal.Zero, false
}
