package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Market identifies the venue an instrument trades on.
type Market string

const (
	MarketA     Market = "A"  // mainland A-shares (Shanghai/Shenzhen)
	MarketHK    Market = "HK" // Hong Kong
	MarketOther Market = "OTHER"
)

// ParseMarket normalizes a user-supplied market string. Unknown values
// map to MarketOther rather than failing; the market only affects quote
// symbol translation, never ledger math.
func ParseMarket(s string) Market {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return MarketA
	case "HK":
		return MarketHK
	default:
		return MarketOther
	}
}

// Side is the direction of an order.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide validates a user-supplied side string.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("side must be 'buy' or 'sell', got %q", s)
	}
}

// Position is a currently-held quantity of one instrument together with
// its weighted average acquisition cost. A Position exists only while
// Quantity is strictly positive.
type Position struct {
	Symbol   string
	Market   Market
	Quantity decimal.Decimal
	AvgPrice decimal.Decimal
}

// Order is the immutable record of one executed trade. IDs are ULIDs,
// so lexicographic order matches execution order.
type Order struct {
	ID       string
	Symbol   string
	Market   Market
	Side     Side
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Time     time.Time
}

// Notional is quantity times price.
func (o Order) Notional() decimal.Decimal {
	return o.Quantity.Mul(o.Price)
}

// Quote is a point-in-time price report from a provider. Price may be
// absent when the provider had no usable data.
type Quote struct {
	Symbol        string
	Name          string
	Currency      string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Time          time.Time
}

// HasPrice reports whether the quote carries a usable (positive) price.
func (q Quote) HasPrice() bool {
	return q.Price.IsPositive()
}
