package broker

import (
	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

// buyPosition folds a fill into the holding for one symbol and returns
// the resulting position. On the first buy the average price is the
// fill price; afterwards it is the quantity-weighted mean of all buys.
func buyPosition(cur *market.Position, symbol string, mkt market.Market, qty, price decimal.Decimal) market.Position {
	if cur == nil {
		return market.Position{
			Symbol:   symbol,
			Market:   mkt,
			Quantity: qty,
			AvgPrice: price,
		}
	}

	newQty := cur.Quantity.Add(qty)
	cost := cur.Quantity.Mul(cur.AvgPrice).Add(qty.Mul(price))

	return market.Position{
		Symbol:   cur.Symbol,
		Market:   cur.Market,
		Quantity: newQty,
		AvgPrice: cost.Div(newQty),
	}
}

// sellPosition reduces the holding by qty. The average price never
// moves on a sell; cost basis only changes on buys. closed reports that
// the quantity reached exactly zero, in which case the position must be
// deleted rather than kept with a stale average.
//
// The caller has already checked qty <= cur.Quantity.
func sellPosition(cur market.Position, qty decimal.Decimal) (next market.Position, closed bool) {
	remaining := cur.Quantity.Sub(qty)
	if remaining.IsZero() {
		return market.Position{}, true
	}

	next = cur
	next.Quantity = remaining
	return next, false
}
