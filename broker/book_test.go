package broker

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paperquant/aitrader/market"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuyPositionFirstBuy(t *testing.T) {
	pos := buyPosition(nil, "600519", market.MarketA, d("10"), d("1800"))

	if pos.Symbol != "600519" || pos.Market != market.MarketA {
		t.Fatalf("unexpected identity: %+v", pos)
	}
	if !pos.Quantity.Equal(d("10")) {
		t.Fatalf("quantity = %s, want 10", pos.Quantity)
	}
	if !pos.AvgPrice.Equal(d("1800")) {
		t.Fatalf("avg = %s, want 1800", pos.AvgPrice)
	}
}

func TestBuyPositionWeightedAverage(t *testing.T) {
	pos := buyPosition(nil, "600519", market.MarketA, d("10"), d("1800"))
	pos = buyPosition(&pos, "600519", market.MarketA, d("30"), d("2000"))

	// (10*1800 + 30*2000) / 40 = 1950
	if !pos.Quantity.Equal(d("40")) {
		t.Fatalf("quantity = %s, want 40", pos.Quantity)
	}
	if !pos.AvgPrice.Equal(d("1950")) {
		t.Fatalf("avg = %s, want 1950", pos.AvgPrice)
	}
}

func TestBuyPositionAverageIsOrderIndependent(t *testing.T) {
	a := buyPosition(nil, "X", market.MarketOther, d("5"), d("100"))
	a = buyPosition(&a, "X", market.MarketOther, d("15"), d("200"))

	b := buyPosition(nil, "X", market.MarketOther, d("15"), d("200"))
	b = buyPosition(&b, "X", market.MarketOther, d("5"), d("100"))

	if !a.AvgPrice.Equal(b.AvgPrice) {
		t.Fatalf("avg depends on arrival order: %s vs %s", a.AvgPrice, b.AvgPrice)
	}
	if !a.AvgPrice.Equal(d("175")) {
		t.Fatalf("avg = %s, want 175", a.AvgPrice)
	}
}

func TestSellPositionPartialKeepsAverage(t *testing.T) {
	pos := buyPosition(nil, "600519", market.MarketA, d("10"), d("1800"))

	next, closed := sellPosition(pos, d("4"))
	if closed {
		t.Fatal("partial sell should not close the position")
	}
	if !next.Quantity.Equal(d("6")) {
		t.Fatalf("quantity = %s, want 6", next.Quantity)
	}
	if !next.AvgPrice.Equal(d("1800")) {
		t.Fatalf("avg changed on sell: %s", next.AvgPrice)
	}
}

func TestSellPositionExactZeroCloses(t *testing.T) {
	pos := buyPosition(nil, "600519", market.MarketA, d("10"), d("1800"))

	_, closed := sellPosition(pos, d("10"))
	if !closed {
		t.Fatal("selling the full quantity must close the position")
	}
}
