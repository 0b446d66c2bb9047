package market

import "testing"

func TestYahooSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		market Market
		want   string
	}{
		{"600519", MarketA, "600519.SS"},
		{"900948", MarketA, "900948.SS"},
		{"000001", MarketA, "000001.SZ"},
		{"300750", MarketA, "300750.SZ"},
		{"0700", MarketHK, "0700.HK"},
		{"700", MarketHK, "0700.HK"},
		{"9988", MarketHK, "9988.HK"},
		{"AAPL", MarketOther, "AAPL"},
	}
	for _, c := range cases {
		if got := YahooSymbol(c.symbol, c.market); got != c.want {
			t.Errorf("YahooSymbol(%q, %s) = %q, want %q", c.symbol, c.market, got, c.want)
		}
	}
}

func TestSinaSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		market Market
		want   string
	}{
		{"600519", MarketA, "sh600519"},
		{"000001", MarketA, "sz000001"},
		{"700", MarketHK, "hk00700"},
		{"0700", MarketHK, "hk00700"},
		{"9988", MarketHK, "hk09988"},
		{"AAPL", MarketOther, ""},
	}
	for _, c := range cases {
		if got := SinaSymbol(c.symbol, c.market); got != c.want {
			t.Errorf("SinaSymbol(%q, %s) = %q, want %q", c.symbol, c.market, got, c.want)
		}
	}
}

func TestParseSide(t *testing.T) {
	if s, err := ParseSide(" Buy "); err != nil || s != Buy {
		t.Fatalf("ParseSide(Buy) = %v, %v", s, err)
	}
	if s, err := ParseSide("SELL"); err != nil || s != Sell {
		t.Fatalf("ParseSide(SELL) = %v, %v", s, err)
	}
	if _, err := ParseSide("hold"); err == nil {
		t.Fatal("ParseSide(hold) should fail")
	}
}

func TestParseMarket(t *testing.T) {
	if m := ParseMarket("a"); m != MarketA {
		t.Fatalf("ParseMarket(a) = %s", m)
	}
	if m := ParseMarket("hk"); m != MarketHK {
		t.Fatalf("ParseMarket(hk) = %s", m)
	}
	if m := ParseMarket("nasdaq"); m != MarketOther {
		t.Fatalf("ParseMarket(nasdaq) = %s", m)
	}
}
