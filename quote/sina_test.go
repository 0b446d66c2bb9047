package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paperquant/aitrader/market"
)

func TestParseSinaLineAShare(t *testing.T) {
	t.Parallel()

	line := `var hq_str_sh600519="贵州茅台,1795.00,1790.00,1802.50,1810.00,1788.00";`
	q, err := parseSinaLine(line, "600519", market.MarketA)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Name != "贵州茅台" {
		t.Fatalf("name = %q", q.Name)
	}
	if q.Price.String() != "1802.5" {
		t.Fatalf("price = %s, want 1802.5", q.Price)
	}
}

func TestParseSinaLineHK(t *testing.T) {
	t.Parallel()

	line := `var hq_str_hk00700="TENCENT,腾讯控股,478.000,482.400,484.800,476.200,480.600,2.20,0.46";`
	q, err := parseSinaLine(line, "0700", market.MarketHK)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Price.String() != "480.6" {
		t.Fatalf("price = %s, want 480.6", q.Price)
	}
}

func TestParseSinaLineEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := parseSinaLine(`var hq_str_sh999999="";`, "999999", market.MarketA)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestSinaQuoteHTTP(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		fmt.Fprint(w, `var hq_str_sh600519="贵州茅台,1795.00,1790.00,1802.50,1810.00,1788.00";`)
	}))
	defer srv.Close()

	s := NewSinaWithURL(srv.URL + "/list=")
	q, err := s.Quote(context.Background(), "600519", market.MarketA)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if gotPath != "/list=sh600519" {
		t.Fatalf("requested %q, want /list=sh600519", gotPath)
	}
	if q.Price.String() != "1802.5" {
		t.Fatalf("price = %s", q.Price)
	}
}

func TestSinaQuoteUnsupportedMarket(t *testing.T) {
	t.Parallel()

	s := NewSina()
	_, err := s.Quote(context.Background(), "AAPL", market.MarketOther)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}
