package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/paperquant/aitrader/market"
)

// SinaURL is the hq list endpoint serving A-share and HK quotes.
const SinaURL = "https://hq.sinajs.cn/list="

// Sina fetches quotes from the Sina hq endpoint. The response is one
// line per symbol: var hq_str_sh600519="name,open,prev,last,...";
type Sina struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewSina() *Sina {
	return NewSinaWithURL(SinaURL)
}

func NewSinaWithURL(baseURL string) *Sina {
	return &Sina{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 8 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

func (s *Sina) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	key := market.SinaSymbol(symbol, m)
	if key == "" {
		return market.Quote{}, fmt.Errorf("%w: sina does not cover market %s", ErrUnavailable, m)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+key, nil)
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", "https://finance.sina.com.cn")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return market.Quote{}, fmt.Errorf("%w: sina status %d", ErrUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	q, err := parseSinaLine(string(raw), symbol, m)
	if err != nil {
		return market.Quote{}, err
	}
	return q, nil
}

func parseSinaLine(text, symbol string, m market.Market) (market.Quote, error) {
	if !strings.Contains(text, "hq_str") {
		return market.Quote{}, fmt.Errorf("%w: unexpected sina payload", ErrUnavailable)
	}

	_, payload, ok := strings.Cut(text, "=")
	if !ok {
		return market.Quote{}, fmt.Errorf("%w: unexpected sina payload", ErrUnavailable)
	}
	payload = strings.Trim(strings.TrimSpace(payload), `";`)

	parts := strings.Split(payload, ",")
	if len(parts) == 0 || parts[0] == "" {
		return market.Quote{}, fmt.Errorf("%w: empty sina quote for %s", ErrUnavailable, symbol)
	}

	// A-shares report the last price at index 3, HK at index 6.
	idx := 3
	if m == market.MarketHK {
		idx = 6
		if len(parts) <= idx {
			idx = 1
		}
	}

	q := market.Quote{Symbol: symbol, Name: parts[0]}
	if len(parts) > idx && parts[idx] != "" {
		if price, err := decimal.NewFromString(parts[idx]); err == nil {
			q.Price = price
		}
	}

	if !q.HasPrice() {
		return market.Quote{}, fmt.Errorf("%w: no price for %s", ErrUnavailable, symbol)
	}
	return q, nil
}
