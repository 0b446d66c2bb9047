package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/paperquant/aitrader/market"
)

// YahooURL is the public v7 quote endpoint.
const YahooURL = "https://query1.finance.yahoo.com/v7/finance/quote"

const userAgent = "Mozilla/5.0"

// Yahoo fetches quotes from the Yahoo Finance v7 API, translating
// A-share and HK codes into Yahoo's suffixed symbol form.
type Yahoo struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewYahoo() *Yahoo {
	return NewYahooWithURL(YahooURL)
}

// NewYahooWithURL exists so tests can point the client at a stub server.
func NewYahooWithURL(baseURL string) *Yahoo {
	return &Yahoo{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Yahoo throttles aggressively on unauthenticated traffic.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

type yahooResponse struct {
	QuoteResponse struct {
		Result []yahooQuote `json:"result"`
	} `json:"quoteResponse"`
}

type yahooQuote struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	ShortName                  string   `json:"shortName"`
	Currency                   string   `json:"currency"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketChange        *float64 `json:"regularMarketChange"`
	RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
	RegularMarketTime          int64    `json:"regularMarketTime"`
}

func (y *Yahoo) Quote(ctx context.Context, symbol string, m market.Market) (market.Quote, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	vendorSymbol := market.YahooSymbol(symbol, m)

	u := fmt.Sprintf("%s?symbols=%s", y.baseURL, url.QueryEscape(vendorSymbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return market.Quote{}, fmt.Errorf("%w: yahoo status %d", ErrUnavailable, resp.StatusCode)
	}

	var body yahooResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return market.Quote{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return market.Quote{}, fmt.Errorf("%w: no result for %s", ErrUnavailable, vendorSymbol)
	}

	r := body.QuoteResponse.Result[0]
	q := market.Quote{
		Symbol:   r.Symbol,
		Name:     firstNonEmpty(r.LongName, r.ShortName),
		Currency: r.Currency,
	}
	if r.RegularMarketPrice != nil {
		q.Price = decimal.NewFromFloat(*r.RegularMarketPrice)
	}
	if r.RegularMarketChange != nil {
		q.Change = decimal.NewFromFloat(*r.RegularMarketChange)
	}
	if r.RegularMarketChangePercent != nil {
		q.ChangePercent = decimal.NewFromFloat(*r.RegularMarketChangePercent)
	}
	if r.RegularMarketTime > 0 {
		q.Time = time.Unix(r.RegularMarketTime, 0).UTC()
	}

	if !q.HasPrice() {
		return market.Quote{}, fmt.Errorf("%w: no price for %s", ErrUnavailable, vendorSymbol)
	}
	return q, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
