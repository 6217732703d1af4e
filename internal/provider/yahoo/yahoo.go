package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockboard/internal/httpx"
	"stockboard/internal/quote"
)

// Config controls the daily-bar client.
type Config struct {
	Name           string
	BaseURL        string // chart API host, overridable for tests
	Timeout        time.Duration
	MaxConcurrency int // cap on concurrent per-ticker fetches
}

// Client fetches daily bars per ticker from a Yahoo-chart-style JSON API.
// It serves two roles: live quotes for instruments the batch provider does
// not cover, and closes for an explicit past date for any instrument.
type Client struct {
	cfg    Config
	client *httpx.Client
	log    *zap.Logger
}

// DayResult is one ticker's outcome of a dated fetch. Missing bars are
// reported per ticker via Err instead of dropping the ticker, so the caller
// can flag the row.
type DayResult struct {
	Quote quote.Quote
	Err   error
}

func New(cfg Config, hc *httpx.Client, log *zap.Logger) *Client {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 16
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, client: hc, log: log}
}

func (c *Client) Name() string { return c.cfg.Name }

// FetchLive returns the latest close and the change versus the prior close
// for each ticker. Fetches run concurrently, capped by MaxConcurrency; a
// failed ticker is simply absent from the map. A ticker with a single bar
// yields a zero change.
func (c *Client) FetchLive(ctx context.Context, tickers []string) map[string]quote.Quote {
	out := make(map[string]quote.Quote, len(tickers))
	if len(tickers) == 0 {
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrency)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			closes, err := c.fetchCloses(gctx, ticker, url.Values{"interval": {"1d"}, "range": {"5d"}})
			if err != nil || len(closes) == 0 {
				if err != nil {
					c.log.Warn("yahoo: live fetch", zap.String("ticker", ticker), zap.Error(err))
				}
				return nil
			}
			price := closes[len(closes)-1]
			prev := price
			if len(closes) > 1 {
				prev = closes[len(closes)-2]
			}
			mu.Lock()
			out[ticker] = quote.FromPrevClose(price, prev)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// FetchDaily returns the close for the UTC day containing date, for every
// ticker. The window is exactly [date 00:00, date+24h): a well-formed date
// on which the market was closed produces a DayResult with Err set, never a
// substitute from an adjacent trading day. Every requested ticker appears in
// the returned map.
func (c *Client) FetchDaily(ctx context.Context, tickers []string, date time.Time) map[string]DayResult {
	out := make(map[string]DayResult, len(tickers))
	if len(tickers) == 0 {
		return out
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	params := url.Values{
		"interval": {"1d"},
		"period1":  {fmt.Sprintf("%d", day.Unix())},
		"period2":  {fmt.Sprintf("%d", day.Add(24*time.Hour).Unix())},
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrency)
	for _, ticker := range tickers {
		ticker := ticker
		g.Go(func() error {
			res := DayResult{}
			closes, err := c.fetchCloses(gctx, ticker, params)
			switch {
			case err != nil:
				res.Err = err
			case len(closes) == 0:
				res.Err = fmt.Errorf("no bar for %s on %s", ticker, day.Format("2006-01-02"))
			default:
				// close-only bar: the prior session is outside the window,
				// so the deltas stay zero
				res.Quote = quote.New(closes[0], 0, 0)
			}
			mu.Lock()
			out[ticker] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// fetchCloses returns the non-null closes of one ticker's chart response, in
// bar order.
func (c *Client) fetchCloses(ctx context.Context, ticker string, params url.Values) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.cfg.BaseURL, url.PathEscape(ticker), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("chart %s -> %d: %s", ticker, resp.StatusCode, string(b))
	}

	var data chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode chart %s: %w", ticker, err)
	}
	if data.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s (%s)", ticker, data.Chart.Error.Description, data.Chart.Error.Code)
	}
	if len(data.Chart.Result) == 0 || len(data.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}
	raw := data.Chart.Result[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v != nil {
			closes = append(closes, *v)
		}
	}
	return closes, nil
}
