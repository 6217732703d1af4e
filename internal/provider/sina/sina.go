package sina

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"stockboard/internal/httpx"
	"stockboard/internal/quote"
)

// Config controls the batch realtime quote client.
type Config struct {
	Name    string
	URL     string // list endpoint; codes are appended comma-joined
	Referer string // the upstream rejects requests without it
	Timeout time.Duration
}

// Client fetches realtime quotes for many instruments in one round trip.
// The upstream answers with GBK-encoded lines of the form
//
//	var hq_str_<code>="field0,field1,...";
//
// one line per requested code, with the field layout depending on the
// code's market prefix.
type Client struct {
	cfg    Config
	client *httpx.Client
	log    *zap.Logger
}

func New(cfg Config, hc *httpx.Client, log *zap.Logger) *Client {
	if cfg.Name == "" {
		cfg.Name = "Sina"
	}
	if cfg.URL == "" {
		cfg.URL = "https://hq.sinajs.cn/list="
	}
	if cfg.Referer == "" {
		cfg.Referer = "https://finance.sina.com.cn/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, client: hc, log: log}
}

func (c *Client) Name() string { return c.cfg.Name }

// FetchBatch resolves quotes for all codes in a single request and returns a
// map keyed by code. Partial failure is the contract: malformed lines are
// skipped so one bad line never voids the batch, and a failed or non-2xx call
// yields an empty map rather than an error.
func (c *Client) FetchBatch(ctx context.Context, codes []string) map[string]quote.Quote {
	out := make(map[string]quote.Quote, len(codes))
	if len(codes) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL+strings.Join(codes, ","), nil)
	if err != nil {
		c.log.Warn("sina: build request", zap.Error(err))
		return out
	}
	req.Header.Set("Referer", c.cfg.Referer)

	resp, err := c.client.Do(ctx, req)
	if err != nil {
		c.log.Warn("sina: batch fetch", zap.Error(err))
		return out
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("sina: batch fetch", zap.Int("status", resp.StatusCode))
		return out
	}

	body, err := io.ReadAll(transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder()))
	if err != nil {
		c.log.Warn("sina: read body", zap.Error(err))
		return out
	}

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		code, q, ok := parseLine(line)
		if !ok {
			continue
		}
		out[code] = q
	}
	return out
}

// format identifies the field layout of one response line.
type format int

const (
	usADR      format = iota // US stocks traded as ADRs
	hkRealtime               // HK realtime feed
	cnDomestic               // Shanghai/Shenzhen A-shares
)

// classify maps a provider code to its payload layout by prefix. Keeping the
// field-index mapping per variant means format drift is a one-place change.
func classify(code string) format {
	switch {
	case strings.HasPrefix(code, "gb_"):
		return usADR
	case strings.HasPrefix(code, "rt_hk"):
		return hkRealtime
	default:
		return cnDomestic
	}
}

// parseLine extracts the code and quote from one response line. Any
// malformation (missing separator, short field list, non-numeric field)
// reports ok=false and the line is dropped.
func parseLine(line string) (code string, q quote.Quote, ok bool) {
	rawCode, rawData, found := strings.Cut(line, "=")
	if !found {
		return "", quote.Quote{}, false
	}
	code = rawCode
	if i := strings.LastIndex(rawCode, "_str_"); i >= 0 {
		code = rawCode[i+len("_str_"):]
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return "", quote.Quote{}, false
	}

	fields := strings.Split(strings.Trim(strings.TrimSpace(rawData), `";`), ",")
	if len(fields) < 5 {
		return "", quote.Quote{}, false
	}

	switch classify(code) {
	case usADR:
		price, err1 := strconv.ParseFloat(fields[1], 64)
		percent, err2 := strconv.ParseFloat(fields[2], 64)
		amount, err3 := strconv.ParseFloat(fields[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return "", quote.Quote{}, false
		}
		return code, quote.New(price, percent, amount), true
	case hkRealtime:
		if len(fields) < 7 {
			return "", quote.Quote{}, false
		}
		price, err1 := strconv.ParseFloat(fields[6], 64)
		prev, err2 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil {
			return "", quote.Quote{}, false
		}
		return code, quote.FromPrevClose(price, prev), true
	default: // cnDomestic
		price, err1 := strconv.ParseFloat(fields[3], 64)
		prev, err2 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil {
			return "", quote.Quote{}, false
		}
		return code, quote.FromPrevClose(price, prev), true
	}
}
