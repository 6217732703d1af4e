package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/mmcdole/gofeed"
)

//go:generate mockgen -package=news -destination=mock_http_client_test.go -source=fetcher.go HTTPClient

// HTTPClient is the outbound transport seam, satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetcherConfig controls the headline search client.
type FetcherConfig struct {
	BaseURL string // RSS search endpoint, overridable for tests
	Timeout time.Duration
}

// Fetcher resolves one headline per query from a Google-News-style RSS
// search feed.
type Fetcher struct {
	cfg    FetcherConfig
	client HTTPClient
	parser *gofeed.Parser
}

func NewFetcher(cfg FetcherConfig, client HTTPClient) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://news.google.com/rss/search"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{cfg: cfg, client: client, parser: gofeed.NewParser()}
}

// FetchHeadline returns the first result item for query. The feed locale
// follows the query language: Han characters select the zh-CN edition,
// anything else en-US. Source suffixes ("... - Reuters") are trimmed from
// the title.
func (f *Fetcher) FetchHeadline(ctx context.Context, query string) (Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.searchURL(query), nil)
	if err != nil {
		return Entry{}, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return Entry{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Entry{}, fmt.Errorf("news search %q -> %d", query, resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return Entry{}, fmt.Errorf("parse feed for %q: %w", query, err)
	}
	if len(feed.Items) == 0 {
		return Entry{}, fmt.Errorf("no items for %q", query)
	}

	item := feed.Items[0]
	title, _, _ := strings.Cut(item.Title, " - ")
	return Entry{
		Title: strings.TrimSpace(title),
		Link:  item.Link,
		Date:  item.Published,
	}, nil
}

func (f *Fetcher) searchURL(query string) string {
	u := f.cfg.BaseURL + "?q=" + url.QueryEscape(query)
	if containsHan(query) {
		return u + "&hl=zh-CN&gl=CN&ceid=CN:zh-Hans"
	}
	return u + "&hl=en-US&gl=US&ceid=US:en"
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
