package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stockboard/internal/aggregate"
	"stockboard/internal/news"
	"stockboard/internal/provider/yahoo"
	"stockboard/internal/quote"
	"stockboard/internal/registry"
)

func init() { gin.SetMode(gin.TestMode) }

type stubBatch map[string]quote.Quote

func (s stubBatch) FetchBatch(context.Context, []string) map[string]quote.Quote { return s }

type stubBars struct {
	live  map[string]quote.Quote
	daily map[string]yahoo.DayResult
}

func (s stubBars) FetchLive(context.Context, []string) map[string]quote.Quote { return s.live }
func (s stubBars) FetchDaily(context.Context, []string, time.Time) map[string]yahoo.DayResult {
	return s.daily
}

func newTestServer(batch aggregate.BatchFetcher, bars aggregate.BarFetcher, cache *news.Cache) *Server {
	if cache == nil {
		cache = news.NewCache()
	}
	return New(aggregate.New(batch, bars, cache, nil), cache, "test", nil)
}

func do(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	s.Router().ServeHTTP(rr, req)
	return rr
}

func TestRoot_LivenessInfo(t *testing.T) {
	t.Parallel()

	cache := news.NewCache()
	cache.Set("NVDA", news.Entry{Title: "t", Link: "l"})
	s := newTestServer(stubBatch{}, stubBars{}, cache)

	rr := do(t, s, "/")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "online", body["status"])
	require.Equal(t, "test", body["version"])
	require.EqualValues(t, registry.Count(), body["instruments"])
	require.EqualValues(t, 1, body["newsCached"])
}

func TestStocks_LiveMode_FullLengthArray(t *testing.T) {
	t.Parallel()

	s := newTestServer(stubBatch{
		"gb_nvda": {Price: 182.5, ChangePercent: 1.25, ChangeAmount: 2.25},
	}, stubBars{}, nil)

	rr := do(t, s, "/api/stocks")
	require.Equal(t, http.StatusOK, rr.Code)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, registry.Count())

	first := records[0]
	require.Equal(t, "NVDA", first["id"])
	require.Equal(t, "NVDA", first["ticker"])
	require.Equal(t, "US", first["market"])
	require.Equal(t, "hardware", first["sector"])
	require.Equal(t, 182.5, first["currentPrice"])
	require.NotContains(t, first, "error")
	newsField, ok := first["news"].(map[string]any)
	require.True(t, ok, "news must always be present in live mode")
	require.NotEmpty(t, newsField["title"])

	// unresolved rows carry the sentinel, never disappear
	second := records[1]
	require.Equal(t, "AMD", second["id"])
	require.Equal(t, "-", second["currentPrice"])
	require.Equal(t, true, second["error"])
}

func TestStocks_HistoricalMode(t *testing.T) {
	t.Parallel()

	s := newTestServer(stubBatch{}, stubBars{daily: map[string]yahoo.DayResult{
		"NVDA":    {Quote: quote.Quote{Price: 180.5}},
		"2330.TW": {Err: errors.New("no bar")},
	}}, nil)

	rr := do(t, s, "/api/stocks?date=2026-01-15")
	require.Equal(t, http.StatusOK, rr.Code)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, registry.Count())

	byID := make(map[string]map[string]any, len(records))
	for _, r := range records {
		byID[r["id"].(string)] = r
	}

	nvda := byID["NVDA"]
	require.Equal(t, 180.5, nvda["currentPrice"])
	require.NotContains(t, nvda, "error")
	require.NotContains(t, nvda, "news")
	require.Equal(t, "2026-01-15 close", nvda["historicalNote"])

	tsmc := byID["2330"]
	require.Equal(t, "-", tsmc["currentPrice"])
	require.Equal(t, true, tsmc["error"])
	require.EqualValues(t, 0, tsmc["changePercent"])
}

func TestStocks_MalformedDate_BadRequest(t *testing.T) {
	t.Parallel()

	s := newTestServer(stubBatch{}, stubBars{}, nil)
	rr := do(t, s, "/api/stocks?date=not-a-date")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Contains(t, body["error"], "YYYY-MM-DD")
}

func TestCORS_AllOriginsAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(stubBatch{}, stubBars{}, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stocks", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	s.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightAccepted(t *testing.T) {
	t.Parallel()

	s := newTestServer(stubBatch{}, stubBars{}, nil)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/stocks", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	s.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
}
