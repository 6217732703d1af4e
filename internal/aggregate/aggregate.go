package aggregate

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stockboard/internal/news"
	"stockboard/internal/provider/yahoo"
	"stockboard/internal/quote"
	"stockboard/internal/registry"
)

// BatchFetcher is the realtime batch source keyed by provider code.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, codes []string) map[string]quote.Quote
}

// BarFetcher is the daily-bar source keyed by ticker.
type BarFetcher interface {
	FetchLive(ctx context.Context, tickers []string) map[string]quote.Quote
	FetchDaily(ctx context.Context, tickers []string, date time.Time) map[string]yahoo.DayResult
}

// Record is one dashboard row: instrument fields plus either a resolved
// quote or the error sentinel, and a headline (live mode) or a historical
// note (dated mode).
type Record struct {
	ID             string          `json:"id"`
	Ticker         string          `json:"ticker"`
	Name           string          `json:"name"`
	Market         registry.Market `json:"market"`
	Sector         registry.Sector `json:"sector"`
	SubSector      string          `json:"subSector"`
	CurrentPrice   PriceValue      `json:"currentPrice"`
	ChangePercent  float64         `json:"changePercent"`
	ChangeAmount   float64         `json:"changeAmount"`
	Error          bool            `json:"error,omitempty"`
	News           *news.Entry     `json:"news,omitempty"`
	HistoricalNote string          `json:"historicalNote,omitempty"`
}

// PriceValue marshals as a JSON number, or as the "-" sentinel for rows whose
// quote could not be resolved.
type PriceValue struct {
	Value float64
	Valid bool
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte(`"-"`), nil
	}
	return json.Marshal(p.Value)
}

func (p *PriceValue) UnmarshalJSON(b []byte) error {
	if string(b) == `"-"` {
		*p = PriceValue{}
		return nil
	}
	if err := json.Unmarshal(b, &p.Value); err != nil {
		return err
	}
	p.Valid = true
	return nil
}

// Service joins the registry, the two quote sources and the news cache into
// full-length dashboard snapshots. Every snapshot has exactly one record per
// registry instrument, in registry order.
type Service struct {
	batch BatchFetcher
	bars  BarFetcher
	news  *news.Cache
	log   *zap.Logger
}

func New(batch BatchFetcher, bars BarFetcher, cache *news.Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{batch: batch, bars: bars, news: cache, log: log}
}

// Snapshot builds the live view. The batch source covers instruments with a
// provider code and the bar source covers the rest; the two fetches run
// concurrently and are both awaited before any row is built. Instruments
// neither source resolved get the error sentinel instead of being dropped.
func (s *Service) Snapshot(ctx context.Context) []Record {
	primary, fallback := registry.PartitionBySource()

	codes := make([]string, 0, len(primary))
	for _, inst := range primary {
		codes = append(codes, inst.SinaCode)
	}
	tickers := make([]string, 0, len(fallback))
	for _, inst := range fallback {
		tickers = append(tickers, inst.Ticker)
	}

	var (
		batchQuotes map[string]quote.Quote
		liveQuotes  map[string]quote.Quote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		batchQuotes = s.batch.FetchBatch(gctx, codes)
		return nil
	})
	g.Go(func() error {
		liveQuotes = s.bars.FetchLive(gctx, tickers)
		return nil
	})
	_ = g.Wait()

	records := make([]Record, 0, registry.Count())
	for _, inst := range registry.List() {
		rec := base(inst)
		q, ok := resolve(inst, batchQuotes, liveQuotes)
		if ok {
			fill(&rec, q)
		} else {
			markError(&rec)
		}
		entry := s.news.Lookup(inst.ID)
		rec.News = &entry
		records = append(records, rec)
	}
	s.log.Debug("live snapshot built",
		zap.Int("batch", len(batchQuotes)),
		zap.Int("fallback", len(liveQuotes)))
	return records
}

// SnapshotAt builds the view for a past date. All instruments go through the
// bar source; news is omitted and a historical note is attached instead.
// Instruments with no bar on that date carry the error sentinel.
func (s *Service) SnapshotAt(ctx context.Context, date time.Time) []Record {
	all := registry.List()
	tickers := make([]string, 0, len(all))
	for _, inst := range all {
		tickers = append(tickers, inst.Ticker)
	}
	results := s.bars.FetchDaily(ctx, tickers, date)

	note := date.Format("2006-01-02") + " close"
	records := make([]Record, 0, len(all))
	for _, inst := range all {
		rec := base(inst)
		rec.HistoricalNote = note
		if res, ok := results[inst.Ticker]; ok && res.Err == nil {
			fill(&rec, res.Quote)
		} else {
			markError(&rec)
		}
		records = append(records, rec)
	}
	return records
}

func base(inst registry.Instrument) Record {
	return Record{
		ID:        inst.ID,
		Ticker:    inst.Ticker,
		Name:      inst.Name,
		Market:    inst.Market,
		Sector:    inst.Sector,
		SubSector: inst.SubSector,
	}
}

// resolve looks the instrument up by provider code first, ticker second.
func resolve(inst registry.Instrument, batch, live map[string]quote.Quote) (quote.Quote, bool) {
	if inst.SinaCode != "" {
		if q, ok := batch[inst.SinaCode]; ok {
			return q, true
		}
	}
	if q, ok := live[inst.Ticker]; ok {
		return q, true
	}
	return quote.Quote{}, false
}

func fill(rec *Record, q quote.Quote) {
	rec.CurrentPrice = PriceValue{Value: q.Price, Valid: true}
	rec.ChangePercent = q.ChangePercent
	rec.ChangeAmount = q.ChangeAmount
}

func markError(rec *Record) {
	rec.CurrentPrice = PriceValue{}
	rec.ChangePercent = 0
	rec.ChangeAmount = 0
	rec.Error = true
}
