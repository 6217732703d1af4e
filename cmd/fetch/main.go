package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"stockboard/internal/aggregate"
	"stockboard/internal/config"
	"stockboard/internal/httpx"
	"stockboard/internal/news"
	"stockboard/internal/provider/sina"
	"stockboard/internal/provider/yahoo"
)

// One-shot snapshot of the whole watch-list, printed as JSON. Handy for
// eyeballing upstream behavior without running the server (news is skipped;
// the cache would be cold anyway).
func main() {
	var dateStr string
	var configPath string
	var timeout int

	flag.StringVar(&dateStr, "date", "", "past trading day (YYYY-MM-DD); empty = live quotes")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.yaml (optional)")
	flag.IntVar(&timeout, "timeout", 20, "overall timeout seconds")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	sinaClient := sina.New(sina.Config{
		URL:     cfg.Sina.URL,
		Referer: cfg.Sina.Referer,
		Timeout: time.Duration(cfg.Sina.TimeoutSec) * time.Second,
	}, httpClient, zap.NewNop())
	yahooClient := yahoo.New(yahoo.Config{
		BaseURL:        cfg.Yahoo.BaseURL,
		Timeout:        time.Duration(cfg.Yahoo.TimeoutSec) * time.Second,
		MaxConcurrency: cfg.Yahoo.MaxConcurrency,
	}, httpClient, zap.NewNop())

	svc := aggregate.New(sinaClient, yahooClient, news.NewCache(), zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	var records []aggregate.Record
	if dateStr != "" {
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q, want YYYY-MM-DD\n", dateStr)
			os.Exit(2)
		}
		records = svc.SnapshotAt(ctx, day)
	} else {
		records = svc.Snapshot(ctx)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
}
