package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stockboard/internal/aggregate"
	"stockboard/internal/api"
	"stockboard/internal/config"
	"stockboard/internal/httpx"
	"stockboard/internal/news"
	"stockboard/internal/provider/sina"
	"stockboard/internal/provider/yahoo"
	"stockboard/internal/registry"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	logger := newLogger()
	defer logger.Sync()

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

	sinaClient := sina.New(sina.Config{
		URL:     cfg.Sina.URL,
		Referer: cfg.Sina.Referer,
		Timeout: time.Duration(cfg.Sina.TimeoutSec) * time.Second,
	}, httpClient, logger)

	yahooClient := yahoo.New(yahoo.Config{
		BaseURL:        cfg.Yahoo.BaseURL,
		Timeout:        time.Duration(cfg.Yahoo.TimeoutSec) * time.Second,
		MaxConcurrency: cfg.Yahoo.MaxConcurrency,
	}, httpClient, logger)

	newsCache := news.NewCache()
	fetcher := news.NewFetcher(news.FetcherConfig{
		BaseURL: cfg.News.BaseURL,
		Timeout: time.Duration(cfg.News.TimeoutSec) * time.Second,
	}, httpClient.HTTP)
	updater := news.NewUpdater(news.UpdaterConfig{
		FetchInterval: time.Duration(cfg.News.FetchIntervalSec) * time.Second,
		PassInterval:  time.Duration(cfg.News.PassIntervalSec) * time.Second,
	}, fetcher, newsCache, registry.List(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go updater.Run(ctx)

	svc := aggregate.New(sinaClient, yahooClient, newsCache, logger)
	server := api.New(svc, newsCache, cfg.Version, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec+5) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	if os.Getenv("APP_ENV") == "production" {
		return zap.Must(zap.NewProduction())
	}
	return zap.Must(zap.NewDevelopment())
}
