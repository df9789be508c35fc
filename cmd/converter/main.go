package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"currency-converter/internal"
	"currency-converter/internal/api/http/convert"
	"currency-converter/internal/api/http/middleware"
	"currency-converter/internal/exchangerateapi"
	"currency-converter/internal/filecache"
	"currency-converter/internal/logger"
	"currency-converter/internal/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	// env
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(cfg.LogLevel)

	bases, err := cfg.Bases()
	if err != nil {
		return err
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(reg)

	// cache
	rateCache := filecache.New(cfg.CacheFile, cfg.CacheTTL, logg)
	if err := rateCache.Load(); err != nil {
		logg.Warn("rate cache not loaded, starting empty", "error", err)
	} else {
		logg.Info("rate cache loaded", "path", cfg.CacheFile, "bases", rateCache.Bases(), "last_update", rateCache.LastUpdate())
	}
	defer func() {
		if err := rateCache.Flush(); err != nil {
			logg.Error("failed to flush rate cache", "error", err)
		}
	}()

	// client + converter
	client := exchangerateapi.New(cfg.APIURL, cfg.APIKey, cfg.APITimeout)
	converter := internal.NewConverter(client, rateCache, appMetrics, logg)

	// instant fetch
	if err := converter.Refresh(ctx, bases); err != nil {
		logg.Warn("initial refresh failed", "error", err)
	}

	// cron
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return fmt.Errorf("load location %s: %w", cfg.Location, err)
	}
	scheduler := cron.New(
		cron.WithLocation(loc),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
	)

	// HTTP
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(appMetrics))

	convert.New(converter, internal.NewSlogAuditLogger(logg), logg).Register(r)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	g, gctx := errgroup.WithContext(ctx)

	_, err = scheduler.AddFunc(cfg.CronSpec, func() {
		if err := converter.Refresh(gctx, bases); err != nil {
			logg.Warn("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("add cron func: %w", err)
	}

	g.Go(func() error {
		return runCron(gctx, scheduler)
	})

	g.Go(func() error {
		return serveHTTP(gctx, ":"+cfg.HTTPPort, r, logg)
	})

	logg.Info("running, stop with Ctrl+C / SIGTERM", "port", cfg.HTTPPort, "warm_bases", bases)
	return g.Wait()
}

func runCron(ctx context.Context, c *cron.Cron) error {
	c.Start()
	defer func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	}()

	<-ctx.Done()
	return nil
}

func serveHTTP(ctx context.Context, addr string, h http.Handler, logg *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logg.Info("HTTP listening", "addr", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
