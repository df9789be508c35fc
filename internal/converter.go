package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"currency-converter/internal/metrics"
)

// Converter resolves rate tables through the cache, falling back to the
// provider on a miss, and converts amounts with exact decimal arithmetic.
type Converter struct {
	provider RatesProvider
	cache    RateCache
	metrics  *metrics.Metrics
	log      *slog.Logger

	fetches singleflight.Group
}

func NewConverter(provider RatesProvider, cache RateCache, m *metrics.Metrics, log *slog.Logger) *Converter {
	return &Converter{
		provider: provider,
		cache:    cache,
		metrics:  m,
		log:      log,
	}
}

func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to CurrencyCode) (decimal.Decimal, error) {
	result, err := c.convert(ctx, amount, from, to)
	c.metrics.ConversionsTotal.WithLabelValues(outcome(err)).Inc()
	return result, err
}

func (c *Converter) convert(ctx context.Context, amount decimal.Decimal, from, to CurrencyCode) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: must be positive, got %s", ErrInvalidAmount, amount.String())
	}
	if !from.IsSupported() {
		return decimal.Decimal{}, fmt.Errorf("%w %s", ErrUnsupportedCurrency, from)
	}
	if !to.IsSupported() {
		return decimal.Decimal{}, fmt.Errorf("%w %s", ErrUnsupportedCurrency, to)
	}

	if from == to {
		return amount, nil
	}

	table, err := c.Rates(ctx, from)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rate, ok := table.Rate(to)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w %s", ErrUnsupportedCurrency, to)
	}

	return amount.Mul(rate), nil
}

// Rates returns the table for base, fetching it from the provider when the
// cache has no fresh copy. Concurrent misses for one base share a fetch.
func (c *Converter) Rates(ctx context.Context, base CurrencyCode) (RateTable, error) {
	if table, ok := c.cache.GetRates(base); ok {
		c.metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		c.log.Debug("rates served from cache", "base", base, "fetched_at", table.FetchedAt)
		return table, nil
	}
	c.metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	return c.sharedFetch(ctx, base)
}

// sharedFetch joins or starts the in-flight fetch for base. The fetch is
// detached from ctx; each caller only stops waiting when its own ctx ends.
func (c *Converter) sharedFetch(ctx context.Context, base CurrencyCode) (RateTable, error) {
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.fetches.DoChan(string(base), func() (any, error) {
		return c.fetch(fetchCtx, base)
	})

	select {
	case <-ctx.Done():
		return RateTable{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return RateTable{}, res.Err
		}
		return res.Val.(RateTable), nil
	}
}

func (c *Converter) fetch(ctx context.Context, base CurrencyCode) (RateTable, error) {
	c.log.Info("fetching rates from provider", "base", base)

	table, err := c.provider.LatestRates(ctx, base)
	if err != nil {
		c.metrics.ProviderFetchesTotal.WithLabelValues("error").Inc()
		c.log.Warn("provider fetch failed", "base", base, "error", err)
		return RateTable{}, err
	}
	c.metrics.ProviderFetchesTotal.WithLabelValues("success").Inc()

	c.cache.Put(table)
	if err := c.cache.Save(); err != nil {
		c.log.Error("failed to persist rate cache", "base", base, "error", err)
	}

	return table, nil
}

// Refresh fetches every base that has no fresh cached table.
func (c *Converter) Refresh(ctx context.Context, bases []CurrencyCode) error {
	var errs []error
	for _, base := range bases {
		if _, ok := c.cache.GetRates(base); ok {
			continue
		}
		if _, err := c.sharedFetch(ctx, base); err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", base, err))
		}
	}
	return errors.Join(errs...)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrUnsupportedCurrency):
		return "unsupported_currency"
	case errors.Is(err, ErrProvider):
		return "provider_error"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
