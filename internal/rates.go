package internal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is a snapshot of multiplicative rates relative to Base.
type RateTable struct {
	Base      CurrencyCode
	Rates     map[CurrencyCode]decimal.Decimal
	FetchedAt time.Time
}

// NewRateTable keeps only supported, strictly positive rates and pins the
// base's own rate to 1.
func NewRateTable(base CurrencyCode, rates map[CurrencyCode]decimal.Decimal, fetchedAt time.Time) RateTable {
	out := make(map[CurrencyCode]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		if !code.IsSupported() || !rate.IsPositive() {
			continue
		}
		out[code] = rate
	}
	out[base] = decimal.NewFromInt(1)

	return RateTable{Base: base, Rates: out, FetchedAt: fetchedAt}
}

func (t RateTable) Rate(code CurrencyCode) (decimal.Decimal, bool) {
	r, ok := t.Rates[code]
	return r, ok
}

// Fresh reports whether the table is younger than window at now.
func (t RateTable) Fresh(now time.Time, window time.Duration) bool {
	return now.Sub(t.FetchedAt) < window
}

type RatesProvider interface {
	LatestRates(ctx context.Context, base CurrencyCode) (RateTable, error)
}

type RateCache interface {
	GetRates(base CurrencyCode) (RateTable, bool)
	Put(table RateTable)
	Save() error
}
