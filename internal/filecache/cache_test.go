package filecache_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal"
	"currency-converter/internal/filecache"
	"currency-converter/internal/logger"
)

var noon = time.Date(2024, 12, 26, 12, 0, 0, 0, time.UTC)

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newCache(path string, now time.Time) *filecache.Cache {
	return filecache.New(path, time.Hour, logger.Discard(), filecache.WithClock(fixed(now)))
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func usdTable(fetchedAt time.Time) internal.RateTable {
	return internal.NewRateTable(internal.USD, map[internal.CurrencyCode]decimal.Decimal{
		internal.EUR: decimal.RequireFromString("0.92"),
		internal.JPY: decimal.RequireFromString("151.37"),
	}, fetchedAt)
}

func TestCache_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")

	c := newCache(path, noon)
	c.Put(usdTable(noon.Add(-10 * time.Minute)))
	require.NoError(t, c.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "rates")
	assert.Contains(t, doc, "last_update")

	loaded := newCache(path, noon.Add(5*time.Minute))
	require.NoError(t, loaded.Load())

	table, ok := loaded.GetRates(internal.USD)
	require.True(t, ok)
	assert.True(t, table.FetchedAt.Equal(noon.Add(-10*time.Minute)))

	rate, ok := table.Rate(internal.JPY)
	require.True(t, ok)
	assert.Equal(t, "151.37", rate.String())
	assert.True(t, loaded.LastUpdate().Equal(noon))
	assert.Equal(t, []internal.CurrencyCode{internal.USD}, loaded.Bases())
}

func TestCache_Load_MissingFile(t *testing.T) {
	c := newCache(filepath.Join(t.TempDir(), "absent.json"), noon)

	require.NoError(t, c.Load())

	_, ok := c.GetRates(internal.USD)
	assert.False(t, ok)
	assert.Empty(t, c.Bases())
}

func TestCache_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	writeFile(t, path, `{"rates": {"USD": `)

	c := newCache(path, noon)
	c.Put(usdTable(noon))

	err := c.Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrCacheIO)
	_, ok := c.GetRates(internal.USD)
	assert.False(t, ok)
}

func TestCache_Load_BadLastUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	writeFile(t, path, `{"rates": {"USD": {"EUR": 0.92}}, "last_update": "yesterday"}`)

	err := newCache(path, noon).Load()

	assert.ErrorIs(t, err, internal.ErrCacheIO)
}

func TestCache_Load_StaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	writeFile(t, path, `{"rates": {"USD": {"EUR": 0.92}}, "last_update": "2024-12-26T10:59:59Z"}`)

	c := newCache(path, noon)

	require.NoError(t, c.Load())
	_, ok := c.GetRates(internal.USD)
	assert.False(t, ok)
	assert.True(t, c.LastUpdate().IsZero())
}

func TestCache_Load_NaiveTimestampAndUnknownCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	writeFile(t, path, `{
		"rates": {
			"USD": {"EUR": 0.92, "XYZ": 1.5, "GBP": "0.79"},
			"ABC": {"USD": 2}
		},
		"last_update": "2024-12-26T11:30:00.123456"
	}`)

	now := time.Date(2024, 12, 26, 12, 0, 0, 0, time.Local)
	c := newCache(path, now)

	require.NoError(t, c.Load())
	assert.Equal(t, []internal.CurrencyCode{internal.USD}, c.Bases())

	table, ok := c.GetRates(internal.USD)
	require.True(t, ok)

	_, ok = table.Rate("XYZ")
	assert.False(t, ok)

	rate, ok := table.Rate(internal.GBP)
	require.True(t, ok)
	assert.Equal(t, "0.79", rate.String())
}

func TestCache_Load_PerEntryFreshness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	writeFile(t, path, `{
		"rates": {
			"USD": {"EUR": 0.92},
			"EUR": {"USD": 1.087}
		},
		"last_update": "2024-12-26T11:50:00Z",
		"fetched_at": {
			"USD": "2024-12-26T11:50:00Z",
			"EUR": "2024-12-26T10:30:00Z"
		}
	}`)

	c := newCache(path, noon)

	require.NoError(t, c.Load())
	_, ok := c.GetRates(internal.USD)
	assert.True(t, ok)
	_, ok = c.GetRates(internal.EUR)
	assert.False(t, ok)
}

func TestCache_GetRates_ExpiresAfterWindow(t *testing.T) {
	now := noon
	c := filecache.New(filepath.Join(t.TempDir(), "rates.json"), time.Hour, logger.Discard(),
		filecache.WithClock(func() time.Time { return now }))

	c.Put(usdTable(noon))

	now = noon.Add(59 * time.Minute)
	_, ok := c.GetRates(internal.USD)
	assert.True(t, ok)

	now = noon.Add(time.Hour)
	_, ok = c.GetRates(internal.USD)
	assert.False(t, ok)
}

func TestCache_Flush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	c := newCache(path, noon)

	require.NoError(t, c.Flush())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	c.Put(usdTable(noon))
	require.NoError(t, c.Flush())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestCache_Save_FailureKeepsDirty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "rates.json")
	c := newCache(path, noon)
	c.Put(usdTable(noon))

	err := c.Save()
	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrCacheIO)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "missing"), 0o755))
	require.NoError(t, c.Flush())

	_, err = os.Stat(path)
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
