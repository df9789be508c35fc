package filecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"currency-converter/internal"
)

// document is the on-disk layout. fetched_at is optional: a base without it
// is as old as last_update.
type document struct {
	Rates      map[string]map[string]json.RawMessage `json:"rates"`
	LastUpdate string                                `json:"last_update"`
	FetchedAt  map[string]string                     `json:"fetched_at,omitempty"`
}

// Python's datetime.isoformat() writes naive timestamps; accept those too.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

type Option func(*Cache)

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// Cache holds rate tables keyed by base currency and persists them to a JSON file.
type Cache struct {
	path   string
	window time.Duration
	now    func() time.Time
	log    *slog.Logger

	mu         sync.RWMutex
	tables     map[internal.CurrencyCode]internal.RateTable
	lastUpdate time.Time
	dirty      bool

	saveMu sync.Mutex
}

func New(path string, window time.Duration, log *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		path:   path,
		window: window,
		now:    time.Now,
		log:    log,
		tables: make(map[internal.CurrencyCode]internal.RateTable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory state with the persisted one. A missing file
// is an empty cache. An unreadable or malformed file also leaves the cache
// empty and is reported as ErrCacheIO.
func (c *Cache) Load() error {
	tables, lastUpdate, err := c.read()
	if tables == nil {
		tables = make(map[internal.CurrencyCode]internal.RateTable)
	}

	c.mu.Lock()
	c.tables = tables
	c.lastUpdate = lastUpdate
	c.dirty = false
	c.mu.Unlock()

	return err
}

func (c *Cache) read() (map[internal.CurrencyCode]internal.RateTable, time.Time, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.log.Debug("rate cache file not found, starting empty", "path", c.path)
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: read %s: %w", internal.ErrCacheIO, c.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: decode %s: %w", internal.ErrCacheIO, c.path, err)
	}

	lastUpdate, err := parseTimestamp(doc.LastUpdate)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: last_update in %s: %w", internal.ErrCacheIO, c.path, err)
	}

	now := c.now()
	if now.Sub(lastUpdate) >= c.window {
		c.log.Debug("rate cache file is stale, starting empty", "path", c.path, "last_update", lastUpdate)
		return nil, time.Time{}, nil
	}

	tables := make(map[internal.CurrencyCode]internal.RateTable, len(doc.Rates))
	for rawBase, rawRates := range doc.Rates {
		base := internal.CurrencyCode(strings.ToUpper(strings.TrimSpace(rawBase)))
		if !base.IsSupported() {
			continue
		}

		fetchedAt := lastUpdate
		if ts, ok := doc.FetchedAt[rawBase]; ok {
			if t, err := parseTimestamp(ts); err == nil {
				fetchedAt = t
			}
		}
		if now.Sub(fetchedAt) >= c.window {
			continue
		}

		rates := make(map[internal.CurrencyCode]decimal.Decimal, len(rawRates))
		for rawCode, raw := range rawRates {
			rate, err := decimal.NewFromString(strings.Trim(string(raw), `"`))
			if err != nil {
				continue
			}
			rates[internal.CurrencyCode(strings.ToUpper(rawCode))] = rate
		}

		tables[base] = internal.NewRateTable(base, rates, fetchedAt)
	}

	return tables, lastUpdate, nil
}

// GetRates returns the table for base only while it is within the freshness window.
func (c *Cache) GetRates(base internal.CurrencyCode) (internal.RateTable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tables[base]
	if !ok || !t.Fresh(c.now(), c.window) {
		return internal.RateTable{}, false
	}
	return t, true
}

// Put replaces the table stored under table.Base.
func (c *Cache) Put(table internal.RateTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[table.Base] = table
	c.dirty = true
}

// Save stamps the cache and writes it to a temp file that is then renamed
// over the target, so a crash mid-write keeps the previous generation.
func (c *Cache) Save() error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	c.lastUpdate = c.now()
	doc := c.document()
	c.dirty = false
	c.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", internal.ErrCacheIO, err)
	}

	if err := writeFileAtomic(c.path, data); err != nil {
		c.mu.Lock()
		c.dirty = true
		c.mu.Unlock()
		return fmt.Errorf("%w: write %s: %w", internal.ErrCacheIO, c.path, err)
	}

	c.log.Debug("rate cache saved", "path", c.path, "bases", len(doc.Rates))
	return nil
}

// Flush saves only if something was Put since the last save.
func (c *Cache) Flush() error {
	c.mu.RLock()
	dirty := c.dirty
	c.mu.RUnlock()

	if !dirty {
		return nil
	}
	return c.Save()
}

func (c *Cache) Bases() []internal.CurrencyCode {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]internal.CurrencyCode, 0, len(c.tables))
	for base := range c.tables {
		out = append(out, base)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Cache) LastUpdate() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdate
}

// document must be called with c.mu held.
func (c *Cache) document() document {
	doc := document{
		Rates:      make(map[string]map[string]json.RawMessage, len(c.tables)),
		LastUpdate: c.lastUpdate.UTC().Format(time.RFC3339Nano),
		FetchedAt:  make(map[string]string, len(c.tables)),
	}
	for base, t := range c.tables {
		rates := make(map[string]json.RawMessage, len(t.Rates))
		for code, rate := range t.Rates {
			rates[code.String()] = json.RawMessage(rate.String())
		}
		doc.Rates[base.String()] = rates
		doc.FetchedAt[base.String()] = t.FetchedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}
