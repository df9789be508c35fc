package exchangerateapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"currency-converter/internal"
)

const (
	DefaultBaseURL = "https://v6.exchangerate-api.com/v6"
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 64 << 10
)

type latestResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
	ErrorType       string                     `json:"error-type"`
}

type Client struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LatestRates fetches {BaseURL}/{apiKey}/latest/{base}. Only codes from the
// static currency table are kept.
func (c *Client) LatestRates(ctx context.Context, base internal.CurrencyCode) (internal.RateTable, error) {
	endpoint, err := url.JoinPath(c.BaseURL, c.apiKey, "latest", base.String())
	if err != nil {
		return internal.RateTable{}, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return internal.RateTable{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.RateTable{}, fmt.Errorf("%w: %w", internal.ErrTransport, stripURL(err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return internal.RateTable{}, fmt.Errorf("%w: read response body: %w", internal.ErrTransport, err)
	}

	// The provider reports failures in the body, often alongside a 4xx status.
	var out latestResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return internal.RateTable{}, fmt.Errorf("%w: http %d: undecodable response", internal.ErrProvider, resp.StatusCode)
	}

	if out.Result != "success" {
		msg := strings.TrimSpace(out.ErrorType)
		if msg == "" {
			msg = "unknown error"
		}
		return internal.RateTable{}, fmt.Errorf("%w: %s", internal.ErrProvider, msg)
	}

	if got := strings.ToUpper(strings.TrimSpace(out.BaseCode)); got != "" && got != base.String() {
		return internal.RateTable{}, fmt.Errorf("%w: asked for %s, got base %s", internal.ErrProvider, base, got)
	}

	rates := make(map[internal.CurrencyCode]decimal.Decimal, len(out.ConversionRates))
	for code, rate := range out.ConversionRates {
		rates[internal.CurrencyCode(strings.ToUpper(code))] = rate
	}

	return internal.NewRateTable(base, rates, time.Now()), nil
}

// stripURL drops the request URL from transport errors; it carries the API key.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
