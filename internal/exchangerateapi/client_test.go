package exchangerateapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal"
	"currency-converter/internal/exchangerateapi"
)

const testKey = "secret-test-key"

func TestClient_LatestRates_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+testKey+"/latest/USD", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"result": "success",
			"base_code": "USD",
			"conversion_rates": {"USD": 1, "EUR": 0.92, "GBP": 0.79, "XAU": 0.0004, "BRL": 5.0}
		}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := exchangerateapi.New(server.URL, testKey, time.Second)

	before := time.Now()
	table, err := client.LatestRates(context.Background(), internal.USD)

	require.NoError(t, err)
	assert.Equal(t, internal.USD, table.Base)
	assert.False(t, table.FetchedAt.Before(before))

	rate, ok := table.Rate(internal.EUR)
	require.True(t, ok)
	assert.Equal(t, "0.92", rate.String())

	_, ok = table.Rate("XAU")
	assert.False(t, ok)
	assert.Len(t, table.Rates, 4)
}

func TestClient_LatestRates_ProviderError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"error type", http.StatusForbidden, `{"result":"error","error-type":"invalid-key"}`, "invalid-key"},
		{"missing error type", http.StatusOK, `{"result":"error"}`, "unknown error"},
		{"not json", http.StatusInternalServerError, `internal server error`, "500"},
		{"wrong base", http.StatusOK, `{"result":"success","base_code":"USD","conversion_rates":{"USD":1}}`, "got base USD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, err := w.Write([]byte(tt.body))
				require.NoError(t, err)
			}))
			defer server.Close()

			client := exchangerateapi.New(server.URL, testKey, time.Second)

			_, err := client.LatestRates(context.Background(), internal.EUR)

			require.Error(t, err)
			assert.ErrorIs(t, err, internal.ErrProvider)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.NotContains(t, err.Error(), testKey)
		})
	}
}

func TestClient_LatestRates_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := exchangerateapi.New(url, testKey, time.Second)

	_, err := client.LatestRates(context.Background(), internal.USD)

	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrTransport)
	assert.NotContains(t, err.Error(), testKey)
}

func TestClient_LatestRates_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := exchangerateapi.New(server.URL, testKey, 50*time.Millisecond)

	_, err := client.LatestRates(context.Background(), internal.USD)

	require.Error(t, err)
	assert.ErrorIs(t, err, internal.ErrTransport)
	assert.NotContains(t, err.Error(), testKey)
}

func TestNew_Defaults(t *testing.T) {
	client := exchangerateapi.New("", testKey, 0)

	assert.Equal(t, exchangerateapi.DefaultBaseURL, client.BaseURL)
}
