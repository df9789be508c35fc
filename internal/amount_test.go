package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"currency-converter/internal"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"100":      "100",
		" 12.50 ":  "12.5",
		"0.000001": "0.000001",
		"1e3":      "1000",
		"2.5e63":   "2500000000000000000000000000000000000000000000000000000000000000",
	}
	for in, want := range valid {
		got, err := internal.ParseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	invalid := []string{
		"", "   ", "abc", "-5", "0", "0.00", "1,5",
		"1e50000000", "1e-50000000", "1e65", "1e-65",
		"12345678901234567890123456789012345678901",
	}
	for _, in := range invalid {
		_, err := internal.ParseAmount(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, internal.ErrInvalidAmount, in)
	}
}
