package internal

import (
	"fmt"
	"strings"
)

type CurrencyCode string

func NewCurrencyCode(s string) (CurrencyCode, error) {
	ccy := CurrencyCode(strings.ToUpper(strings.TrimSpace(s)))
	if !ccy.IsSupported() {
		return "", fmt.Errorf("%w %q", ErrUnsupportedCurrency, s)
	}
	return ccy, nil
}

const (
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	GBP CurrencyCode = "GBP"
	JPY CurrencyCode = "JPY"
	AUD CurrencyCode = "AUD"
	CAD CurrencyCode = "CAD"
	CHF CurrencyCode = "CHF"
	CNY CurrencyCode = "CNY"
	RUB CurrencyCode = "RUB"
	TRY CurrencyCode = "TRY"
	INR CurrencyCode = "INR"
	BRL CurrencyCode = "BRL"
)

// Currency is a row of the static currency table.
type Currency struct {
	Code   CurrencyCode `json:"code"`
	Symbol string       `json:"symbol"`
}

// supported keeps display order for the form and /api/currencies.
var supported = []Currency{
	{USD, "$"}, {EUR, "€"}, {GBP, "£"}, {JPY, "¥"},
	{AUD, "A$"}, {CAD, "C$"}, {CHF, "Fr"}, {CNY, "¥"},
	{RUB, "₽"}, {TRY, "₺"}, {INR, "₹"}, {BRL, "R$"},
}

var supportedSet = func() map[CurrencyCode]string {
	m := make(map[CurrencyCode]string, len(supported))
	for _, c := range supported {
		m[c.Code] = c.Symbol
	}
	return m
}()

// SupportedCurrencies returns a copy of the static currency table.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supported))
	copy(out, supported)
	return out
}

func (c CurrencyCode) IsSupported() bool {
	_, ok := supportedSet[c]
	return ok
}

// Symbol returns the display symbol, or "" for codes outside the table.
func (c CurrencyCode) Symbol() string { return supportedSet[c] }

func (c CurrencyCode) String() string { return string(c) }

func (c CurrencyCode) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}
