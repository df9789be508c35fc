package convert

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"currency-converter/internal"
)

const (
	defaultFrom = "USD"
	defaultTo   = "EUR"

	pageResultPlaces = 6
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to internal.CurrencyCode) (decimal.Decimal, error)
}

type Handler struct {
	converter Converter
	audit     internal.RequestAuditLogger
	log       *slog.Logger
}

func New(c Converter, audit internal.RequestAuditLogger, log *slog.Logger) *Handler {
	return &Handler{converter: c, audit: audit, log: log}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/convert", h.convertAPI)
	r.Get("/api/currencies", h.currencies)
	r.Get("/", h.page)
	r.Post("/", h.page)
}

type ConvertResponse struct {
	Amount string                `json:"amount"`
	From   internal.CurrencyCode `json:"from"`
	To     internal.CurrencyCode `json:"to"`
	Result string                `json:"result"`
	Symbol string                `json:"symbol"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) convertAPI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawAmount := strings.TrimSpace(q.Get("amount"))

	if rawAmount == "" {
		st := h.writeErr(w, http.StatusBadRequest, "missing_amount", "amount is required")
		h.audit.LogRequest(r.Context(), r.URL.Path, st)
		return
	}

	amount, from, to, err := parseInput(rawAmount, valueOr(q.Get("from"), defaultFrom), valueOr(q.Get("to"), defaultTo))
	if err != nil {
		st := h.writeServiceErr(w, err)
		h.audit.LogRequest(r.Context(), r.URL.Path, st, slog.String("error", err.Error()))
		return
	}

	result, err := h.converter.Convert(r.Context(), amount, from, to)
	if err != nil {
		st := h.writeServiceErr(w, err)
		h.audit.LogRequest(r.Context(), r.URL.Path, st,
			slog.String("from", from.String()), slog.String("to", to.String()), slog.String("error", err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, ConvertResponse{
		Amount: rawAmount,
		From:   from,
		To:     to,
		Result: result.String(),
		Symbol: to.Symbol(),
	})
	h.audit.LogRequest(r.Context(), r.URL.Path, http.StatusOK,
		slog.String("from", from.String()), slog.String("to", to.String()))
}

func (h *Handler) currencies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, internal.SupportedCurrencies())
	h.audit.LogRequest(r.Context(), r.URL.Path, http.StatusOK)
}

type pageData struct {
	Currencies []internal.Currency
	Amount     string
	From       string
	To         string
	Result     string
	Error      string
	FromSymbol string
	ToSymbol   string
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Currencies: internal.SupportedCurrencies(),
		From:       defaultFrom,
		To:         defaultTo,
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			data.Error = "invalid form"
		} else {
			data.Amount = strings.TrimSpace(r.PostFormValue("amount"))
			data.From = strings.ToUpper(valueOr(r.PostFormValue("from_curr"), defaultFrom))
			data.To = strings.ToUpper(valueOr(r.PostFormValue("to_curr"), defaultTo))
		}

		if data.Error == "" && data.Amount != "" {
			result, err := h.pageConvert(r.Context(), data.Amount, data.From, data.To)
			if err != nil {
				data.Error = userMessage(err)
			} else {
				data.Result = result.Round(pageResultPlaces).String()
			}
		}
	}
	data.FromSymbol = internal.CurrencyCode(data.From).Symbol()
	data.ToSymbol = internal.CurrencyCode(data.To).Symbol()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		h.log.Error("failed to render page", "error", err)
	}
	h.audit.LogRequest(r.Context(), r.URL.Path, http.StatusOK)
}

func (h *Handler) pageConvert(ctx context.Context, rawAmount, rawFrom, rawTo string) (decimal.Decimal, error) {
	amount, from, to, err := parseInput(rawAmount, rawFrom, rawTo)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return h.converter.Convert(ctx, amount, from, to)
}

func parseInput(rawAmount, rawFrom, rawTo string) (decimal.Decimal, internal.CurrencyCode, internal.CurrencyCode, error) {
	amount, err := internal.ParseAmount(rawAmount)
	if err != nil {
		return decimal.Decimal{}, "", "", err
	}
	from, err := internal.NewCurrencyCode(rawFrom)
	if err != nil {
		return decimal.Decimal{}, "", "", err
	}
	to, err := internal.NewCurrencyCode(rawTo)
	if err != nil {
		return decimal.Decimal{}, "", "", err
	}
	return amount, from, to, nil
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, internal.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, internal.ErrUnsupportedCurrency):
		return http.StatusBadRequest, "unsupported_currency"
	case errors.Is(err, internal.ErrProvider):
		return http.StatusBadGateway, "provider_error"
	case errors.Is(err, internal.ErrTransport):
		return http.StatusServiceUnavailable, "provider_unreachable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func userMessage(err error) string {
	if st, _ := statusFor(err); st == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}

func (h *Handler) writeServiceErr(w http.ResponseWriter, err error) int {
	st, code := statusFor(err)
	return h.writeErr(w, st, code, userMessage(err))
}

func (h *Handler) writeErr(w http.ResponseWriter, status int, code, msg string) int {
	h.writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
	return status
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func valueOr(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
