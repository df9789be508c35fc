package internal

import (
	"context"
	"log/slog"
	"strings"
)

type RequestAuditLogger interface {
	LogRequest(ctx context.Context, path string, status int, attrs ...slog.Attr)
}

func NewSlogAuditLogger(log *slog.Logger) *SlogAuditLogger {
	return &SlogAuditLogger{log: log}
}

// SlogAuditLogger writes one record per handled request. 5xx are errors, 4xx warnings.
type SlogAuditLogger struct {
	log *slog.Logger
}

func (l *SlogAuditLogger) LogRequest(ctx context.Context, endpoint string, status int, attrs ...slog.Attr) {
	p := strings.TrimSpace(endpoint)
	p = strings.Trim(p, "/")
	if p == "" {
		p = "root"
	}

	level := slog.LevelInfo
	switch {
	case status >= 500:
		level = slog.LevelError
	case status >= 400:
		level = slog.LevelWarn
	}

	all := make([]slog.Attr, 0, len(attrs)+2)
	all = append(all, slog.String("path", p), slog.Int("status", status))
	all = append(all, attrs...)
	l.log.LogAttrs(ctx, level, "request", all...)
}
