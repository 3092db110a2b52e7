// Package middleware provides endpoint.Processor implementations for
// cross-cutting concerns.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dillya/melo/endpoint"
)

// LoggingProcessor logs one line per request with method, path, duration
// and outcome.
type LoggingProcessor struct {
	logger *slog.Logger
}

// NewLoggingProcessor creates a LoggingProcessor. A nil logger falls back to
// slog.Default.
func NewLoggingProcessor(logger *slog.Logger) *LoggingProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProcessor{logger: logger}
}

// Process implements endpoint.Processor.
func (p *LoggingProcessor) Process(w http.ResponseWriter, r *http.Request, next func(w http.ResponseWriter, r *http.Request) error) error {
	start := time.Now()
	err := next(w, r)
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"duration", time.Since(start),
	}
	if err != nil {
		p.logger.Warn("request failed", append(attrs, "error", err)...)
	} else {
		p.logger.Debug("request", attrs...)
	}
	return err
}

var _ endpoint.Processor = (*LoggingProcessor)(nil)
