package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingProcessorSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewLoggingProcessor(logger)

	r := httptest.NewRequest(http.MethodGet, "/rpc", nil)
	err := p.Process(httptest.NewRecorder(), r, func(w http.ResponseWriter, r *http.Request) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "method=GET") || !strings.Contains(out, "path=/rpc") {
		t.Errorf("log line missing request fields: %q", out)
	}
	if !strings.Contains(out, "level=DEBUG") {
		t.Errorf("success should log at debug level: %q", out)
	}
}

func TestLoggingProcessorError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	p := NewLoggingProcessor(logger)

	failure := errors.New("handler exploded")
	r := httptest.NewRequest(http.MethodPost, "/rpc", nil)
	err := p.Process(httptest.NewRecorder(), r, func(w http.ResponseWriter, r *http.Request) error {
		return failure
	})
	if !errors.Is(err, failure) {
		t.Fatalf("processor must pass the error through, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "handler exploded") {
		t.Errorf("failure should log at warn level with the error: %q", out)
	}
}

func TestLoggingProcessorNilLogger(t *testing.T) {
	p := NewLoggingProcessor(nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := p.Process(httptest.NewRecorder(), r, func(w http.ResponseWriter, r *http.Request) error {
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
