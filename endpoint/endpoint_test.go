package endpoint

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type noParams struct{}

func TestHandlerRendersResponse(t *testing.T) {
	h := Handler(func(w http.ResponseWriter, r *http.Request, _ noParams) (Renderer, error) {
		return &JSONRenderer{Status: http.StatusOK, Value: map[string]string{"status": "up"}}, nil
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	if w.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("got Content-Type %q, want application/json", ct)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"status":"up"}` {
		t.Errorf("got body %q", body)
	}
}

func TestHandlerDecodesParams(t *testing.T) {
	type params struct {
		Name string `query:"name"`
	}

	h := Handler(func(w http.ResponseWriter, r *http.Request, p params) (Renderer, error) {
		return &StringRenderer{Status: http.StatusOK, Body: "hi " + p.Name}, nil
	})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/greet?name=melo", nil))

	if body := w.Body.String(); body != "hi melo" {
		t.Errorf("got body %q, want %q", body, "hi melo")
	}
}

func TestHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"EndpointError", Error(http.StatusNotFound, "no such thing", nil), http.StatusNotFound},
		{"WrappedCause", Error(http.StatusBadGateway, "upstream", errors.New("boom")), http.StatusBadGateway},
		{"PlainError", errors.New("plain failure"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Handler(func(w http.ResponseWriter, r *http.Request, _ noParams) (Renderer, error) {
				return nil, tt.err
			})

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestProcessorOrderAndShortCircuit(t *testing.T) {
	var order []string
	trace := func(name string) Processor {
		return ProcessorFunc(func(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
			order = append(order, name)
			return next(w, r)
		})
	}

	h := Handler(func(w http.ResponseWriter, r *http.Request, _ noParams) (Renderer, error) {
		order = append(order, "endpoint")
		return &NoContentRenderer{}, nil
	}, trace("first"), trace("second"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "endpoint"}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}

	// A processor returning an error stops the chain.
	reject := ProcessorFunc(func(w http.ResponseWriter, r *http.Request, next func(http.ResponseWriter, *http.Request) error) error {
		return Error(http.StatusForbidden, "rejected", nil)
	})
	reached := false
	h2 := Handler(func(w http.ResponseWriter, r *http.Request, _ noParams) (Renderer, error) {
		reached = true
		return &NoContentRenderer{}, nil
	}, reject)

	w = httptest.NewRecorder()
	h2.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("got status %d, want 403", w.Code)
	}
	if reached {
		t.Error("endpoint ran after processor short-circuit")
	}
}

func TestEndpointErrorMessage(t *testing.T) {
	e := &EndpointError{Status: http.StatusNotFound}
	if e.Error() != "Not Found" {
		t.Errorf("got %q, want Not Found", e.Error())
	}

	cause := errors.New("root cause")
	e = &EndpointError{Status: http.StatusBadRequest, Message: "bad input", Cause: cause}
	if e.Error() != "bad input: root cause" {
		t.Errorf("got %q", e.Error())
	}
	if !errors.Is(e, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestErrorAvoidsDoubleWrap(t *testing.T) {
	inner := Error(http.StatusNotFound, "missing", nil)
	outer := Error(http.StatusInternalServerError, "wrapper", inner)

	if outer != inner {
		t.Error("wrapping an EndpointError must return it unchanged")
	}
}

func TestNoContentRenderer(t *testing.T) {
	w := httptest.NewRecorder()
	r := &NoContentRenderer{}
	if err := r.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("got status %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("got body %q, want empty", w.Body.String())
	}
}
