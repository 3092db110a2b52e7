package endpoint

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUnmarshalQueryAndHeader(t *testing.T) {
	type params struct {
		Name  string `query:"name"`
		Count int    `query:"count"`
		Debug bool   `query:"debug"`
		Agent string `header:"User-Agent"`
	}

	r := httptest.NewRequest(http.MethodGet, "/x?name=melo&count=3&debug=true", nil)
	r.Header.Set("User-Agent", "test-client")

	var p params
	if err := Unmarshal(r, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "melo" || p.Count != 3 || !p.Debug || p.Agent != "test-client" {
		t.Errorf("got %+v", p)
	}
}

func TestUnmarshalDefaultsToFieldName(t *testing.T) {
	type params struct {
		Offset int `query:""`
	}

	r := httptest.NewRequest(http.MethodGet, "/x?offset=10", nil)

	var p params
	if err := Unmarshal(r, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Offset != 10 {
		t.Errorf("got offset %d, want 10", p.Offset)
	}
}

func TestUnmarshalMissingValuesLeaveZero(t *testing.T) {
	type params struct {
		Name  string `query:"name"`
		Count int    `query:"count"`
	}

	r := httptest.NewRequest(http.MethodGet, "/x", nil)

	var p params
	if err := Unmarshal(r, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "" || p.Count != 0 {
		t.Errorf("got %+v, want zero values", p)
	}
}

func TestUnmarshalBadValue(t *testing.T) {
	type params struct {
		Count int `query:"count"`
	}

	r := httptest.NewRequest(http.MethodGet, "/x?count=abc", nil)

	var p params
	err := Unmarshal(r, &p)
	if err == nil {
		t.Fatal("expected error for non-numeric count")
	}
	var ee *EndpointError
	if !errors.As(err, &ee) || ee.Status != http.StatusBadRequest {
		t.Errorf("got %v, want 400 EndpointError", err)
	}
}

func TestUnmarshalRawBody(t *testing.T) {
	type params struct {
		Body []byte `body:""`
	}

	r := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte(`raw payload`)))

	var p params
	if err := Unmarshal(r, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(p.Body) != "raw payload" {
		t.Errorf("got body %q", p.Body)
	}
}

func TestUnmarshalJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	type params struct {
		Data payload `body:",json"`
	}

	r := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte(`{"name": "melo"}`)))

	var p params
	if err := Unmarshal(r, &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Data.Name != "melo" {
		t.Errorf("got %+v", p.Data)
	}

	r = httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte(`{`)))
	if err := Unmarshal(r, &p); err == nil {
		t.Error("expected error for malformed JSON body")
	}
}

func TestUnmarshalRejectsNonStruct(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)

	var s string
	if err := Unmarshal(r, &s); err == nil {
		t.Error("expected error for non-struct dst")
	}
	if err := Unmarshal(r, nil); err == nil {
		t.Error("expected error for nil dst")
	}
}
