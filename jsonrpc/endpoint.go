package jsonrpc

import (
	"net/http"
	"strings"

	"github.com/Dillya/melo/endpoint"
)

// rpcParams captures the raw request body. Parsing is deferred to the
// dispatcher, which owns JSON-RPC error reporting for malformed input.
type rpcParams struct {
	Body []byte `body:""`
}

// Endpoint adapts the dispatcher to the endpoint framework. Mount it with
// endpoint.Handler:
//
//	http.Handle("/rpc", endpoint.Handler(dispatcher.Endpoint))
//
// Per JSON-RPC over HTTP, only POST with an application/json body is
// accepted; a message consisting solely of notifications yields 204 No
// Content.
func (d *Dispatcher) Endpoint(w http.ResponseWriter, r *http.Request, params rpcParams) (endpoint.Renderer, error) {
	if r.Method != http.MethodPost {
		return nil, endpoint.Error(http.StatusMethodNotAllowed, "JSON-RPC requires POST method", nil)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return nil, endpoint.Error(http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
	}

	out := d.Handle(r.Context(), params.Body)
	if out == nil {
		return &endpoint.NoContentRenderer{Status: http.StatusNoContent}, nil
	}
	return &rawJSONRenderer{body: out}, nil
}

// rawJSONRenderer writes pre-serialized JSON produced by the dispatcher.
type rawJSONRenderer struct {
	body []byte
}

func (r *rawJSONRenderer) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(r.body)
	return err
}
