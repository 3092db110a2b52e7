package jsonrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"strconv"
)

// request is the wire form of one call. Members stay raw so presence,
// absence and exact type can be told apart during envelope validation.
type request struct {
	Version *string         `json:"jsonrpc"`
	Method  json.RawMessage `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      json.RawMessage `json:"id"`
}

// callID is a request id extracted from the wire. A response echoes the id
// with its original kind: strings stay strings, non-negative integers stay
// integers, anything else (including an absent id on error responses)
// encodes as JSON null.
type callID struct {
	present bool
	str     string
	num     int64
	isStr   bool
	isNum   bool
}

func parseCallID(raw json.RawMessage) callID {
	id := callID{present: true}
	// Unmarshal alone cannot tell a string id from null: decoding JSON null
	// into a string is a successful no-op.
	if jsonKind(raw) == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			id.str = s
			id.isStr = true
			return id
		}
	}
	trimmed := bytes.TrimSpace(raw)
	if n, err := strconv.ParseInt(string(trimmed), 10, 64); err == nil {
		id.num = n
		id.isNum = true
	}
	return id
}

func (id callID) MarshalJSON() ([]byte, error) {
	switch {
	case id.isStr:
		return json.Marshal(id.str)
	case id.isNum && id.num >= 0:
		return strconv.AppendInt(nil, id.num, 10), nil
	}
	return []byte("null"), nil
}

// response is the wire form of one JSON-RPC response. Result is marshaled
// ahead of time so that values like false and 0 survive omitempty.
type response struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      callID          `json:"id"`
}

func errorResponse(id callID, e *Error) response {
	return response{Version: "2.0", Error: e, ID: id}
}

// Dispatcher parses raw JSON-RPC 2.0 messages, routes each call through a
// Registry and assembles JSON-RPC 2.0 responses, including batch and
// notification semantics. It performs no I/O of its own; a transport
// collaborator feeds it complete messages and forwards back whatever it
// returns.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a Dispatcher routing through the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Handle processes one raw message, which may hold a single call or a batch,
// and returns the serialized response text. It returns nil when no response
// is due: a single notification, or a batch whose every element was a
// notification. Handle never fails; every internal error degrades to an
// error response.
func (d *Dispatcher) Handle(ctx context.Context, data []byte) []byte {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return serialize(errorResponse(callID{}, NewParseError("parse error")))
	}

	switch jsonKind(root) {
	case '{':
		resp := d.processCall(ctx, root)
		if resp == nil {
			return nil
		}
		return serialize(*resp)

	case '[':
		var calls []json.RawMessage
		if err := json.Unmarshal(root, &calls); err != nil {
			return serialize(errorResponse(callID{}, NewParseError("parse error")))
		}
		if len(calls) == 0 {
			return serialize(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
		}

		// Responses keep the batch input order; suppressed notifications
		// are simply not appended.
		responses := make([]response, 0, len(calls))
		for _, call := range calls {
			if resp := d.processCall(ctx, call); resp != nil {
				responses = append(responses, *resp)
			}
		}
		if len(responses) == 0 {
			return nil
		}
		return serialize(responses)
	}

	return serialize(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
}

// processCall runs one call through envelope validation, registry lookup and
// handler invocation. It returns nil when the call produces no response.
func (d *Dispatcher) processCall(ctx context.Context, data json.RawMessage) *response {
	var req request
	if jsonKind(data) != '{' || json.Unmarshal(data, &req) != nil {
		return respond(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
	}

	// Envelope validation. All failures here are reported without an id:
	// a malformed call cannot be trusted to name one.
	if req.Version == nil || *req.Version != "2.0" {
		return respond(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
	}
	var method string
	if req.Method == nil || json.Unmarshal(req.Method, &method) != nil {
		return respond(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
	}
	if req.Params != nil {
		if k := jsonKind(req.Params); k != '{' && k != '[' {
			return respond(errorResponse(callID{}, NewInvalidRequestError("invalid request")))
		}
	}

	// Copy the descriptor out of the registry before invoking, so the
	// handler runs without the registry lock and may register or
	// unregister methods itself.
	entry, found := d.registry.lookup(method)

	// Notification: run the handler for its side effects and discard
	// whatever it produces, errors included.
	if req.ID == nil {
		if found {
			d.invoke(ctx, entry, method, req.Params)
		}
		return nil
	}

	id := parseCallID(req.ID)
	if !found {
		return respond(errorResponse(id, NewMethodNotFoundError("method not found")))
	}

	result, rpcErr := d.invoke(ctx, entry, method, req.Params)
	if rpcErr != nil {
		return respond(errorResponse(id, rpcErr))
	}
	if result == nil {
		// The handler produced neither a result nor an error.
		return respond(errorResponse(id, NewMethodNotFoundError("method not found")))
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return respond(errorResponse(id, NewInternalError("internal error")))
	}
	return respond(response{Version: "2.0", Result: raw, ID: id})
}

// invoke calls the handler with the call context, turning a panic into an
// InternalError so a misbehaving handler cannot take down the transport.
func (d *Dispatcher) invoke(ctx context.Context, entry methodEntry, method string, params json.RawMessage) (result any, rpcErr *Error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("jsonrpc: handler panic in %s: %v", method, r)
			result = nil
			rpcErr = NewInternalError("internal error")
		}
	}()

	return entry.handler.Handle(ctx, &Call{
		Method: method,
		Schema: entry.schema,
		Params: params,
	})
}

func respond(r response) *response {
	return &r
}

func serialize(v any) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		// Responses are built from marshal-safe pieces; this is a
		// dispatcher defect, not a caller error.
		return []byte(`{"jsonrpc":"2.0","error":{"code":-32603,"message":"internal error"},"id":null}`)
	}
	return out
}
