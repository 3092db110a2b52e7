// Package jsonrpc implements the JSON-RPC 2.0 request-dispatch engine at the
// heart of the Melo control surface.
//
// This package implements the JSON-RPC 2.0 specification
// (https://www.jsonrpc.org/specification): single calls, batches and
// notifications, with a schema-driven parameter codec. It is
// transport-agnostic; see the Endpoint method for the HTTP binding.
//
// # Basic Usage
//
// Create a registry, register methods, create a dispatcher and feed it raw
// messages:
//
//	reg := jsonrpc.NewRegistry()
//	reg.Register("player", "set_state", schema, nil, handler)
//	d := jsonrpc.NewDispatcher(reg)
//	out := d.Handle(ctx, body) // nil means no response is due
//
// Over HTTP, mount the dispatcher through the endpoint framework:
//
//	http.Handle("/rpc", endpoint.Handler(d.Endpoint))
//
// # Methods and Schemas
//
// Methods are registered under a qualified "<group>.<method>" name together
// with an ordered parameter schema. Subsystems usually register a whole
// table at once from schema source text:
//
//	n := reg.RegisterMany("player", []jsonrpc.Method{{
//	    Name: "set_state",
//	    Params: `[
//	      {"name": "id",    "type": "string"},
//	      {"name": "state", "type": "string"}
//	    ]`,
//	    Result:  `{"type": "object"}`,
//	    Handler: h,
//	}})
//
// RegisterMany returns the number of methods that could not be registered;
// a method whose schema text does not parse, or whose name is already
// taken, is skipped without affecting the rest of the table.
//
// The result schema is kept for introspection only and is never enforced
// against what a handler actually returns.
//
// # Handlers
//
// A handler receives the call context and converts the raw parameters
// through the schema the dispatcher hands it:
//
//	func (p *playerRPC) Handle(ctx context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
//	    params, err := call.Object()
//	    if err != nil {
//	        return nil, err
//	    }
//	    ...
//	}
//
// call.Object and call.Array accept both named (JSON object) and positional
// (JSON array) parameters. Handlers invoked for a notification run normally
// but their return values are discarded.
//
// # Error Handling
//
// Handlers return *Error for protocol-level failures. Standard error codes
// are defined as constants:
//   - CodeParseError (-32700)
//   - CodeInvalidRequest (-32600)
//   - CodeMethodNotFound (-32601)
//   - CodeInvalidParams (-32602)
//   - CodeInternalError (-32603)
//   - CodeServerError (-32000)
//
// Application-defined codes outside the reserved range pass through
// untouched.
//
// # Concurrency
//
// A Registry may be shared by any number of goroutines. Its lock is never
// held across a handler invocation, so handlers are free to register and
// unregister methods, and unrelated calls never serialize behind each
// other.
package jsonrpc
