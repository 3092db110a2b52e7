package jsonrpc

import (
	"context"
	"encoding/json"
	"sync"
)

// Call carries one request's data to its handler: the qualified method name,
// the parameter schema declared at registration time and the raw params
// value from the wire. Handlers convert params through the schema.
type Call struct {
	Method string
	Schema Schema
	Params json.RawMessage
}

// Validate checks the call's params against its schema.
func (c *Call) Validate() *Error {
	return c.Schema.Validate(c.Params)
}

// Object converts the call's params to a name-keyed map.
func (c *Call) Object() (map[string]any, *Error) {
	return c.Schema.Object(c.Params)
}

// Array converts the call's params to a positional slice in schema order.
func (c *Call) Array() ([]any, *Error) {
	return c.Schema.Array(c.Params)
}

// Handler executes one method call. It returns the result value to be
// serialized into the response, or an Error. Returning nil for both is
// reported to the caller as MethodNotFound; if both are non-nil the error
// wins.
//
// A handler invoked for a notification runs normally but its return values
// are discarded.
type Handler interface {
	Handle(ctx context.Context, call *Call) (any, *Error)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(ctx context.Context, call *Call) (any, *Error)

func (f HandlerFunc) Handle(ctx context.Context, call *Call) (any, *Error) {
	return f(ctx, call)
}

// Method describes one method for batch registration. Params and Result hold
// schema source text: a JSON array for Params and a JSON object for Result
// (see ParseSchema and ParseResultSchema). Empty source text means no
// schema.
type Method struct {
	Name    string
	Params  string
	Result  string
	Handler Handler
}

type methodEntry struct {
	schema  Schema
	result  *ResultSchema
	handler Handler
}

// Registry is a table of callable methods keyed by qualified name
// "<group>.<method>". It is safe for concurrent use; the lock is never held
// across a handler invocation, so handlers may register or unregister other
// methods freely.
//
// The zero value is not usable; create instances with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]*methodEntry
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds one method under "<group>.<method>". The result schema may
// be nil. It returns false without mutating the table if the qualified name
// is already taken.
func (r *Registry) Register(group, method string, schema Schema, result *ResultSchema, h Handler) bool {
	name := group + "." + method

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.methods == nil {
		r.methods = make(map[string]*methodEntry)
	}
	if _, exists := r.methods[name]; exists {
		return false
	}
	r.methods[name] = &methodEntry{schema: schema, result: result, handler: h}
	return true
}

// Unregister removes "<group>.<method>" from the table. Removing an unknown
// method is a no-op.
func (r *Registry) Unregister(group, method string) {
	name := group + "." + method

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.methods, name)
	if len(r.methods) == 0 {
		r.methods = nil
	}
}

// RegisterMany registers a set of methods under a common group. Each method
// is handled independently: schema source text that fails to parse as the
// required JSON shape skips that method, and a name collision skips it too.
// It returns the number of methods that were not registered.
func (r *Registry) RegisterMany(group string, methods []Method) int {
	failed := 0
	for _, m := range methods {
		var schema Schema
		if m.Params != "" {
			s, err := ParseSchema([]byte(m.Params))
			if err != nil {
				failed++
				continue
			}
			schema = s
		}

		var result *ResultSchema
		if m.Result != "" {
			rs, err := ParseResultSchema([]byte(m.Result))
			if err != nil {
				failed++
				continue
			}
			result = rs
		}

		if !r.Register(group, m.Name, schema, result, m.Handler) {
			failed++
		}
	}
	return failed
}

// UnregisterMany removes a set of methods registered under a common group.
func (r *Registry) UnregisterMany(group string, methods []Method) {
	for _, m := range methods {
		r.Unregister(group, m.Name)
	}
}

// lookup copies the descriptor fields needed for an invocation out of the
// table. The copy lets the dispatcher release the lock before calling the
// handler.
func (r *Registry) lookup(name string) (methodEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[name]
	if !ok {
		return methodEntry{}, false
	}
	return *m, true
}
