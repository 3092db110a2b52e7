package settings

import (
	"context"

	"github.com/Dillya/melo/jsonrpc"
)

// rpc implements the "config" JSON-RPC method group on top of a Store.
type rpc struct {
	store *Store
}

func (r *rpc) get(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}

	group, _ := params["group"].(string)
	values, ok := r.store.Get(group)
	if !ok {
		return nil, jsonrpc.Errorf(jsonrpc.CodeInvalidParams, "no group %q", group)
	}
	return values, nil
}

func (r *rpc) set(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}

	group, _ := params["group"].(string)
	values, _ := params["values"].(map[string]any)
	r.store.Set(group, values)

	if serr := r.store.Save(); serr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeInternalError, serr.Error())
	}
	return map[string]any{"done": true}, nil
}

func (r *rpc) reset(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}

	group, _ := params["group"].(string)
	r.store.Reset(group)

	if serr := r.store.Save(); serr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeInternalError, serr.Error())
	}
	return map[string]any{"done": true}, nil
}

func methods(r *rpc) []jsonrpc.Method {
	return []jsonrpc.Method{
		{
			Name: "get",
			Params: `[
			  {"name": "group", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.get),
		},
		{
			Name: "set",
			Params: `[
			  {"name": "group",  "type": "string"},
			  {"name": "values", "type": "object"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.set),
		},
		{
			Name: "reset",
			Params: `[
			  {"name": "group", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.reset),
		},
	}
}

// RegisterMethods registers the "config" method group backed by store.
// It returns the number of methods that could not be registered.
func RegisterMethods(reg *jsonrpc.Registry, store *Store) int {
	return reg.RegisterMany("config", methods(&rpc{store: store}))
}

// UnregisterMethods removes the "config" method group.
func UnregisterMethods(reg *jsonrpc.Registry) {
	reg.UnregisterMany("config", methods(&rpc{}))
}
