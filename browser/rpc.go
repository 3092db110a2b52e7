package browser

import (
	"context"

	"github.com/Dillya/melo/jsonrpc"
)

// rpc implements the "browser" JSON-RPC method group on top of a Manager.
type rpc struct {
	manager *Manager
}

func (r *rpc) browser(params map[string]any) (Browser, *jsonrpc.Error) {
	id, _ := params["id"].(string)
	b, ok := r.manager.Get(id)
	if !ok {
		return nil, jsonrpc.NewInvalidParamsError("no browser found")
	}
	return b, nil
}

func (r *rpc) getList(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	b, err := r.browser(params)
	if err != nil {
		return nil, err
	}

	path, _ := params["path"].(string)
	offset, _ := params["offset"].(int64)
	count, _ := params["count"].(int64)

	items, lerr := b.List(path, int(offset), int(count))
	if lerr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeServerError, lerr.Error())
	}
	if items == nil {
		items = []Item{}
	}
	return map[string]any{"list": items}, nil
}

func (r *rpc) getInfo(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	b, err := r.browser(params)
	if err != nil {
		return nil, err
	}
	return b.Info(), nil
}

func methods(r *rpc) []jsonrpc.Method {
	return []jsonrpc.Method{
		{
			Name: "get_info",
			Params: `[
			  {"name": "id", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getInfo),
		},
		{
			Name: "get_list",
			Params: `[
			  {"name": "id",     "type": "string"},
			  {"name": "path",   "type": "string"},
			  {"name": "offset", "type": "integer", "required": false},
			  {"name": "count",  "type": "integer", "required": false}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getList),
		},
	}
}

// RegisterMethods registers the "browser" method group backed by manager.
// It returns the number of methods that could not be registered.
func RegisterMethods(reg *jsonrpc.Registry, manager *Manager) int {
	return reg.RegisterMany("browser", methods(&rpc{manager: manager}))
}

// UnregisterMethods removes the "browser" method group.
func UnregisterMethods(reg *jsonrpc.Registry) {
	reg.UnregisterMany("browser", methods(&rpc{}))
}
