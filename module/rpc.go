package module

import (
	"context"

	"github.com/Dillya/melo/jsonrpc"
)

// rpc implements the "module" JSON-RPC method group on top of a Manager.
type rpc struct {
	manager *Manager
}

func (r *rpc) getList(_ context.Context, _ *jsonrpc.Call) (any, *jsonrpc.Error) {
	ids := r.manager.IDs()
	list := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		mod, ok := r.manager.Get(id)
		if !ok {
			continue
		}
		info := mod.Info()
		list = append(list, map[string]any{
			"id":          id,
			"name":        info.Name,
			"description": info.Description,
		})
	}
	return map[string]any{"list": list}, nil
}

func (r *rpc) getInfo(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}

	id, _ := params["id"].(string)
	mod, ok := r.manager.Get(id)
	if !ok {
		return nil, jsonrpc.NewInvalidParamsError("no module found")
	}
	return mod.Info(), nil
}

func methods(r *rpc) []jsonrpc.Method {
	return []jsonrpc.Method{
		{
			Name:    "get_list",
			Params:  `[]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getList),
		},
		{
			Name: "get_info",
			Params: `[
			  {"name": "id", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getInfo),
		},
	}
}

// RegisterMethods registers the "module" method group backed by manager.
// It returns the number of methods that could not be registered.
func RegisterMethods(reg *jsonrpc.Registry, manager *Manager) int {
	return reg.RegisterMany("module", methods(&rpc{manager: manager}))
}

// UnregisterMethods removes the "module" method group.
func UnregisterMethods(reg *jsonrpc.Registry) {
	reg.UnregisterMany("module", methods(&rpc{}))
}
