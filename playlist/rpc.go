package playlist

import (
	"context"

	"github.com/Dillya/melo/jsonrpc"
)

// rpc implements the "playlist" JSON-RPC method group on top of a Manager.
type rpc struct {
	manager *Manager
}

func (r *rpc) playlist(params map[string]any) (Playlist, *jsonrpc.Error) {
	id, _ := params["id"].(string)
	p, ok := r.manager.Get(id)
	if !ok {
		return nil, jsonrpc.NewInvalidParamsError("no playlist found")
	}
	return p, nil
}

func (r *rpc) getList(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.playlist(params)
	if err != nil {
		return nil, err
	}

	entries := p.List()
	if entries == nil {
		entries = []Entry{}
	}
	return map[string]any{"list": entries}, nil
}

func (r *rpc) play(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.playlist(params)
	if err != nil {
		return nil, err
	}

	name, _ := params["name"].(string)
	if perr := p.Play(name); perr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeServerError, perr.Error())
	}
	return map[string]any{"done": true}, nil
}

func (r *rpc) remove(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.playlist(params)
	if err != nil {
		return nil, err
	}

	name, _ := params["name"].(string)
	if rerr := p.Remove(name); rerr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeServerError, rerr.Error())
	}
	return map[string]any{"done": true}, nil
}

func methods(r *rpc) []jsonrpc.Method {
	return []jsonrpc.Method{
		{
			Name: "get_list",
			Params: `[
			  {"name": "id", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getList),
		},
		{
			Name: "play",
			Params: `[
			  {"name": "id",   "type": "string"},
			  {"name": "name", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.play),
		},
		{
			Name: "remove",
			Params: `[
			  {"name": "id",   "type": "string"},
			  {"name": "name", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.remove),
		},
	}
}

// RegisterMethods registers the "playlist" method group backed by manager.
// It returns the number of methods that could not be registered.
func RegisterMethods(reg *jsonrpc.Registry, manager *Manager) int {
	return reg.RegisterMany("playlist", methods(&rpc{manager: manager}))
}

// UnregisterMethods removes the "playlist" method group.
func UnregisterMethods(reg *jsonrpc.Registry) {
	reg.UnregisterMany("playlist", methods(&rpc{}))
}
