package player

import (
	"context"

	"github.com/Dillya/melo/jsonrpc"
)

// statusFields selects which members of a Status are included in a
// get_status result.
type statusFields uint

const (
	fieldState statusFields = 1 << iota
	fieldName
	fieldPos
	fieldDuration

	fieldsNone statusFields = 0
	fieldsFull statusFields = ^statusFields(0)
)

// parseFields converts the optional "fields" array of a get_status call.
// An absent or empty selection means everything.
func parseFields(v any) statusFields {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return fieldsFull
	}

	fields := fieldsNone
	for _, e := range list {
		name, ok := e.(string)
		if !ok {
			break
		}
		switch name {
		case "none":
			return fieldsNone
		case "full":
			return fieldsFull
		case "state":
			fields |= fieldState
		case "name":
			fields |= fieldName
		case "pos":
			fields |= fieldPos
		case "duration":
			fields |= fieldDuration
		}
	}
	return fields
}

// statusToObject converts a Status to its wire form, honoring the field
// selection.
func statusToObject(status Status, fields statusFields) map[string]any {
	obj := make(map[string]any)
	if fields&fieldState != 0 {
		obj["state"] = status.State.String()
		if status.State == StateError {
			obj["error"] = status.Error
		}
	}
	if fields&fieldName != 0 {
		obj["name"] = status.Name
	}
	if fields&fieldPos != 0 {
		obj["pos"] = status.Pos
	}
	if fields&fieldDuration != 0 {
		obj["duration"] = status.Duration
	}
	return obj
}

// rpc implements the "player" JSON-RPC method group on top of a Manager.
type rpc struct {
	manager *Manager
}

func (r *rpc) player(params map[string]any) (Player, *jsonrpc.Error) {
	id, _ := params["id"].(string)
	p, ok := r.manager.Get(id)
	if !ok {
		return nil, jsonrpc.NewInvalidParamsError("no player found")
	}
	return p, nil
}

func (r *rpc) getList(_ context.Context, _ *jsonrpc.Call) (any, *jsonrpc.Error) {
	return map[string]any{"list": r.manager.IDs()}, nil
}

func (r *rpc) getStatus(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.player(params)
	if err != nil {
		return nil, err
	}
	return statusToObject(p.Status(), parseFields(params["fields"])), nil
}

func (r *rpc) setState(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.player(params)
	if err != nil {
		return nil, err
	}

	name, _ := params["state"].(string)
	state, ok := ParseState(name)
	if !ok {
		return nil, jsonrpc.Errorf(jsonrpc.CodeInvalidParams, "unknown state %q", name)
	}

	reached, serr := p.SetState(state)
	if serr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeServerError, serr.Error())
	}
	return map[string]any{"state": reached.String()}, nil
}

func (r *rpc) setPos(_ context.Context, call *jsonrpc.Call) (any, *jsonrpc.Error) {
	params, err := call.Object()
	if err != nil {
		return nil, err
	}
	p, err := r.player(params)
	if err != nil {
		return nil, err
	}

	pos, _ := params["pos"].(int64)
	reached, serr := p.SetPos(int(pos))
	if serr != nil {
		return nil, jsonrpc.NewError(jsonrpc.CodeServerError, serr.Error())
	}
	return map[string]any{"pos": reached}, nil
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
			Name: "get_status",
			Params: `[
			  {"name": "id",     "type": "string"},
			  {"name": "fields", "type": "array", "required": false}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.getStatus),
		},
		{
			Name: "set_state",
			Params: `[
			  {"name": "id",    "type": "string"},
			  {"name": "state", "type": "string"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.setState),
		},
		{
			Name: "set_pos",
			Params: `[
			  {"name": "id",  "type": "string"},
			  {"name": "pos", "type": "integer"}
			]`,
			Result:  `{"type": "object"}`,
			Handler: jsonrpc.HandlerFunc(r.setPos),
		},
	}
}

// RegisterMethods registers the "player" method group backed by manager.
// It returns the number of methods that could not be registered.
func RegisterMethods(reg *jsonrpc.Registry, manager *Manager) int {
	return reg.RegisterMany("player", methods(&rpc{manager: manager}))
}

// UnregisterMethods removes the "player" method group.
func UnregisterMethods(reg *jsonrpc.Registry) {
	reg.UnregisterMany("player", methods(&rpc{}))
}
