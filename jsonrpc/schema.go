package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// ParamType is the closed set of parameter types a schema may declare.
//
// Tags are matched exactly against the source text vocabulary below; adding
// a new type means adding a constant and a case in ParseParamType.
type ParamType int

const (
	TypeInvalid ParamType = iota
	TypeBoolean
	TypeInteger
	TypeDouble
	TypeString
	TypeObject
	TypeArray
)

func (t ParamType) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	}
	return "invalid"
}

// ParseParamType converts a schema type tag to a ParamType.
func ParseParamType(s string) (ParamType, bool) {
	switch s {
	case "boolean":
		return TypeBoolean, true
	case "integer":
		return TypeInteger, true
	case "double":
		return TypeDouble, true
	case "string":
		return TypeString, true
	case "object":
		return TypeObject, true
	case "array":
		return TypeArray, true
	}
	return TypeInvalid, false
}

// Param describes one parameter of a method: its name, declared type and
// whether a caller must supply it.
type Param struct {
	Name     string
	Type     ParamType
	Required bool
}

// Schema is an ordered parameter schema. Order defines the positional
// mapping used when parameters arrive as a JSON array.
type Schema []Param

// rawParam is the source-text form of a Param. A nil Required member means
// the parameter is required.
type rawParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required *bool  `json:"required"`
}

// ParseSchema parses the JSON-array source form of a parameter schema:
//
//	[
//	  {"name": "id",    "type": "string"},
//	  {"name": "count", "type": "integer", "required": false}
//	]
//
// Omitting "required" marks the parameter required. A descriptor without a
// name or with an unknown type is a schema-authoring error.
func ParseSchema(text []byte) (Schema, error) {
	var raw []rawParam
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("jsonrpc: invalid params schema: %w", err)
	}

	schema := make(Schema, 0, len(raw))
	for i, p := range raw {
		if p.Name == "" {
			return nil, fmt.Errorf("jsonrpc: params schema entry %d: missing name", i)
		}
		t, ok := ParseParamType(p.Type)
		if !ok {
			return nil, fmt.Errorf("jsonrpc: params schema entry %d: unknown type %q", i, p.Type)
		}
		schema = append(schema, Param{
			Name:     p.Name,
			Type:     t,
			Required: p.Required == nil || *p.Required,
		})
	}
	return schema, nil
}

// ResultSchema is the declared shape of a method's result. It is stored on
// the method descriptor for documentation and introspection only; results
// are never validated against it at runtime.
type ResultSchema struct {
	Type string `json:"type"`

	raw json.RawMessage
}

// ParseResultSchema parses the JSON-object source form of a result schema,
// e.g. {"type": "object"}.
func ParseResultSchema(text []byte) (*ResultSchema, error) {
	if jsonKind(text) != '{' {
		return nil, fmt.Errorf("jsonrpc: result schema is not a JSON object")
	}
	var rs ResultSchema
	if err := json.Unmarshal(text, &rs); err != nil {
		return nil, fmt.Errorf("jsonrpc: invalid result schema: %w", err)
	}
	rs.raw = append(json.RawMessage(nil), text...)
	return &rs, nil
}

// Source returns the schema source text as registered.
func (r *ResultSchema) Source() json.RawMessage {
	if r == nil {
		return nil
	}
	return r.raw
}
