package jsonrpc

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Params codec: validation and conversion of a raw JSON-RPC params value
// against an ordered parameter schema.
//
// The same matching rules apply whether the value is a JSON object (matched
// by name) or a JSON array (matched by position). A missing optional
// parameter behaves differently depending on the output shape: building an
// object skips it and continues, building an array stops and returns what
// has been accumulated so far. Callers relying on positional results must
// therefore order optional parameters last.

// Validate checks params against the schema without extracting anything.
// It returns nil when the parameters match, or an InvalidParams error.
func (s Schema) Validate(params json.RawMessage) *Error {
	return s.match(params, nil, nil)
}

// Object converts params to a name-keyed map with one entry per matched
// schema descriptor. Missing optional parameters are skipped.
func (s Schema) Object(params json.RawMessage) (map[string]any, *Error) {
	obj := make(map[string]any, len(s))
	if err := s.match(params, obj, nil); err != nil {
		return nil, err
	}
	return obj, nil
}

// Array converts params to a positional slice in schema order. Conversion
// stops at the first missing optional parameter.
func (s Schema) Array(params json.RawMessage) ([]any, *Error) {
	arr := make([]any, 0, len(s))
	if err := s.match(params, nil, &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// match walks the schema against params, optionally accumulating converted
// values into obj or arr. Exactly one of obj and arr may be non-nil; with
// both nil it only validates.
func (s Schema) match(params json.RawMessage, obj map[string]any, arr *[]any) *Error {
	if isJSONAbsent(params) {
		if len(s) == 0 {
			return nil
		}
		return NewInvalidParamsError("invalid params")
	}

	switch jsonKind(params) {
	case '{':
		var members map[string]json.RawMessage
		if err := json.Unmarshal(params, &members); err != nil {
			return NewInvalidParamsError("invalid params")
		}

		for _, p := range s {
			if p.Name == "" || p.Type == TypeInvalid {
				return NewInvalidParamsError("invalid params")
			}

			raw, ok := members[p.Name]
			if !ok {
				if p.Required {
					return NewInvalidParamsError("missing param: " + p.Name)
				}
				// Optional and absent: skip for object output, stop for
				// array output.
				if arr != nil {
					return nil
				}
				continue
			}

			v, ok := matchValue(p.Type, raw)
			if !ok {
				return NewInvalidParamsError("invalid param: " + p.Name)
			}
			if obj != nil {
				obj[p.Name] = v
			} else if arr != nil {
				*arr = append(*arr, v)
			}
		}
		return nil

	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(params, &elems); err != nil {
			return NewInvalidParamsError("invalid params")
		}

		for i, p := range s {
			if p.Name == "" || p.Type == TypeInvalid {
				return NewInvalidParamsError("invalid params")
			}

			if i >= len(elems) {
				if p.Required {
					return NewInvalidParamsError("missing param: " + p.Name)
				}
				// Ran out of positional values before an optional
				// parameter: stop conversion.
				return nil
			}

			v, ok := matchValue(p.Type, elems[i])
			if !ok {
				return NewInvalidParamsError("invalid param: " + p.Name)
			}
			if obj != nil {
				obj[p.Name] = v
			} else if arr != nil {
				*arr = append(*arr, v)
			}
		}
		return nil
	}

	return NewInvalidParamsError("invalid params")
}

// matchValue checks raw against the declared type and converts it. Numeric
// kinds follow the literal form: a number without fraction or exponent is an
// integer, anything else is a double. There is no coercion between the two.
func matchValue(t ParamType, raw json.RawMessage) (any, bool) {
	switch t {
	case TypeBoolean:
		// Unmarshal alone cannot reject null: decoding JSON null into a bool
		// is a successful no-op.
		if k := jsonKind(raw); k != 't' && k != 'f' {
			return nil, false
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false
		}
		return v, true

	case TypeInteger:
		n, ok := matchNumber(raw)
		if !ok || strings.ContainsAny(string(n), ".eE") {
			return nil, false
		}
		v, err := n.Int64()
		if err != nil {
			return nil, false
		}
		return v, true

	case TypeDouble:
		n, ok := matchNumber(raw)
		if !ok || !strings.ContainsAny(string(n), ".eE") {
			return nil, false
		}
		v, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return v, true

	case TypeString:
		// Same null no-op applies to string targets.
		if jsonKind(raw) != '"' {
			return nil, false
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false
		}
		return v, true

	case TypeObject:
		if jsonKind(raw) != '{' {
			return nil, false
		}
		var v map[string]any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false
		}
		return v, true

	case TypeArray:
		if jsonKind(raw) != '[' {
			return nil, false
		}
		var v []any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, false
		}
		return v, true
	}

	return nil, false
}

func matchNumber(raw json.RawMessage) (json.Number, bool) {
	// Reject non-number literals up front: encoding/json happily decodes a
	// quoted numeric string into a json.Number.
	if k := jsonKind(raw); k != '-' && (k < '0' || k > '9') {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n, true
}

// jsonKind returns the first significant byte of raw: '{' for objects,
// '[' for arrays, 0 for empty input, anything else for scalar values.
func jsonKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}

// isJSONAbsent reports whether raw denotes a missing params member. A JSON
// null is treated as absent, matching the wire behavior of an omitted
// "params" key.
func isJSONAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
