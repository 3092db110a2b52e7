package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// defaultBodyLimit caps how much of a request body Unmarshal reads.
const defaultBodyLimit int64 = 8 << 20 // 8MB

// Unmarshal populates dst (must be a non-nil pointer to a struct) from the
// request.
//
// Supported struct tags:
//   - `path:"name"`: r.PathValue(name)
//   - `query:"name"`: r.URL.Query().Get(name)
//   - `header:"name"`: r.Header.Get(name)
//   - `body:""`: the raw request body ([]byte or string), or `body:",json"`
//     to decode the body as JSON into the field
//
// An empty name defaults to the struct field name lowercased. Supported
// field types for path/query/header are string, bool and the integer kinds.
// Fields without any recognized tag are left untouched.
func Unmarshal(r *http.Request, dst any) error {
	if r == nil {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: nil request"))
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must be a non-nil pointer"))
	}
	root := v.Elem()
	if root.Kind() != reflect.Struct {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must point to a struct"))
	}

	t := root.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if tag, ok := field.Tag.Lookup("body"); ok {
			if err := decodeBody(r, root.Field(i), tag); err != nil {
				return err
			}
			continue
		}

		var value string
		var present bool
		if tag, ok := field.Tag.Lookup("path"); ok {
			value = r.PathValue(tagName(tag, field.Name))
			present = value != ""
		} else if tag, ok := field.Tag.Lookup("query"); ok {
			vs, found := r.URL.Query()[tagName(tag, field.Name)]
			if found && len(vs) > 0 {
				value = vs[0]
				present = true
			}
		} else if tag, ok := field.Tag.Lookup("header"); ok {
			value = r.Header.Get(tagName(tag, field.Name))
			present = value != ""
		} else {
			continue
		}

		if !present {
			continue
		}
		if err := setField(root.Field(i), value); err != nil {
			return Error(http.StatusBadRequest,
				fmt.Sprintf("invalid value for parameter %q", tagName("", field.Name)), err)
		}
	}
	return nil
}

// tagName returns the parameter name from a tag value, defaulting to the
// lowercased field name.
func tagName(tag, fieldName string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return strings.ToLower(fieldName)
	}
	return name
}

func decodeBody(r *http.Request, field reflect.Value, tag string) error {
	if r.Body == nil {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, defaultBodyLimit))
	if err != nil {
		return Error(http.StatusBadRequest, "failed to read request body", err)
	}

	_, opts, _ := strings.Cut(tag, ",")
	if opts == "json" {
		if err := json.Unmarshal(data, field.Addr().Interface()); err != nil {
			return Error(http.StatusBadRequest, "invalid JSON body", err)
		}
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(string(data))
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.Uint8 {
			return Error(http.StatusInternalServerError, "",
				errors.New("endpoint: decode: body field must be []byte or string"))
		}
		field.SetBytes(data)
	default:
		return Error(http.StatusInternalServerError, "",
			errors.New("endpoint: decode: body field must be []byte or string"))
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	default:
		return fmt.Errorf("endpoint: decode: unsupported field kind %s", field.Kind())
	}
	return nil
}
