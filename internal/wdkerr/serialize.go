package wdkerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"time"
)

// WireError is the transport form of a classified error. Cause is populated
// only in development mode so internal paths and secret-adjacent context
// never leak to production callers.
type WireError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// Serialize flattens err for transport. The kind and message always survive;
// the underlying cause chain is included only when devMode is set.
func Serialize(err error, devMode bool) WireError {
	if err == nil {
		return WireError{Kind: string(KindUnknown)}
	}
	wire := WireError{Kind: string(KindOf(err)), Message: err.Error()}
	var classified *Error
	if errors.As(err, &classified) {
		wire.Message = classified.Message
		if devMode && classified.Cause != nil {
			wire.Cause = classified.Cause.Error()
		}
	} else if devMode {
		wire.Cause = err.Error()
	}
	return wire
}

// MarshalValue serializes an arbitrary capability result to a transport
// string. Arbitrary-precision integers become decimal strings, time values
// become RFC 3339, and anything that still cannot be serialized collapses to
// a tagged placeholder instead of failing.
func MarshalValue(v any) string {
	data, err := json.Marshal(sanitizeValue(v, 0))
	if err != nil {
		return placeholder(v)
	}
	return string(data)
}

const maxSanitizeDepth = 32

func sanitizeValue(v any, depth int) any {
	if v == nil {
		return nil
	}
	if depth > maxSanitizeDepth {
		return placeholder(v)
	}

	switch t := v.(type) {
	case *big.Int:
		if t == nil {
			return nil
		}
		return t.String()
	case big.Int:
		return t.String()
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339)
	case json.RawMessage:
		return t
	case error:
		return t.Error()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return sanitizeValue(rv.Elem().Interface(), depth+1)
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitizeValue(iter.Value().Interface(), depth+1)
		}
		return out
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		fallthrough
	case reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = sanitizeValue(rv.Index(i).Interface(), depth+1)
		}
		return out
	case reflect.Struct:
		return sanitizeStruct(v, depth)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128:
		return placeholder(v)
	default:
		return v
	}
}

func sanitizeStruct(v any, depth int) any {
	rv := reflect.ValueOf(v)
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := cutTag(tag)
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out[name] = sanitizeValue(rv.Field(i).Interface(), depth+1)
	}
	return out
}

func cutTag(tag string) (name, rest string, found bool) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i], tag[i+1:], true
		}
	}
	return tag, "", false
}

func placeholder(v any) string {
	return fmt.Sprintf("[unserializable %T]", v)
}
