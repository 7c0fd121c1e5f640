package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var errNotWrapped = errors.New("not a schema-wrapped value")

// ParseStringAs parses content into a value of type T.
//
// Strings, booleans, integers and floats are converted with strconv; a
// {"type": ..., "value": ...} envelope around a primitive is unwrapped first
// if direct conversion fails. Everything else is decoded as JSON. When the
// JSON is malformed (single quotes, unquoted keys, trailing commas, Python
// constants, truncation) it is repaired with jsonrepair and decoded again, and
// as a last resort schema-shaped envelopes are unwrapped recursively.
//
// Example:
//
//	type operands struct {
//	    A  float64 `json:"A"`
//	    B  float64 `json:"B"`
//	    Op string  `json:"Op"`
//	}
//
//	in, err := parse.ParseStringAs[operands](`{A: 10, B: 4, Op: 'div'}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch target.Kind() {
	case reflect.String:
		if strings.HasPrefix(content, "{") {
			if unwrapped, err := unwrapPrimitive(content); err == nil {
				target.SetString(unwrapped)
				return result, nil
			}
		}
		target.SetString(content)
		return result, nil

	case reflect.Bool:
		v, err := parsePrimitive(content, strconv.ParseBool)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		target.SetBool(v)
		return result, nil

	case reflect.Float32, reflect.Float64:
		v, err := parsePrimitive(content, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		target.SetFloat(v)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := parsePrimitive(content, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		target.SetInt(v)
		return result, nil

	default:
		err := json.Unmarshal([]byte(content), &result)
		if err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(content)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}

		// A failed decode may leave result half-populated.
		var fresh T
		if err := decodeRepaired(repaired, &fresh); err != nil {
			return fresh, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", fresh, err, content, repaired)
		}
		return fresh, nil
	}
}

// decodeRepaired decodes repaired JSON into out, retrying once with
// schema-shaped envelopes removed.
func decodeRepaired[T any](repaired string, out *T) error {
	err := json.Unmarshal([]byte(repaired), out)
	if err == nil {
		return nil
	}

	unwrapped, unwrapErr := unwrapSchemaValues(repaired)
	if unwrapErr != nil {
		return err
	}
	var retry T
	if retryErr := json.Unmarshal([]byte(unwrapped), &retry); retryErr != nil {
		return err
	}
	*out = retry
	return nil
}

// parsePrimitive converts content with conv, falling back to the value inside
// a {"type": ..., "value": ...} envelope.
func parsePrimitive[V any](content string, conv func(string) (V, error)) (V, error) {
	v, err := conv(strings.TrimSpace(content))
	if err == nil {
		return v, nil
	}
	if unwrapped, unwrapErr := unwrapPrimitive(content); unwrapErr == nil {
		if v, convErr := conv(unwrapped); convErr == nil {
			return v, nil
		}
	}
	return v, err
}

// unwrapPrimitive returns the string form of the value held by a
// {"type": ..., "value": ...} object.
func unwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}

	value, ok := envelopeValue(data)
	if !ok {
		return "", errNotWrapped
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case float64, bool:
		return fmt.Sprintf("%v", v), nil
	default:
		out, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// unwrapSchemaValues replaces every {"type": ..., "value": ...} envelope in
// the document with its value, e.g.
//
//	{"A": {"type": "number", "value": 3}}  ->  {"A": 3}
func unwrapSchemaValues(content string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}

	out, err := json.Marshal(unwrap(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func unwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return unwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = unwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = unwrap(val)
		}
		return out
	default:
		return data
	}
}

// envelopeValue reports whether m is exactly {"type": ..., "value": ...}.
func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
