package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to advertise tool parameters and
// results to a tool-calling runtime.
type Schema struct {
	// Type is the JSON type ("object", "array", "string", "number", ...)
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items describes array elements
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties describes map values
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	// Enum lists the allowed values, converted to the field's kind
	Enum []any `json:"enum,omitempty"`
	// AnyOf lists alternative schemas, for values with more than one JSON form
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// Definer is implemented by types whose JSON form does not follow from their
// Go kind, typically because they implement json.Marshaler. The returned
// schema replaces the one derived by reflection and must be a fresh value.
type Definer interface {
	JSONSchema() *Schema
}

var definerType = reflect.TypeOf((*Definer)(nil)).Elem()

// definedSchema returns the schema supplied by t, or nil when neither t nor
// *t implements Definer.
func definedSchema(t reflect.Type) *Schema {
	switch {
	case t.Kind() != reflect.Ptr && t.Implements(definerType):
		return reflect.Zero(t).Interface().(Definer).JSONSchema()
	case reflect.PointerTo(t).Implements(definerType):
		return reflect.New(t).Interface().(Definer).JSONSchema()
	default:
		return nil
	}
}

// GenerateJSONSchema derives a Schema for T by reflection.
// Struct fields use their json tag name; a `jsonschema` tag adds a
// description, enum values and the required flag (see parseTag).
func GenerateJSONSchema[T any]() (*Schema, error) {
	g := &generator{visiting: make(map[reflect.Type]bool)}
	return g.schemaFor(reflect.TypeOf((*T)(nil)).Elem())
}

type generator struct {
	// visiting holds the struct types on the current path; a type seen again
	// is emitted as a bare object to break the cycle.
	visiting map[reflect.Type]bool
}

func (g *generator) schemaFor(t reflect.Type) (*Schema, error) {
	if t.Kind() != reflect.Ptr {
		if schema := definedSchema(t); schema != nil {
			return schema, nil
		}
	}

	switch t.Kind() {
	case reflect.Ptr:
		return g.schemaFor(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Slice, reflect.Array:
		items, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		values, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Struct:
		return g.structSchema(t)
	default:
		return &Schema{Type: "object"}, nil
	}
}

func (g *generator) structSchema(t reflect.Type) (*Schema, error) {
	if g.visiting[t] {
		return &Schema{Type: "object"}, nil
	}
	g.visiting[t] = true
	defer delete(g.visiting, t)

	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema, err := g.schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		requiredByTag, err := parseTag(field.Type, field.Tag.Get("jsonschema"), fieldSchema)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		schema.Properties[name] = fieldSchema
		if requiredByTag || (field.Type.Kind() != reflect.Ptr && !omitEmpty) {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema, nil
}

// jsonName returns the property name for a field along with its omitempty
// flag. skip is true for fields tagged json:"-".
func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty"), false
}

// parseTag applies a jsonschema struct tag to schema. Supported items:
//   - description=xxx
//   - enum=a,enum=b (values converted to the field's kind)
//   - required
//
// Descriptions cannot contain commas.
func parseTag(fieldType reflect.Type, tag string, schema *Schema) (bool, error) {
	if tag == "" {
		return false, nil
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		if !hasValue {
			if key == "required" {
				required = true
			}
			continue
		}

		switch key {
		case "description":
			schema.Description = value
		case "enum":
			v, err := enumValue(fieldType, value)
			if err != nil {
				return false, err
			}
			schema.Enum = append(schema.Enum, v)
		}
	}
	return required, nil
}

func enumValue(fieldType reflect.Type, value string) (any, error) {
	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}

// JSONString returns the schema as compact JSON, or indented JSON when
// indent is true.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(data), nil
}

// String returns the compact JSON form of the schema.
func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
