package calculator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/leofalp/calclogic/internal/jsonschema"
	"github.com/leofalp/calclogic/providers/observability"
)

// Number is a float64 that survives a JSON round trip even when it is NaN or
// infinite. Finite values encode as JSON numbers; the others encode as the
// strings "+Inf", "-Inf" and "NaN". Decoding accepts numbers, numeric strings
// and any spelling strconv.ParseFloat understands ("inf", "Infinity", ...).
// Literals beyond the float64 range decode to ±Inf.
type Number float64

// NumberOf returns a pointer to x as a Number, for building inputs.
func NumberOf(x float64) *Number {
	n := Number(x)
	return &n
}

// JSONSchema advertises both encodings: a JSON number, or one of the three
// special spellings as a string.
func (Number) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string", Enum: []any{"+Inf", "-Inf", "NaN"}},
		},
	}
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// IsFinite reports whether n is neither NaN nor infinite.
func (n Number) IsFinite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if n.IsFinite() {
		return json.Marshal(f)
	}
	return strconv.AppendQuote(nil, observability.FormatFloat(f)), nil
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null leaves n unchanged.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(text)
		if err != nil {
			return fmt.Errorf("calculator: invalid number %s: %w", text, err)
		}
		text = unquoted
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("calculator: invalid number %q", text)
	}
	*n = Number(f)
	return nil
}
