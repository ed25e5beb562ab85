package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a synthesized parameter value tagged with its declared type
type Value struct {
	Type ParameterType
	Raw  interface{}
}

// Encode renders the value the way it is placed in a URL.
// Booleans are lowercase, numbers use the shortest decimal form and arrays
// are comma-joined (the Swagger "csv" collection format) in both path and query.
func (v Value) Encode() string {
	return encodeRaw(v.Raw)
}

func encodeRaw(raw interface{}) string {
	switch x := raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []int:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ",")
	case []interface{}:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = encodeRaw(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// MarshalJSON renders the raw typed value
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw)
}

// Values maps parameter names to synthesized values
type Values map[string]Value

// JSON renders the map as a JSON object with sorted keys
func (vs Values) JSON() string {
	if vs == nil {
		return "{}"
	}
	b, err := json.Marshal(map[string]Value(vs))
	if err != nil {
		return "{}"
	}
	return string(b)
}
