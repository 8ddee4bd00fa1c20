package otlp

import (
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
)

type attributesKind int

const (
	attributesEmpty attributesKind = iota
	attributesMapping
	attributesPreShaped
)

// Attributes is the accepted attribute input: either a key/value mapping whose
// values are stringified, or an already-shaped attribute list passed through
// unchanged. The zero value is an empty attribute set.
type Attributes struct {
	kind    attributesKind
	mapping map[string]interface{}
	shaped  []KeyValue
}

// Map returns mapping-form attributes.
func Map(m map[string]interface{}) Attributes {
	if len(m) == 0 {
		return Attributes{}
	}
	return Attributes{kind: attributesMapping, mapping: m}
}

// StringMap returns mapping-form attributes from a string map.
func StringMap(m map[string]string) Attributes {
	if len(m) == 0 {
		return Attributes{}
	}
	converted := make(map[string]interface{}, len(m))
	for k, v := range m {
		converted[k] = v
	}
	return Attributes{kind: attributesMapping, mapping: converted}
}

// PreShaped returns attributes that are emitted exactly as given.
func PreShaped(kvs ...KeyValue) Attributes {
	if len(kvs) == 0 {
		return Attributes{}
	}
	return Attributes{kind: attributesPreShaped, shaped: kvs}
}

// FromKeyValues converts OTel attributes into mapping form, rendering each
// value with attribute.Value.Emit.
func FromKeyValues(kvs ...attribute.KeyValue) Attributes {
	if len(kvs) == 0 {
		return Attributes{}
	}
	m := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.Emit()
	}
	return Attributes{kind: attributesMapping, mapping: m}
}

// IsEmpty reports whether no attributes are set.
func (a Attributes) IsEmpty() bool {
	return len(a.mapping) == 0 && len(a.shaped) == 0
}

// KeyValues renders the attributes in wire form. Mapping keys are emitted in
// sorted order; the result is never nil.
func (a Attributes) KeyValues() []KeyValue {
	switch a.kind {
	case attributesMapping:
		keys := make([]string, 0, len(a.mapping))
		for k := range a.mapping {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]KeyValue, 0, len(keys))
		for _, k := range keys {
			out = append(out, String(k, stringValue(a.mapping[k])))
		}
		return out
	case attributesPreShaped:
		out := make([]KeyValue, len(a.shaped))
		copy(out, a.shaped)
		return out
	}
	return []KeyValue{}
}

// Validate rejects pre-shaped attributes with an empty key.
func (a Attributes) Validate() error {
	for i, kv := range a.shaped {
		if kv.Key == "" {
			return fmt.Errorf("%w: attribute %d has no key", ErrBadAttributeShape, i)
		}
	}
	return nil
}

// FormatAttributes resolves a dynamically typed attribute input into wire form.
// It accepts Attributes, map[string]interface{}, map[string]string, []KeyValue
// and nil; anything else yields ErrBadAttributeShape.
func FormatAttributes(input interface{}) ([]KeyValue, error) {
	attrs, err := ToAttributes(input)
	if err != nil {
		return nil, err
	}
	return attrs.KeyValues(), nil
}

// ToAttributes is FormatAttributes without rendering.
func ToAttributes(input interface{}) (Attributes, error) {
	switch v := input.(type) {
	case nil:
		return Attributes{}, nil
	case Attributes:
		return v, nil
	case map[string]interface{}:
		return Map(v), nil
	case map[string]string:
		return StringMap(v), nil
	case []KeyValue:
		return PreShaped(v...), nil
	case []attribute.KeyValue:
		return FromKeyValues(v...), nil
	default:
		return Attributes{}, fmt.Errorf("%w: got %T", ErrBadAttributeShape, input)
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func withoutFiltered(kvs []KeyValue) []KeyValue {
	out := kvs[:0:0]
	for _, kv := range kvs {
		if _, drop := filteredMetricAttributes[kv.Key]; drop {
			continue
		}
		out = append(out, kv)
	}
	if out == nil {
		out = []KeyValue{}
	}
	return out
}
