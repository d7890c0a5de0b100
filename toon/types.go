package toon

import "fmt"

// Kind represents TOON value types.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindList
	KindMap
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value represents a node in a normalized value tree. Trees are built
// once by a converter, consumed read-only by the encoder, and must be
// acyclic (caller guarantee; cycles are not detected).
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string

	// Container values
	listVal []*Value
	mapVal  []MapEntry
}

// MapEntry represents a key-value pair in a map. Entry order is
// semantically significant: it determines output order and tabular
// field order.
type MapEntry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindStr, strVal: v}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{kind: KindList, listVal: values}
}

// Map creates a map value from key-value pairs.
func Map(entries ...MapEntry) *Value {
	return &Value{kind: KindMap, mapVal: entries}
}

// Field creates a MapEntry for use in Map construction.
func Field(key string, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind. A nil value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// IsScalar returns true for null, bool, int, float, and str values.
func (v *Value) IsScalar() bool {
	return v.Kind() <= KindStr
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("toon: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindInt {
		return 0, fmt.Errorf("toon: expected int, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindFloat {
		return 0, fmt.Errorf("toon: expected float, got %s", v.kind)
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil {
		return "", fmt.Errorf("toon: nil value")
	}
	if v.kind != KindStr {
		return "", fmt.Errorf("toon: expected str, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsList returns the list elements.
func (v *Value) AsList() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindList {
		return nil, fmt.Errorf("toon: expected list, got %s", v.kind)
	}
	return v.listVal, nil
}

// AsMap returns the map entries.
func (v *Value) AsMap() ([]MapEntry, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindMap {
		return nil, fmt.Errorf("toon: expected map, got %s", v.kind)
	}
	return v.mapVal, nil
}

// Len returns the length of a list or map.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindList:
		return len(v.listVal)
	case KindMap:
		return len(v.mapVal)
	default:
		return 0
	}
}

// Get returns a field value by key from a map, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindMap {
		return nil
	}
	for _, e := range v.mapVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Index returns the i-th element of a list.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindList {
		return nil, fmt.Errorf("toon: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("toon: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}
