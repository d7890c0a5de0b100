package toon

// arrayShape is the rendering mode for an array.
type arrayShape uint8

const (
	// shapePrimitive: every element is a scalar. One line, header with
	// length, delimiter-joined cells. The empty array lands here.
	shapePrimitive arrayShape = iota

	// shapeTabular: non-empty, all elements are objects sharing one
	// key set with only scalar values. Header plus one row per element.
	shapeTabular

	// shapeMixed: everything else. Length-tagged block of dash items.
	shapeMixed
)

// classifyArray inspects an array and picks its rendering mode. For
// tabular arrays it also returns the field order, taken from the first
// element.
func classifyArray(elems []*Value) (arrayShape, []string) {
	// Tabular needs at least one element; an empty array renders as a
	// primitive header with no cells.
	if len(elems) == 0 {
		return shapePrimitive, nil
	}

	allScalar := true
	for _, e := range elems {
		if !e.IsScalar() {
			allScalar = false
			break
		}
	}
	if allScalar {
		return shapePrimitive, nil
	}

	if fields, ok := tabularFields(elems); ok {
		return shapeTabular, fields
	}
	return shapeMixed, nil
}

// tabularFields checks whether every element is an object with the
// same key set and only scalar values, returning the field order from
// the first element.
func tabularFields(elems []*Value) ([]string, bool) {
	first := elems[0]
	if first.Kind() != KindMap {
		return nil, false
	}

	fields := make([]string, 0, len(first.mapVal))
	for _, e := range first.mapVal {
		if !e.Value.IsScalar() {
			return nil, false
		}
		fields = append(fields, e.Key)
	}

	for _, elem := range elems[1:] {
		if elem.Kind() != KindMap || len(elem.mapVal) != len(fields) {
			return nil, false
		}
		for _, e := range elem.mapVal {
			if !e.Value.IsScalar() {
				return nil, false
			}
			if !containsKey(fields, e.Key) {
				return nil, false
			}
		}
	}

	return fields, true
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
