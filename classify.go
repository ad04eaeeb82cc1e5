package toon

// arrayShape is the layout the writer chooses for an array.
type arrayShape int

const (
	shapeEmpty     arrayShape = iota // header only: [0]:
	shapePrimitive                   // inline cells on the header line
	shapeTabular                     // field list and one row per element
	shapeNested                      // one "- " item per element
)

func (s arrayShape) String() string {
	switch s {
	case shapeEmpty:
		return "empty"
	case shapePrimitive:
		return "primitive"
	case shapeTabular:
		return "tabular"
	default:
		return "nested"
	}
}

// classifyArray picks the most compact shape arr can be written in. For tabular
// arrays it also returns the field names in the order of the first element.
func classifyArray(arr Array) (arrayShape, []string) {
	if len(arr) == 0 {
		return shapeEmpty, nil
	}
	if fields, ok := tabularFields(arr); ok {
		return shapeTabular, fields
	}
	for _, v := range arr {
		if !IsPrimitive(v) {
			return shapeNested, nil
		}
	}
	return shapePrimitive, nil
}

// tabularFields reports whether every element is an object with the same keys in
// the same order, all values primitive.
func tabularFields(arr Array) ([]string, bool) {
	first, ok := arr[0].(Object)
	if !ok || len(first) == 0 {
		return nil, false
	}
	fields := first.Keys()
	for _, f := range fields {
		if f == "" {
			return nil, false
		}
	}

	for _, v := range arr {
		obj, ok := v.(Object)
		if !ok || len(obj) != len(fields) {
			return nil, false
		}
		for i, m := range obj {
			if m.Key != fields[i] || !IsPrimitive(m.Value) {
				return nil, false
			}
		}
	}
	return fields, true
}
