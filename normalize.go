package toon

import "math"

// Normalize returns a copy of v safe to encode: NaN and infinities become null and
// negative zero becomes the integer 0. A nil Value becomes Null.
func Normalize(v Value) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Null{}
		}
		if f == 0 && math.Signbit(f) {
			return Int(0)
		}
		return val
	case Array:
		out := make(Array, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case Object:
		out := make(Object, len(val))
		for i, m := range val {
			out[i] = Member{Key: m.Key, Value: Normalize(m.Value)}
		}
		return out
	default:
		return v
	}
}
