package toon

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// FromAny converts an ordinary Go value into the value model. Maps are written
// with their keys sorted and named the way encoding/json names them: string keys
// as is, encoding.TextMarshaler keys by their text and integer keys in decimal.
// Structs go through encoding/json so tags and field order are honored.
func FromAny(v interface{}) (Value, error) {
	return fromAny(v, 1)
}

func fromAny(v interface{}, depth int) (Value, error) {
	if depth > MaxDepth {
		return nil, newError(KindSerialization, "maximum nesting depth of %d exceeded", MaxDepth)
	}

	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		n, err := numberValue(string(val))
		if err != nil {
			return nil, wrapError(KindSerialization, err)
		}
		return n, nil
	case json.RawMessage:
		return FromJSON(val)
	case []byte:
		return marshalThroughJSON(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		if _, ok := v.(json.Marshaler); ok {
			return marshalThroughJSON(v)
		}
		return fromAny(rv.Elem().Interface(), depth)
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return Float(float64(u)), nil
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Map:
		if rv.IsNil() {
			return Null{}, nil
		}
		if _, ok := v.(json.Marshaler); ok {
			return marshalThroughJSON(v)
		}
		return mapValue(rv, depth)
	case reflect.Slice:
		if rv.IsNil() {
			return Null{}, nil
		}
		fallthrough
	case reflect.Array:
		if _, ok := v.(json.Marshaler); ok {
			return marshalThroughJSON(v)
		}
		arr := make(Array, rv.Len())
		for i := range arr {
			item, err := fromAny(rv.Index(i).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = item
		}
		return arr, nil
	case reflect.Struct:
		return marshalThroughJSON(v)
	default:
		return nil, newError(KindSerialization, "unsupported type %T", v)
	}
}

func mapValue(rv reflect.Value, depth int) (Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	obj := make(Object, 0, len(entries))
	for _, e := range entries {
		val, err := fromAny(e.val.Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		obj = append(obj, Member{Key: e.key, Value: val})
	}
	return obj, nil
}

func mapKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		if k.Kind() == reflect.Ptr && k.IsNil() {
			return "", nil
		}
		text, err := tm.MarshalText()
		if err != nil {
			return "", wrapError(KindSerialization, err)
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return "", newError(KindSerialization, "unsupported map key type %s", k.Type())
}

func marshalThroughJSON(v interface{}) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, wrapError(KindSerialization, err)
	}
	val, err := FromJSON(data)
	if err != nil {
		return nil, wrapError(KindSerialization, err)
	}
	return val, nil
}

// ToAny converts a value into the types encoding/json produces when decoding into
// an interface{}, except that integers are int64.
func ToAny(v Value) interface{} {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Array:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = ToAny(item)
		}
		return out
	case Object:
		out := make(map[string]interface{}, len(val))
		for _, m := range val {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	}
	return nil
}

// FromJSON reads a single JSON value, keeping object keys in document order.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSON(dec, 1)
	if err != nil {
		return nil, wrapError(KindInvalidInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, newError(KindInvalidInput, "unexpected data after JSON value")
	}
	return v, nil
}

func readJSON(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth > MaxDepth {
			return nil, fmt.Errorf("maximum nesting depth of %d exceeded", MaxDepth)
		}
		if t == '[' {
			arr := Array{}
			for dec.More() {
				item, err := readJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				arr = append(arr, item)
			}
			_, err := dec.Token()
			return arr, err
		}

		obj := Object{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			val, err := readJSON(dec, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		_, err := dec.Token()
		return obj, err
	case string:
		return String(t), nil
	case json.Number:
		return numberValue(string(t))
	case bool:
		return Bool(t), nil
	default:
		return Null{}, nil
	}
}

// numberValue keeps integers that fit in 64 bits as Int; everything else is Float.
// Out of range floats become infinities, which Normalize turns into null.
func numberValue(s string) (Value, error) {
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	return Float(f), nil
}

// ToJSON writes v as compact JSON, keeping object keys in order. NaN and
// infinities are written as null.
func ToJSON(v Value) ([]byte, error) {
	var buf bytes.Buffer
	w := jsonWriter{buf: &buf}
	if err := w.write(v, 1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToJSONIndent is ToJSON followed by json.Indent.
func ToJSONIndent(v Value, indent string) ([]byte, error) {
	data, err := ToJSON(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", indent); err != nil {
		return nil, wrapError(KindSerialization, err)
	}
	return out.Bytes(), nil
}

type jsonWriter struct {
	buf     *bytes.Buffer
	scratch bytes.Buffer
	enc     *json.Encoder
}

func (w *jsonWriter) write(v Value, depth int) error {
	switch val := v.(type) {
	case nil, Null:
		w.buf.WriteString("null")
	case Bool:
		w.buf.WriteString(strconv.FormatBool(bool(val)))
	case Int:
		w.buf.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		w.buf.WriteString(formatFloat(float64(val)))
	case String:
		return w.writeString(string(val))
	case Array:
		if err := validateDepth(depth); err != nil {
			return err
		}
		w.buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(item, depth+1); err != nil {
				return err
			}
		}
		w.buf.WriteByte(']')
	case Object:
		if err := validateDepth(depth); err != nil {
			return err
		}
		w.buf.WriteByte('{')
		for i, m := range val {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.writeString(m.Key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if err := w.write(m.Value, depth+1); err != nil {
				return err
			}
		}
		w.buf.WriteByte('}')
	default:
		return newError(KindSerialization, "unsupported value %T", v)
	}
	return nil
}

func (w *jsonWriter) writeString(s string) error {
	if w.enc == nil {
		w.enc = json.NewEncoder(&w.scratch)
		w.enc.SetEscapeHTML(false)
	}
	w.scratch.Reset()
	if err := w.enc.Encode(s); err != nil {
		return wrapError(KindSerialization, err)
	}
	w.buf.Write(bytes.TrimSuffix(w.scratch.Bytes(), []byte("\n")))
	return nil
}

// Marshal converts a Go value to TOON.
func Marshal(v interface{}) (string, error) {
	return MarshalWithOptions(v, nil)
}

// MarshalWithOptions converts a Go value to TOON with custom options.
func MarshalWithOptions(v interface{}, opts *EncodeOptions) (string, error) {
	val, err := FromAny(v)
	if err != nil {
		return "", err
	}
	return EncodeWithOptions(val, opts)
}

// Unmarshal decodes TOON into the Go value pointed to by v, following the rules of
// json.Unmarshal.
func Unmarshal(data string, v interface{}) error {
	return UnmarshalWithOptions(data, v, nil)
}

// UnmarshalWithOptions is Unmarshal with custom decode options.
func UnmarshalWithOptions(data string, v interface{}, opts *DecodeOptions) error {
	val, err := DecodeWithOptions(data, opts)
	if err != nil {
		return err
	}
	raw, err := ToJSON(Normalize(val))
	if err != nil {
		return wrapError(KindDeserialization, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return wrapError(KindDeserialization, err)
	}
	return nil
}
