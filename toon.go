// Package toon implements the TOON (Token-Oriented Object Notation) format.
// TOON is a line-oriented, indentation-based text format that encodes the JSON data model
// with explicit structure and minimal quoting.
//
// Arrays are written in the most compact form that can be read back unambiguously:
// arrays of uniform objects become tables, arrays of primitives are written inline,
// and everything else becomes a dash-prefixed list.
//
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//	tags[3]: admin,ops,dev
//
// Encode and Decode work on the ordered Value model; Marshal and Unmarshal convert
// ordinary Go values on the way in and out.
package toon

// MaxDepth is the deepest nesting of objects and arrays accepted by the encoder and
// the decoder.
const MaxDepth = 256

// DefaultIndent is the indentation written per nesting level.
const DefaultIndent = "  "

// EncodeOptions configures TOON encoding behavior.
type EncodeOptions struct {
	Delimiter    Delimiter // Delimiter for arrays and tabular data (default: Comma)
	LengthMarker rune      // Optional character written before array lengths, e.g. '#' gives [#3]
	Indent       string    // Spaces per indentation level (default: two spaces)
}

// DecodeOptions configures TOON decoding behavior.
type DecodeOptions struct {
	Delimiter   Delimiter // Pinned delimiter; zero detects it from the first array header
	Strict      bool      // Enforce declared array lengths, indentation and field names
	CoerceTypes bool      // Round integer numerals too wide for int64 to floats instead of keeping their text
}

// DefaultEncodeOptions returns the options used by Encode.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Delimiter: DefaultDelimiter, Indent: DefaultIndent}
}

// DefaultDecodeOptions returns the options used by Decode.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Strict: true, CoerceTypes: true}
}

// Encode converts a value to TOON format.
func Encode(v Value) (string, error) {
	return EncodeWithOptions(v, nil)
}

// EncodeWithOptions converts a value to TOON format with custom options.
// A nil opts uses DefaultEncodeOptions; zero fields fall back to their defaults.
func EncodeWithOptions(v Value, opts *EncodeOptions) (string, error) {
	o := DefaultEncodeOptions()
	if opts != nil {
		o = *opts
		if o.Delimiter == 0 {
			o.Delimiter = DefaultDelimiter
		}
		if o.Indent == "" {
			o.Indent = DefaultIndent
		}
	}
	if err := validateEncodeOptions(&o); err != nil {
		return "", err
	}

	enc := newEncoder(o)
	if err := enc.encode(Normalize(v)); err != nil {
		return "", err
	}
	return enc.String(), nil
}

// EncodeObject is Encode for callers that require an object at the root.
func EncodeObject(v Value, opts *EncodeOptions) (string, error) {
	if _, ok := v.(Object); !ok {
		return "", newTypeMismatch(ObjectKind, kindOf(v))
	}
	return EncodeWithOptions(v, opts)
}

// EncodeArray is Encode for callers that require an array at the root.
func EncodeArray(v Value, opts *EncodeOptions) (string, error) {
	if _, ok := v.(Array); !ok {
		return "", newTypeMismatch(ArrayKind, kindOf(v))
	}
	return EncodeWithOptions(v, opts)
}

// Decode parses TOON format and returns the decoded value.
func Decode(data string) (Value, error) {
	return DecodeWithOptions(data, nil)
}

// DecodeWithOptions parses TOON format with custom options.
// A nil opts uses DefaultDecodeOptions.
func DecodeWithOptions(data string, opts *DecodeOptions) (Value, error) {
	o := DefaultDecodeOptions()
	if opts != nil {
		o = *opts
	}
	if o.Delimiter != 0 && !o.Delimiter.Valid() {
		return nil, newError(KindInvalidDelimiter, "%q", rune(o.Delimiter))
	}

	p := newParser(data, o)
	return p.parse()
}

// DecodeStrict decodes with strict validation and type coercion enabled.
func DecodeStrict(data string) (Value, error) {
	return DecodeWithOptions(data, &DecodeOptions{Strict: true, CoerceTypes: true})
}

// DecodeNoCoerce decodes with coercion disabled, keeping integer numerals too wide
// for int64 as strings.
func DecodeNoCoerce(data string) (Value, error) {
	return DecodeWithOptions(data, &DecodeOptions{Strict: true, CoerceTypes: false})
}

func kindOf(v Value) Kind {
	if v == nil {
		return NullKind
	}
	return v.Kind()
}
