package toon

import "unicode"

func validateDepth(depth int) error {
	if depth > MaxDepth {
		return newError(KindInvalidStructure, "maximum nesting depth of %d exceeded", MaxDepth)
	}
	return nil
}

func validateFieldName(name string) error {
	if name == "" {
		return newError(KindInvalidStructure, "field name cannot be empty")
	}
	return nil
}

// Validate checks that v nests no deeper than MaxDepth and that no object has an
// empty key.
func Validate(v Value) error {
	return validateValue(v, 0)
}

func validateValue(v Value, depth int) error {
	switch val := v.(type) {
	case Array:
		if err := validateDepth(depth + 1); err != nil {
			return err
		}
		for _, item := range val {
			if err := validateValue(item, depth+1); err != nil {
				return err
			}
		}
	case Object:
		if err := validateDepth(depth + 1); err != nil {
			return err
		}
		for _, m := range val {
			if err := validateFieldName(m.Key); err != nil {
				return err
			}
			if err := validateValue(m.Value, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEncodeOptions(o *EncodeOptions) error {
	if !o.Delimiter.Valid() {
		return newError(KindInvalidDelimiter, "%q", rune(o.Delimiter))
	}
	for _, c := range o.Indent {
		if c != ' ' {
			return newError(KindInvalidInput, "indent must contain only spaces, got %q", o.Indent)
		}
	}
	if m := o.LengthMarker; m != 0 {
		if m < 0x20 || m == 0x7f || unicode.IsSpace(m) || unicode.IsDigit(m) || !unicode.IsPrint(m) {
			return newError(KindInvalidInput, "length marker %q is not a printable character", m)
		}
		switch m {
		case '[', ']', '{', '}', ':', '"', '\\', ',', '|':
			return newError(KindInvalidInput, "length marker %q is reserved", m)
		}
	}
	return nil
}
