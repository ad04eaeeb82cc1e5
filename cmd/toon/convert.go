package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/paularlott/toon"
	"github.com/paularlott/toon/bsonval"
)

func encodeOptions(delimiter string, indent int, marker string) (*toon.EncodeOptions, error) {
	d, err := toon.ParseDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	if indent <= 0 {
		return nil, fmt.Errorf("indent must be positive, got %d", indent)
	}

	opts := &toon.EncodeOptions{Delimiter: d, Indent: strings.Repeat(" ", indent)}
	if marker != "" {
		r, size := utf8.DecodeRuneInString(marker)
		if size != len(marker) {
			return nil, fmt.Errorf("length marker must be a single character, got %q", marker)
		}
		opts.LengthMarker = r
	}
	return opts, nil
}

func decodeOptions(delimiter string, lenient, noCoerce bool) (*toon.DecodeOptions, error) {
	opts := &toon.DecodeOptions{Strict: !lenient, CoerceTypes: !noCoerce}
	if delimiter != "" {
		d, err := toon.ParseDelimiter(delimiter)
		if err != nil {
			return nil, err
		}
		opts.Delimiter = d
	}
	return opts, nil
}

// encodeInput reads in as the named format and encodes it as TOON.
func encodeInput(in []byte, format string, opts *toon.EncodeOptions) (string, error) {
	var (
		v   toon.Value
		err error
	)
	switch strings.ToLower(format) {
	case "json", "":
		v, err = toon.FromJSON(in)
	case "bson":
		v, err = bsonval.FromRaw(bson.Raw(in))
	case "extjson":
		v, err = bsonval.FromExtJSON(in, false)
	default:
		return "", fmt.Errorf("unknown input format %q", format)
	}
	if err != nil {
		return "", err
	}
	return toon.EncodeWithOptions(v, opts)
}

// decodeInput decodes TOON and writes it in the named format.
func decodeInput(in string, format string, opts *toon.DecodeOptions, pretty bool) ([]byte, error) {
	v, err := toon.DecodeWithOptions(in, opts)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "json", "":
		var out []byte
		if pretty {
			out, err = toon.ToJSONIndent(v, "  ")
		} else {
			out, err = toon.ToJSON(v)
		}
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "bson":
		return bsonval.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
