package toon

import (
	"math"
	"strconv"
	"strings"
)

// encoder writes one document. Positions are tracked as columns so that list item
// content, which starts two columns after its dash, can be aligned for any indent
// width.
type encoder struct {
	delim       Delimiter
	marker      string
	unit        int
	buf         strings.Builder
	lines       int
	indentCache []string
}

func newEncoder(opts EncodeOptions) *encoder {
	e := &encoder{
		delim: opts.Delimiter,
		unit:  len(opts.Indent),
	}
	if opts.LengthMarker != 0 {
		e.marker = string(opts.LengthMarker)
	}
	return e
}

func (e *encoder) String() string {
	return e.buf.String()
}

func (e *encoder) encode(v Value) error {
	switch val := v.(type) {
	case Object:
		if len(val) == 0 {
			return nil
		}
		return e.writeObject(val, 0, 1)
	case Array:
		// The root header is the first line; later lines break before themselves.
		e.lines = 1
		return e.writeArray(val, 0, 1)
	default:
		e.buf.WriteString(e.primitive(v))
		return nil
	}
}

func (e *encoder) getIndent(col int) string {
	for len(e.indentCache) <= col {
		e.indentCache = append(e.indentCache, strings.Repeat(" ", len(e.indentCache)))
	}
	return e.indentCache[col]
}

// startLine terminates the previous line, if any, and indents to col.
func (e *encoder) startLine(col int) {
	if e.lines > 0 {
		e.buf.WriteByte('\n')
	}
	e.lines++
	e.buf.WriteString(e.getIndent(col))
}

func (e *encoder) writeObject(obj Object, col, depth int) error {
	if err := validateDepth(depth); err != nil {
		return err
	}
	for _, m := range obj {
		e.startLine(col)
		if err := e.writeEntry(m.Key, m.Value, col, depth); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes key and its value at the cursor. col is the column of the key
// and depth the depth of the object holding it.
func (e *encoder) writeEntry(key string, v Value, col, depth int) error {
	e.buf.WriteString(e.encodeKey(key))

	switch val := v.(type) {
	case Object:
		e.buf.WriteByte(':')
		if len(val) == 0 {
			return validateDepth(depth + 1)
		}
		return e.writeObject(val, col+e.unit, depth+1)
	case Array:
		return e.writeArray(val, col, depth+1)
	default:
		e.buf.WriteString(": ")
		e.buf.WriteString(e.primitive(v))
		return nil
	}
}

// writeArray writes the header at the cursor and the body one indent deeper than
// col, the column of the line that owns the header.
func (e *encoder) writeArray(arr Array, col, depth int) error {
	if err := validateDepth(depth); err != nil {
		return err
	}

	shape, fields := classifyArray(arr)
	e.writeHeader(len(arr))

	switch shape {
	case shapeEmpty:
		e.buf.WriteByte(':')
	case shapePrimitive:
		e.buf.WriteString(": ")
		e.writeCells(arr)
	case shapeTabular:
		e.buf.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				e.buf.WriteByte(byte(e.delim))
			}
			e.buf.WriteString(e.encodeKey(f))
		}
		e.buf.WriteString("}:")
		for _, v := range arr {
			e.startLine(col + e.unit)
			row := v.(Object)
			for i, m := range row {
				if i > 0 {
					e.buf.WriteByte(byte(e.delim))
				}
				e.buf.WriteString(e.primitive(m.Value))
			}
		}
	case shapeNested:
		e.buf.WriteByte(':')
		for _, item := range arr {
			e.startLine(col + e.unit)
			if err := e.writeListItem(item, col+e.unit, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) writeHeader(n int) {
	e.buf.WriteByte('[')
	e.buf.WriteString(e.marker)
	e.buf.WriteString(strconv.Itoa(n))
	e.buf.WriteString(e.delim.headerMark())
	e.buf.WriteByte(']')
}

func (e *encoder) writeCells(arr Array) {
	for i, v := range arr {
		if i > 0 {
			e.buf.WriteByte(byte(e.delim))
		}
		e.buf.WriteString(e.primitive(v))
	}
}

// writeListItem writes one element of a nested array; the cursor is at dashCol and
// depth is the depth of the array.
func (e *encoder) writeListItem(item Value, dashCol, depth int) error {
	switch val := item.(type) {
	case Object:
		if len(val) == 0 {
			e.buf.WriteByte('-')
			return validateDepth(depth + 1)
		}
		if err := validateDepth(depth + 1); err != nil {
			return err
		}
		e.buf.WriteString("- ")
		content := dashCol + 2
		for i, m := range val {
			if i > 0 {
				e.startLine(content)
			}
			if err := e.writeEntry(m.Key, m.Value, content, depth+1); err != nil {
				return err
			}
		}
		return nil
	case Array:
		e.buf.WriteString("- ")
		return e.writeArray(val, dashCol, depth+1)
	default:
		e.buf.WriteString("- ")
		e.buf.WriteString(e.primitive(item))
		return nil
	}
}

func (e *encoder) primitive(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(val))
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Float:
		return formatFloat(float64(val))
	case String:
		return e.encodeString(string(val))
	default:
		return "null"
	}
}

// formatFloat always leaves a '.' or an exponent in the output so the value reads
// back as a float.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (e *encoder) encodeString(s string) string {
	if NeedsQuoting(s, e.delim) {
		return Quote(s)
	}
	return s
}

func (e *encoder) encodeKey(key string) string {
	if NeedsKeyQuoting(key, e.delim) {
		return Quote(key)
	}
	return key
}
