package toon

import "strings"

// Delimiter separates sibling values in inline arrays and tabular rows.
// The zero value means "not set": Comma when encoding, auto-detect when decoding.
type Delimiter byte

const (
	Comma Delimiter = ','
	Tab   Delimiter = '\t'
	Pipe  Delimiter = '|'
)

// DefaultDelimiter is used when no delimiter is configured.
const DefaultDelimiter = Comma

// ParseDelimiter accepts the names comma, tab and pipe or the characters themselves.
func ParseDelimiter(s string) (Delimiter, error) {
	switch strings.ToLower(s) {
	case "comma", ",":
		return Comma, nil
	case "tab", "\t", `\t`:
		return Tab, nil
	case "pipe", "|":
		return Pipe, nil
	}
	return 0, newError(KindInvalidDelimiter, "%q", s)
}

// Valid reports whether d is one of Comma, Tab or Pipe.
func (d Delimiter) Valid() bool {
	return d == Comma || d == Tab || d == Pipe
}

// String returns the name of the delimiter.
func (d Delimiter) String() string {
	switch d {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Pipe:
		return "pipe"
	case 0:
		return "auto"
	default:
		return "delimiter(" + string(rune(d)) + ")"
	}
}

// headerMark is what an array header carries for d; comma is implied.
func (d Delimiter) headerMark() string {
	if d == Comma {
		return ""
	}
	return string(rune(d))
}

func delimiterOf(ch byte) (Delimiter, bool) {
	switch ch {
	case ',':
		return Comma, true
	case '\t':
		return Tab, true
	case '|':
		return Pipe, true
	}
	return 0, false
}
