package toon

import (
	"regexp"
	"strings"
	"unicode"
)

type quoteContext int

const (
	valueContext quoteContext = iota
	keyContext
)

var (
	numericLikeRegex = regexp.MustCompile(`^-?\d[\d.eE+-]*$`)
	leadingZeroRegex = regexp.MustCompile(`^-?0\d`)
)

// IsKeyword reports whether s is one of the literals null, true or false.
func IsKeyword(s string) bool {
	switch s {
	case "null", "true", "false":
		return true
	}
	return false
}

// IsLiteralLike reports whether s would read back as something other than a string
// if written without quotes: a keyword or anything shaped like a number.
func IsLiteralLike(s string) bool {
	return IsKeyword(s) || isNumericLike(s)
}

func isNumericLike(s string) bool {
	if !numericLikeRegex.MatchString(s) || leadingZeroRegex.MatchString(s) {
		return false
	}
	last := s[len(s)-1]
	return last != '+' && last != '-'
}

// NeedsQuoting reports whether s must be quoted when written as a value with
// delimiter d in force.
func NeedsQuoting(s string, d Delimiter) bool {
	return needsQuoting(s, valueContext, d)
}

// NeedsKeyQuoting reports whether s must be quoted when written as an object key
// or tabular field name with delimiter d in force.
func NeedsKeyQuoting(s string, d Delimiter) bool {
	return needsQuoting(s, keyContext, d)
}

func needsQuoting(s string, ctx quoteContext, d Delimiter) bool {
	if len(s) == 0 {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	if IsLiteralLike(s) {
		return true
	}
	if d == 0 {
		d = DefaultDelimiter
	}

	for _, c := range s {
		switch c {
		case '[', ']', '{', '}', ':', '"', '\\':
			return true
		}
		if c == rune(d) || unicode.IsControl(c) {
			return true
		}
	}

	if strings.HasPrefix(s, "- ") {
		return true
	}
	if ctx == valueContext && s == "-" {
		return true
	}
	return false
}

// Escape backslash-escapes quotes, backslashes, newlines, carriage returns and tabs.
func Escape(s string) string {
	if !strings.ContainsAny(s, "\\\"\n\r\t") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	writeEscaped(&b, s)
	return b.String()
}

// Quote returns s escaped and wrapped in double quotes.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	writeEscaped(&b, s)
	b.WriteByte('"')
	return b.String()
}

func writeEscaped(b *strings.Builder, s string) {
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			b.WriteRune(c)
		}
	}
}

// Unescape reverses Escape. Unlike the decoder, which keeps unknown escapes such
// as \x verbatim, Unescape rejects anything but the five sequences Escape writes.
func Unescape(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			return "", newError(KindInvalidInput, "unterminated escape sequence")
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			return "", newError(KindInvalidInput, "invalid escape sequence \\%c", s[i])
		}
	}
	return b.String(), nil
}
