package toon

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNewline
	tokenLeftBracket
	tokenRightBracket
	tokenLeftBrace
	tokenRightBrace
	tokenColon
	tokenDash
	tokenDelimiter
	tokenString
	tokenInteger
	tokenNumber
	tokenBool
	tokenNull
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "newline"
	case tokenLeftBracket:
		return "'['"
	case tokenRightBracket:
		return "']'"
	case tokenLeftBrace:
		return "'{'"
	case tokenRightBrace:
		return "'}'"
	case tokenColon:
		return "':'"
	case tokenDash:
		return "'-'"
	case tokenDelimiter:
		return "delimiter"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenNumber:
		return "number"
	case tokenBool:
		return "boolean"
	case tokenNull:
		return "null"
	default:
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
}

// token is one lexical unit. Only the payload field matching kind is set.
type token struct {
	kind   tokenKind
	str    string // unescaped text of a quoted string, raw text otherwise
	quoted bool
	i      int64
	f      float64
	b      bool
	wide   bool // integer numeral that only fits a float
	delim  Delimiter

	start, end int // byte span in the input
	line       int // 1-based line of start
	col        int // byte offset of start from the beginning of its line
}

// scalar reports whether the token can begin a key or a value.
func (t token) scalar() bool {
	switch t.kind {
	case tokenString, tokenInteger, tokenNumber, tokenBool, tokenNull:
		return true
	}
	return false
}

// arrayHeader is the content of an array header between '[' and ']'.
type arrayHeader struct {
	marker    rune
	length    int
	delim     Delimiter
	hasDelim  bool
	line, col int
}

// scanner produces tokens on demand. Its delimiter decides whether ',', '|' and
// tab are separators or ordinary text; it changes once per document when the
// parser resolves the delimiter.
type scanner struct {
	input     string
	pos       int
	line      int
	lineStart int
	delim     Delimiter
	indent    int // leading spaces of the current line
}

func newScanner(input string, d Delimiter) *scanner {
	s := &scanner{input: input, line: 1, delim: d}
	s.indent = s.countIndent()
	return s
}

func (s *scanner) setDelimiter(d Delimiter) {
	s.delim = d
}

// position returns the 1-based line and character column of the cursor.
func (s *scanner) position() (int, int) {
	return s.line, s.column(s.pos)
}

// lineIndent returns the number of leading spaces on the current line.
func (s *scanner) lineIndent() int {
	return s.indent
}

func (s *scanner) column(offset int) int {
	start := s.lineStart
	if offset < start {
		start = strings.LastIndexByte(s.input[:offset], '\n') + 1
	}
	return utf8.RuneCountInString(s.input[start:offset]) + 1
}

func (s *scanner) countIndent() int {
	n := 0
	for s.pos+n < len(s.input) && s.input[s.pos+n] == ' ' {
		n++
	}
	return n
}

func (s *scanner) peekByte(offset int) (byte, bool) {
	if s.pos+offset < len(s.input) {
		return s.input[s.pos+offset], true
	}
	return 0, false
}

func (s *scanner) isActiveDelimiter(c byte) bool {
	return s.delim != 0 && c == byte(s.delim)
}

// terminates reports whether c ends an unquoted run.
func (s *scanner) terminates(c byte) bool {
	switch c {
	case ' ', '\n', '[', ']', '{', '}', ':':
		return true
	case '\r':
		next, ok := s.peekByte(1)
		return ok && next == '\n'
	}
	return s.isActiveDelimiter(c)
}

func (s *scanner) skipSpaces() {
	for s.pos < len(s.input) && s.input[s.pos] == ' ' {
		s.pos++
	}
}

func (s *scanner) newline(width int) {
	s.pos += width
	s.line++
	s.lineStart = s.pos
	s.indent = s.countIndent()
}

func (s *scanner) next() (token, error) {
	s.skipSpaces()

	tok := token{start: s.pos, line: s.line, col: s.pos - s.lineStart}
	if s.pos >= len(s.input) {
		tok.kind = tokenEOF
		tok.end = s.pos
		return tok, nil
	}

	c := s.input[s.pos]
	switch c {
	case '\n':
		s.newline(1)
		tok.kind = tokenNewline
		tok.end = s.pos
		return tok, nil
	case '\r':
		if next, ok := s.peekByte(1); ok && next == '\n' {
			s.newline(2)
			tok.kind = tokenNewline
			tok.end = s.pos
			return tok, nil
		}
		return s.scanUnquoted(tok)
	case '[':
		return s.single(tok, tokenLeftBracket), nil
	case ']':
		return s.single(tok, tokenRightBracket), nil
	case '{':
		return s.single(tok, tokenLeftBrace), nil
	case '}':
		return s.single(tok, tokenRightBrace), nil
	case ':':
		return s.single(tok, tokenColon), nil
	case '"':
		return s.scanQuoted(tok)
	case '-':
		next, ok := s.peekByte(1)
		switch {
		case !ok || next == ' ' || next == '\n' || next == '\r':
			return s.single(tok, tokenDash), nil
		case isDigit(next):
			return s.scanNumber(tok)
		}
		return s.scanUnquoted(tok)
	}

	if s.isActiveDelimiter(c) {
		tok = s.single(tok, tokenDelimiter)
		tok.delim = s.delim
		return tok, nil
	}
	if isDigit(c) {
		return s.scanNumber(tok)
	}
	return s.scanUnquoted(tok)
}

func (s *scanner) single(tok token, kind tokenKind) token {
	s.pos++
	tok.kind = kind
	tok.end = s.pos
	return tok
}

// scanQuoted reads a quoted string. \n \r \t \" and \\ are decoded; any other
// escape is kept as the two characters it was written with.
func (s *scanner) scanQuoted(tok token) (token, error) {
	s.pos++ // opening quote

	var b strings.Builder
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch c {
		case '"':
			s.pos++
			tok.kind = tokenString
			tok.str = b.String()
			tok.quoted = true
			tok.end = s.pos
			return tok, nil
		case '\\':
			if s.pos+1 >= len(s.input) {
				s.pos++
				continue
			}
			switch e := s.input[s.pos+1]; e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
			s.pos += 2
		case '\n':
			b.WriteByte(c)
			s.pos++
			s.line++
			s.lineStart = s.pos
		default:
			b.WriteByte(c)
			s.pos++
		}
	}

	line, col := tok.line, s.column(tok.start)
	return token{}, &Error{Kind: KindUnexpectedEOF, Line: line, Column: col, Message: "unterminated quoted string"}
}

// scanUnquoted reads up to the next space, structural character, newline or
// active delimiter.
func (s *scanner) scanUnquoted(tok token) (token, error) {
	for s.pos < len(s.input) && !s.terminates(s.input[s.pos]) {
		s.pos++
	}
	return s.classifyUnquoted(tok), nil
}

func (s *scanner) classifyUnquoted(tok token) token {
	tok.end = s.pos
	text := s.input[tok.start:tok.end]
	switch text {
	case "null":
		tok.kind = tokenNull
	case "true":
		tok.kind = tokenBool
		tok.b = true
	case "false":
		tok.kind = tokenBool
	default:
		tok.kind = tokenString
		tok.str = text
	}
	return tok
}

// scanNumber consumes digits, '.', exponent markers and signs. A run that is not a
// well formed number is a string. So is a numeral with a redundant leading zero
// such as 007: the encoder writes those bare, and they must scan back as the same
// string.
func (s *scanner) scanNumber(tok token) (token, error) {
	if s.input[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.input) && isNumberByte(s.input[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.input) && !s.terminates(s.input[s.pos]) {
		return s.scanUnquoted(tok)
	}

	tok.end = s.pos
	text := s.input[tok.start:tok.end]
	tok.kind = tokenString
	tok.str = text
	if leadingZeroRegex.MatchString(text) {
		return tok, nil
	}

	if strings.ContainsAny(text, ".eE") {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			tok.kind = tokenNumber
			tok.f = f
		}
		return tok, nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		tok.kind = tokenInteger
		tok.i = i
		return tok, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		tok.kind = tokenNumber
		tok.f = f
		tok.wide = true
	}
	return tok, nil
}

// scanHeader reads the body of an array header after '[' up to and including
// ']': an optional length marker, the length and an optional delimiter.
func (s *scanner) scanHeader() (arrayHeader, error) {
	h := arrayHeader{line: s.line, col: s.column(s.pos)}

	if s.pos >= len(s.input) {
		return h, &Error{Kind: KindUnexpectedEOF, Line: h.line, Column: h.col, Message: "inside array header"}
	}
	if c := s.input[s.pos]; !isDigit(c) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		if c == ']' || c == '\n' || c == ' ' || c == '\r' {
			return h, newParseError(h.line, h.col, "expected array length")
		}
		if _, isDelim := delimiterOf(c); isDelim || r < 0x20 {
			return h, newInvalidCharError(r, h.line, h.col)
		}
		h.marker = r
		s.pos += size
	}

	digits := s.pos
	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if digits == s.pos {
		line, col := s.position()
		return h, newParseError(line, col, "expected array length")
	}
	n, err := strconv.Atoi(s.input[digits:s.pos])
	if err != nil {
		return h, newParseError(h.line, h.col, "invalid array length %q", s.input[digits:s.pos])
	}
	h.length = n

	if s.pos < len(s.input) {
		if d, ok := delimiterOf(s.input[s.pos]); ok {
			h.delim = d
			h.hasDelim = true
			s.pos++
		}
	}

	if s.pos >= len(s.input) {
		line, col := s.position()
		return h, &Error{Kind: KindUnexpectedEOF, Line: line, Column: col, Message: "expected ']'"}
	}
	if s.input[s.pos] != ']' {
		line, col := s.position()
		r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
		return h, newParseError(line, col, "expected ']', found %q", r)
	}
	s.pos++
	return h, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}
