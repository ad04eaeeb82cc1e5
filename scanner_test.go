package toon

import (
	"errors"
	"testing"
)

func scanAll(t *testing.T, input string, d Delimiter) []token {
	t.Helper()
	s := newScanner(input, d)
	var toks []token
	for {
		tok, err := s.next()
		if err != nil {
			t.Fatalf("scan %q: %v", input, err)
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks
		}
	}
}

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.kind
	}
	return out
}

func TestScannerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim Delimiter
		want  []tokenKind
	}{
		{"key value", "a: 1", 0, []tokenKind{tokenString, tokenColon, tokenInteger, tokenEOF}},
		{"structural", "[]{}:", 0, []tokenKind{tokenLeftBracket, tokenRightBracket, tokenLeftBrace, tokenRightBrace, tokenColon, tokenEOF}},
		{"dash before space", "- x", 0, []tokenKind{tokenDash, tokenString, tokenEOF}},
		{"dash at end", "-", 0, []tokenKind{tokenDash, tokenEOF}},
		{"negative number", "-5", 0, []tokenKind{tokenInteger, tokenEOF}},
		{"dash word", "-x", 0, []tokenKind{tokenString, tokenEOF}},
		{"literals", "true false null", 0, []tokenKind{tokenBool, tokenBool, tokenNull, tokenEOF}},
		{"float", "2.5", 0, []tokenKind{tokenNumber, tokenEOF}},
		{"comma active", "a,b", Comma, []tokenKind{tokenString, tokenDelimiter, tokenString, tokenEOF}},
		{"comma inactive", "a,b", Pipe, []tokenKind{tokenString, tokenEOF}},
		{"crlf", "a\r\nb", 0, []tokenKind{tokenString, tokenNewline, tokenString, tokenEOF}},
		{"lone cr is text", "a\rb", 0, []tokenKind{tokenString, tokenEOF}},
		{"quoted", `"x y"`, 0, []tokenKind{tokenString, tokenEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(scanAll(t, tt.input, tt.delim))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  tokenKind
	}{
		{"0", tokenInteger},
		{"-0", tokenInteger},
		{"007", tokenString},
		{"-01", tokenString},
		{"1e5", tokenNumber},
		{"1.5e-3", tokenNumber},
		{"1.2.3", tokenString},
		{"42abc", tokenString},
		{"99999999999999999999", tokenNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := scanAll(t, tt.input, 0)
			if toks[0].kind != tt.kind {
				t.Errorf("kind = %v, want %v", toks[0].kind, tt.kind)
			}
			if toks[0].kind == tokenString && toks[0].str != tt.input {
				t.Errorf("str = %q, want %q", toks[0].str, tt.input)
			}
		})
	}
}

func TestScannerQuoted(t *testing.T) {
	toks := scanAll(t, `"a\"b\\c\nd"`, 0)
	if !toks[0].quoted || toks[0].str != "a\"b\\c\nd" {
		t.Errorf("got %q quoted=%v", toks[0].str, toks[0].quoted)
	}

	s := newScanner(`"open`, 0)
	if _, err := s.next(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("expected unexpected EOF, got %v", err)
	}
}

func TestScannerPositions(t *testing.T) {
	toks := scanAll(t, "a: 1\n  b: 2", 0)
	b := toks[4]
	if b.kind != tokenString || b.str != "b" {
		t.Fatalf("unexpected token %v %q", b.kind, b.str)
	}
	if b.line != 2 || b.col != 2 {
		t.Errorf("line %d col %d, want line 2 col 2", b.line, b.col)
	}

	s := newScanner("x\n   é: 1", 0)
	for i := 0; i < 3; i++ {
		if _, err := s.next(); err != nil {
			t.Fatal(err)
		}
	}
	if s.lineIndent() != 3 {
		t.Errorf("lineIndent = %d, want 3", s.lineIndent())
	}
	if line, col := s.position(); line != 2 || col != 5 {
		t.Errorf("position = %d:%d, want 2:5", line, col)
	}
}

func TestScanHeader(t *testing.T) {
	tests := []struct {
		input    string
		length   int
		marker   rune
		delim    Delimiter
		hasDelim bool
	}{
		{"3]", 3, 0, 0, false},
		{"#3]", 3, '#', 0, false},
		{"3|]", 3, 0, Pipe, true},
		{"12\t]", 12, 0, Tab, true},
		{"#0,]", 0, '#', Comma, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := newScanner(tt.input, 0)
			h, err := s.scanHeader()
			if err != nil {
				t.Fatalf("scanHeader failed: %v", err)
			}
			if h.length != tt.length || h.marker != tt.marker || h.delim != tt.delim || h.hasDelim != tt.hasDelim {
				t.Errorf("got %+v", h)
			}
		})
	}

	for _, bad := range []string{"]", "#]", "3", "3x]", "a"} {
		t.Run("bad "+bad, func(t *testing.T) {
			s := newScanner(bad, 0)
			if _, err := s.scanHeader(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
