package toon

import "fmt"

// ErrorKind classifies the errors returned by the codec.
type ErrorKind int

const (
	// KindInvalidInput reports malformed input or options that fit no other kind.
	KindInvalidInput ErrorKind = iota + 1

	// KindParse reports a structural expectation that was not met while decoding.
	// Line and Column locate the offending token.
	KindParse

	// KindInvalidCharacter reports a character that may not appear at its position.
	KindInvalidCharacter

	// KindUnexpectedEOF reports input that ended inside a quoted string or a header.
	KindUnexpectedEOF

	// KindTypeMismatch reports a root value of the wrong kind for EncodeObject or
	// EncodeArray.
	KindTypeMismatch

	// KindInvalidDelimiter reports an unknown delimiter, or an array header whose
	// delimiter disagrees with the one in force for the document.
	KindInvalidDelimiter

	// KindLengthMismatch reports a declared array length that differs from the number
	// of elements present. Only raised in strict mode.
	KindLengthMismatch

	// KindInvalidStructure reports nesting beyond MaxDepth or an empty field name.
	KindInvalidStructure

	// KindSerialization wraps failures converting Go values into the value model.
	KindSerialization

	// KindDeserialization wraps failures converting the value model into Go values.
	KindDeserialization
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindParse:
		return "parse error"
	case KindInvalidCharacter:
		return "invalid character"
	case KindUnexpectedEOF:
		return "unexpected end of input"
	case KindTypeMismatch:
		return "type mismatch"
	case KindInvalidDelimiter:
		return "invalid delimiter"
	case KindLengthMismatch:
		return "array length mismatch"
	case KindInvalidStructure:
		return "invalid structure"
	case KindSerialization:
		return "serialization error"
	case KindDeserialization:
		return "deserialization error"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Error is the error type returned by every operation in this package.
//
// Use errors.Is with the Err* sentinels to test the kind, or errors.As to reach
// the position and message:
//
//	var terr *toon.Error
//	if errors.As(err, &terr) && terr.Kind == toon.KindParse {
//	    fmt.Println(terr.Line, terr.Column)
//	}
type Error struct {
	Kind    ErrorKind
	Line    int // 1-based; 0 when the error has no position
	Column  int // 1-based, counted in characters
	Message string
	Err     error
}

func (e *Error) Error() string {
	var msg string
	if e.Line > 0 {
		msg = fmt.Sprintf("toon: %s at line %d, column %d", e.Kind, e.Line, e.Column)
	} else {
		msg = "toon: " + e.Kind.String()
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, which makes the sentinels below usable
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrParse            = &Error{Kind: KindParse}
	ErrInvalidCharacter = &Error{Kind: KindInvalidCharacter}
	ErrUnexpectedEOF    = &Error{Kind: KindUnexpectedEOF}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch}
	ErrInvalidDelimiter = &Error{Kind: KindInvalidDelimiter}
	ErrLengthMismatch   = &Error{Kind: KindLengthMismatch}
	ErrInvalidStructure = &Error{Kind: KindInvalidStructure}
	ErrSerialization    = &Error{Kind: KindSerialization}
	ErrDeserialization  = &Error{Kind: KindDeserialization}
)

func newError(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newParseError(line, column int, format string, args ...interface{}) error {
	return &Error{Kind: KindParse, Line: line, Column: column, Message: fmt.Sprintf(format, args...)}
}

func newInvalidCharError(ch rune, line, column int) error {
	return &Error{Kind: KindInvalidCharacter, Line: line, Column: column, Message: fmt.Sprintf("%q", ch)}
}

func newLengthMismatch(line, column, expected, found int) error {
	return &Error{
		Kind:    KindLengthMismatch,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf("expected %d, found %d", expected, found),
	}
}

func newTypeMismatch(expected, found Kind) error {
	return &Error{Kind: KindTypeMismatch, Message: fmt.Sprintf("expected %s, found %s", expected, found)}
}

func wrapError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}
