package toon

// parser is a recursive-descent reader over the scanner's tokens. It keeps a
// single token of lookahead, so the scanner's cursor always sits just past tok.
type parser struct {
	sc     *scanner
	tok    token
	input  string
	strict bool
	coerce bool
	delim  Delimiter // zero until the first array header resolves it
}

func newParser(input string, opts DecodeOptions) *parser {
	return &parser{
		sc:     newScanner(input, opts.Delimiter),
		input:  input,
		strict: opts.Strict,
		coerce: opts.CoerceTypes,
		delim:  opts.Delimiter,
	}
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) skipNewlines() error {
	for p.tok.kind == tokenNewline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) atLineEnd() bool {
	return p.tok.kind == tokenNewline || p.tok.kind == tokenEOF
}

// endLine requires the current line to be finished and moves to the first token
// of the next non-blank line.
func (p *parser) endLine() error {
	if !p.atLineEnd() {
		return p.unexpected("end of line")
	}
	return p.skipNewlines()
}

func (p *parser) errorAt(tok token, format string, args ...interface{}) error {
	return newParseError(tok.line, p.sc.column(tok.start), format, args...)
}

func (p *parser) unexpected(expected string) error {
	return p.errorAt(p.tok, "expected %s, found %s", expected, p.describe(p.tok))
}

func (p *parser) describe(tok token) string {
	if !tok.scalar() {
		return tok.kind.String()
	}
	raw := p.input[tok.start:tok.end]
	if len(raw) > 32 {
		raw = raw[:32] + "..."
	}
	if tok.quoted {
		return tok.kind.String() + " " + raw
	}
	return tok.kind.String() + " \"" + raw + "\""
}

// checkIndent handles a line whose first token is deeper than the level in force.
// Strict mode rejects it; lenient mode lets the caller treat it as a sibling.
func (p *parser) checkIndent(expected int) error {
	if p.tok.col != expected && p.strict {
		return p.errorAt(p.tok, "inconsistent indentation: expected %d spaces, found %d", expected, p.tok.col)
	}
	return nil
}

func (p *parser) parse() (Value, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	var (
		v   Value
		err error
	)
	switch {
	case p.tok.kind == tokenEOF:
		return Object{}, nil
	case p.tok.kind == tokenLeftBracket:
		v, err = p.parseArray(p.tok.col, 1)
	case p.tok.scalar():
		v, err = p.parseRoot()
	default:
		return nil, p.unexpected("value")
	}
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokenEOF {
		return nil, p.unexpected("end of input")
	}
	return v, nil
}

// parseRoot decides between a root object and a root scalar by looking at how the
// first run of tokens ends.
func (p *parser) parseRoot() (Value, error) {
	col := p.tok.col
	r, err := p.readRun(stopKey)
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenColon || p.tok.kind == tokenLeftBracket {
		key := p.runText(r)
		return p.parseObject(col, 1, &key)
	}

	v := p.runValue(r)
	if err := p.endLine(); err != nil {
		return nil, err
	}
	return v, nil
}

// parseObject reads the entries of one object. Entries start at column indent; a
// shallower line ends the object. When firstKey is set, the key of the first
// entry has already been consumed and the current token follows it.
func (p *parser) parseObject(indent, depth int, firstKey *string) (Object, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}

	obj := Object{}
	if firstKey != nil {
		if err := p.parseEntryValue(&obj, *firstKey, indent, depth); err != nil {
			return nil, err
		}
	}

	for p.tok.kind != tokenEOF && p.tok.col >= indent {
		if err := p.checkIndent(indent); err != nil {
			return nil, err
		}
		if !p.tok.scalar() {
			return nil, p.unexpected("key")
		}

		r, err := p.readRun(stopKey)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenColon && p.tok.kind != tokenLeftBracket {
			return nil, p.unexpected("':' or '[' after key")
		}
		if err := p.parseEntryValue(&obj, p.runText(r), indent, depth); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// parseEntryValue reads what follows a key: an array header, a scalar on the same
// line, or a nested object on the following, deeper lines.
func (p *parser) parseEntryValue(obj *Object, key string, indent, depth int) error {
	if p.tok.kind == tokenLeftBracket {
		arr, err := p.parseArray(indent, depth+1)
		if err != nil {
			return err
		}
		obj.Set(key, arr)
		return nil
	}

	if p.tok.kind != tokenColon {
		return p.unexpected("':'")
	}
	if err := p.advance(); err != nil {
		return err
	}

	if p.atLineEnd() {
		if err := p.skipNewlines(); err != nil {
			return err
		}
		if p.tok.kind == tokenEOF || p.tok.col <= indent {
			if err := validateDepth(depth + 1); err != nil {
				return err
			}
			obj.Set(key, Object{})
			return nil
		}
		nested, err := p.parseObject(p.tok.col, depth+1, nil)
		if err != nil {
			return err
		}
		obj.Set(key, nested)
		return nil
	}

	if !p.tok.scalar() {
		return p.unexpected("value")
	}
	r, err := p.readRun(stopLine)
	if err != nil {
		return err
	}
	obj.Set(key, p.runValue(r))
	return p.endLine()
}

// parseArray reads an array starting at '['. headerIndent is the column of the
// line or list item that owns the header; body lines must be deeper.
func (p *parser) parseArray(headerIndent, depth int) (Array, error) {
	if err := validateDepth(depth); err != nil {
		return nil, err
	}
	open := p.tok

	h, err := p.sc.scanHeader()
	if err != nil {
		return nil, err
	}
	if err := p.resolveDelimiter(h); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var fields []string
	if p.tok.kind == tokenLeftBrace {
		if fields, err = p.parseFields(); err != nil {
			return nil, err
		}
	}

	if p.tok.kind != tokenColon {
		return nil, p.unexpected("':' after array header")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if h.length == 0 && fields == nil {
		if err := p.endLine(); err != nil {
			return nil, err
		}
		return Array{}, nil
	}

	if fields != nil {
		if !p.atLineEnd() {
			return nil, p.unexpected("newline after tabular header")
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		return p.parseTabular(open, h.length, fields, headerIndent)
	}

	if p.atLineEnd() {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		return p.parseList(open, h.length, headerIndent, depth)
	}

	arr, err := p.parseCells()
	if err != nil {
		return nil, err
	}
	if err := p.checkLength(open, h.length, len(arr)); err != nil {
		return nil, err
	}
	if err := p.endLine(); err != nil {
		return nil, err
	}
	return arr, nil
}

// resolveDelimiter fixes the document delimiter from the first header and checks
// later headers against it.
func (p *parser) resolveDelimiter(h arrayHeader) error {
	switch {
	case p.delim == 0 && h.hasDelim:
		p.delim = h.delim
	case p.delim == 0:
		p.delim = DefaultDelimiter
	case h.hasDelim && h.delim != p.delim:
		return &Error{
			Kind:    KindInvalidDelimiter,
			Line:    h.line,
			Column:  h.col,
			Message: "array header declares " + h.delim.String() + " but the document uses " + p.delim.String(),
		}
	}
	p.sc.setDelimiter(p.delim)
	return nil
}

func (p *parser) checkLength(open token, expected, found int) error {
	if p.strict && expected != found {
		return newLengthMismatch(open.line, p.sc.column(open.start), expected, found)
	}
	return nil
}

// parseFields reads a tabular field list {a,b,c}.
func (p *parser) parseFields() ([]string, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}

	fields := []string{}
	for {
		if p.tok.kind == tokenRightBrace && len(fields) == 0 {
			break
		}
		if !p.tok.scalar() {
			return nil, p.unexpected("field name")
		}
		r, err := p.readRun(stopField)
		if err != nil {
			return nil, err
		}
		name := p.runText(r)
		if p.strict {
			if err := validateFieldName(name); err != nil {
				return nil, err
			}
		}
		fields = append(fields, name)

		if p.tok.kind == tokenRightBrace {
			break
		}
		if p.tok.kind != tokenDelimiter {
			return nil, p.unexpected("delimiter or '}' in field list")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return fields, p.advance()
}

// parseCells reads delimiter-separated primitives up to the end of the line.
func (p *parser) parseCells() (Array, error) {
	arr := Array{}
	for {
		if !p.tok.scalar() {
			return nil, p.unexpected("value")
		}
		r, err := p.readRun(stopCell)
		if err != nil {
			return nil, err
		}
		arr = append(arr, p.runValue(r))

		if p.atLineEnd() {
			return arr, nil
		}
		if p.tok.kind != tokenDelimiter {
			return nil, p.unexpected("delimiter")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseTabular reads one row per line below the header, each row holding exactly
// one cell per field.
func (p *parser) parseTabular(open token, length int, fields []string, headerIndent int) (Array, error) {
	rows := make(Array, 0, capacityHint(length))
	rowIndent := -1

	for p.tok.kind != tokenEOF && p.tok.col > headerIndent {
		if rowIndent < 0 {
			rowIndent = p.tok.col
		}
		if err := p.checkIndent(rowIndent); err != nil {
			return nil, err
		}

		start := p.tok
		cells, err := p.parseCells()
		if err != nil {
			return nil, err
		}
		if len(cells) != len(fields) {
			return nil, p.errorAt(start, "row has %d values, expected %d fields", len(cells), len(fields))
		}

		row := make(Object, len(fields))
		for i, field := range fields {
			row[i] = Member{Key: field, Value: cells[i]}
		}
		rows = append(rows, row)

		if err := p.endLine(); err != nil {
			return nil, err
		}
	}

	if err := p.checkLength(open, length, len(rows)); err != nil {
		return nil, err
	}
	return rows, nil
}

// parseList reads "- " items below the header.
func (p *parser) parseList(open token, length, headerIndent, depth int) (Array, error) {
	items := make(Array, 0, capacityHint(length))
	itemIndent := -1

	for p.tok.kind == tokenDash && p.tok.col > headerIndent {
		if itemIndent < 0 {
			itemIndent = p.tok.col
		}
		if err := p.checkIndent(itemIndent); err != nil {
			return nil, err
		}

		item, err := p.parseListItem(depth)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := p.checkLength(open, length, len(items)); err != nil {
		return nil, err
	}
	return items, nil
}

// parseListItem reads one item starting at its dash. The item is an empty object,
// an array, an object whose first key sits on the dash line, or a primitive.
func (p *parser) parseListItem(depth int) (Value, error) {
	dashCol := p.tok.col
	if err := p.advance(); err != nil {
		return nil, err
	}

	switch {
	case p.atLineEnd():
		if err := validateDepth(depth + 1); err != nil {
			return nil, err
		}
		return Object{}, p.skipNewlines()
	case p.tok.kind == tokenLeftBracket:
		return p.parseArray(dashCol, depth+1)
	case !p.tok.scalar():
		return nil, p.unexpected("list item")
	}

	col := p.tok.col
	r, err := p.readRun(stopKey)
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenColon || p.tok.kind == tokenLeftBracket {
		key := p.runText(r)
		return p.parseObject(col, depth+1, &key)
	}

	v := p.runValue(r)
	return v, p.endLine()
}

func capacityHint(n int) int {
	if n > 1024 {
		return 1024
	}
	return n
}

type runStop int

const (
	stopLine  runStop = iota // field values: the rest of the line
	stopKey                  // keys: ':' or '['
	stopCell                 // inline and tabular cells: the delimiter
	stopField                // tabular field names: the delimiter or '}'
)

func (s runStop) stops(k tokenKind) bool {
	switch s {
	case stopKey:
		return k == tokenColon || k == tokenLeftBracket
	case stopCell:
		return k == tokenDelimiter
	case stopField:
		return k == tokenDelimiter || k == tokenRightBrace
	}
	return false
}

// run is a sequence of adjacent tokens on one line read as a single key or
// scalar. Bare words separated by spaces form one string whose text is taken
// verbatim from the input, so "hello  world" keeps both spaces.
type run struct {
	first      token
	count      int
	start, end int
}

func (p *parser) readRun(stop runStop) (run, error) {
	r := run{first: p.tok, count: 1, start: p.tok.start, end: p.tok.end}
	if err := p.advance(); err != nil {
		return r, err
	}

	for !p.atLineEnd() && !stop.stops(p.tok.kind) {
		if r.first.quoted {
			return r, p.errorAt(p.tok, "unexpected %s after quoted string", p.describe(p.tok))
		}
		r.count++
		r.end = p.tok.end
		if err := p.advance(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// runText is the run read as a key: the string itself, or the source text.
func (p *parser) runText(r run) string {
	if r.count == 1 && r.first.kind == tokenString {
		return r.first.str
	}
	return p.input[r.start:r.end]
}

// runValue is the run read as a scalar. Single number, boolean and null tokens
// keep their type either way; with coercion off an integer numeral too wide for
// int64 keeps its digits as a string instead of rounding to a float.
func (p *parser) runValue(r run) Value {
	if r.count > 1 {
		return String(p.input[r.start:r.end])
	}

	tok := r.first
	if tok.kind == tokenString {
		return String(tok.str)
	}
	switch tok.kind {
	case tokenInteger:
		return Int(tok.i)
	case tokenNumber:
		if tok.wide && !p.coerce {
			return String(p.input[tok.start:tok.end])
		}
		return Float(tok.f)
	case tokenBool:
		return Bool(tok.b)
	default:
		return Null{}
	}
}
