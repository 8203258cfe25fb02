package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/klauspost/readahead"
)

// byteOrderMark is stripped once from the beginning of every input.
const byteOrderMark = "\uFEFF"

// fragmentLength bounds the source excerpt attached to parse errors.
const fragmentLength = 48

// Position identifies a location in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// ParseReader reads r to the end and parses the result with [ParseValue].
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...ParseOption,
) (*Value, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrRead.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseValue(ctx, string(data), opts...)
}

// ParseValue parses a document that is either a map or a list.
// Blank input yields a Null value.
func ParseValue(ctx context.Context, text string, opts ...ParseOption) (*Value, error) {
	return parseDocument(ctx, text, KindNull, opts...)
}

// ParseMap parses a map:{...} document.
// Blank input yields an empty map.
func ParseMap(ctx context.Context, text string, opts ...ParseOption) (*Map, error) {
	v, err := parseDocument(ctx, text, KindMap, opts...)
	if err != nil {
		return nil, err
	}

	if v.IsNull() {
		return NewMap(), nil
	}

	return v.Map, nil
}

// ParseList parses a list:{...} document.
// Blank input yields an empty list.
func ParseList(ctx context.Context, text string, opts ...ParseOption) ([]*Value, error) {
	v, err := parseDocument(ctx, text, KindList, opts...)
	if err != nil {
		return nil, err
	}

	if v.IsNull() {
		return []*Value{}, nil
	}

	return v.List, nil
}

// ReadString returns text with a leading byte-order mark removed and every
// line whose first non-blank character is '#' dropped. With
// [WithSkipLineSeparator], line separators are removed as well.
func ReadString(text string, opts ...ParseOption) string {
	cfg := makeParseConfig(opts...)

	text = stripComments(strings.TrimPrefix(text, byteOrderMark))
	if cfg.skipLineSeparator {
		text = stripLineSeparators(text)
	}

	return text
}

// parseDocument parses a single top-level map or list.
// If want is not KindNull, the document must be of that kind.
func parseDocument(
	ctx context.Context,
	text string,
	want Kind,
	opts ...ParseOption,
) (*Value, error) {
	cfg := makeParseConfig(opts...)

	// Comment lines are blanked rather than removed so positions in errors
	// still match the source.
	text = blankComments(strings.TrimPrefix(text, byteOrderMark))
	if cfg.skipLineSeparator {
		text = stripLineSeparators(text)
	}

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(text)),
		slog.String("want", want.String()))

	s := &scanner{
		input: text,
		line:  1,
		col:   1,
		cfg:   cfg,
	}

	s.skipSpace()

	if s.eof() {
		return Null(), nil
	}

	var (
		v   *Value
		err error
	)

	switch {
	case s.hasPrefix(mapPrefix) && want != KindList:
		v, err = s.parseMap()

	case s.hasPrefix(listPrefix) && want != KindMap:
		v, err = s.parseList()

	default:
		expected := mapPrefix + " or " + listPrefix
		if want != KindNull {
			expected = map[Kind]string{KindMap: mapPrefix, KindList: listPrefix}[want]
		}

		return nil, s.errorf("unexpected document start", s.position()).
			With(slog.String("expected", expected))
	}

	if err != nil {
		return nil, err
	}

	s.skipSpace()

	if !s.eof() {
		return nil, s.errorf("unexpected text after document", s.position())
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.String("kind", v.Kind.String()))

	return v, nil
}

// scanner holds the cursor over one document.
// A scanner is created per call, so documents parse independently.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
	cfg   parseConfig
}

// parseMap parses: 'map:{' (';'* Entry)* ';'* '}'.
func (s *scanner) parseMap() (*Value, error) {
	start := s.position()
	s.advanceN(len(mapPrefix))

	m := NewMap()

	for {
		s.skipSeparators()

		if s.eof() {
			return nil, s.errorf("unterminated map", start)
		}

		if s.peek() == closeMark {
			s.advance()

			break
		}

		keyPos := s.position()

		key, err := s.scanKey()
		if err != nil {
			return nil, err
		}

		value, err := s.parseElement()
		if err != nil {
			return nil, err
		}

		if s.cfg.checkDuplicateEntry && m.Has(key) {
			return nil, ErrDuplicateEntry.With(
				slog.String("key", key),
				slog.Int("line", keyPos.Line),
				slog.Int("column", keyPos.Column),
			)
		}

		m.Set(key, value)

		if err := s.expectBoundary(start, "map"); err != nil {
			return nil, err
		}
	}

	return MapOf(m), nil
}

// parseList parses: 'list:{' (';'* Element)* ';'* '}'.
func (s *scanner) parseList() (*Value, error) {
	start := s.position()
	s.advanceN(len(listPrefix))

	list := make([]*Value, 0)

	for {
		s.skipSeparators()

		if s.eof() {
			return nil, s.errorf("unterminated list", start)
		}

		if s.peek() == closeMark {
			s.advance()

			break
		}

		elem, err := s.parseElement()
		if err != nil {
			return nil, err
		}

		list = append(list, elem)

		if err := s.expectBoundary(start, "list"); err != nil {
			return nil, err
		}
	}

	return List(list...), nil
}

// expectBoundary verifies that an entry is followed by ';', '}' or EOF.
// EOF is reported by the enclosing loop as an unterminated structure.
func (s *scanner) expectBoundary(start Position, kind string) error {
	s.skipSpace()

	if s.eof() {
		return nil
	}

	if c := s.peek(); c != delimMark && c != closeMark {
		return s.errorf("unexpected text in "+kind, s.position()).
			With(slog.Int("start_line", start.Line))
	}

	return nil
}

// scanKey scans an escaped key up to the next unescaped '=' and consumes it.
func (s *scanner) scanKey() (string, error) {
	start := s.position()

	for !s.eof() {
		switch s.peek() {
		case escapeMark:
			s.skipEscape()

			continue

		case equalMark:
			raw := strings.TrimSpace(s.input[start.Offset:s.pos])
			s.advance()

			if raw == "" {
				return "", s.errorf("empty key", start)
			}

			return Unescape(raw), nil

		case delimMark, closeMark:
			return "", s.errorf("missing '=' in entry", start)
		}

		s.advance()
	}

	return "", s.errorf("missing '=' in entry", start)
}

// parseElement parses a map entry value or a list element.
func (s *scanner) parseElement() (*Value, error) {
	s.skipSpace()

	switch {
	case s.hasPrefix(mapPrefix):
		return s.parseMap()

	case s.hasPrefix(listPrefix):
		return s.parseList()
	}

	raw := s.scanPlain()

	if raw == "" || raw == nullToken {
		return Null(), nil
	}

	return String(Unescape(raw)), nil
}

// scanPlain scans text up to the next unescaped ';' or '}' and returns it
// trimmed. Braces inside the text are literal. A leading quoted run is
// consumed whole when its closing quote exists, even across separators: the
// list elements `"a` and `b"` format as list:{ "a ; b" } and read back as one
// element.
func (s *scanner) scanPlain() string {
	start := s.pos

	if s.peek() == quoteMark {
		if end := strings.IndexByte(s.input[s.pos+1:], quoteMark); end >= 0 {
			s.advanceN(end + 2)
		}
	}

	for !s.eof() {
		switch s.peek() {
		case escapeMark:
			s.skipEscape()

			continue

		case delimMark, closeMark:
			return strings.TrimSpace(s.input[start:s.pos])
		}

		s.advance()
	}

	return strings.TrimSpace(s.input[start:s.pos])
}

// skipEscape consumes a backslash and the control character it escapes.
func (s *scanner) skipEscape() {
	s.advance()

	if !s.eof() && isControl(s.peek()) {
		s.advance()
	}
}

// skipSeparators skips whitespace and ';'.
func (s *scanner) skipSeparators() {
	for {
		s.skipSpace()

		if s.eof() || s.peek() != delimMark {
			return
		}

		s.advance()
	}
}

// skipSpace skips whitespace.
func (s *scanner) skipSpace() {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.advance()
	}
}

// Helper methods

func (s *scanner) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.input[s.pos:], prefix)
}

func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])

	return r
}

func (s *scanner) advance() {
	if s.eof() {
		return
	}

	r, size := utf8.DecodeRuneInString(s.input[s.pos:])

	s.pos += size
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
}

func (s *scanner) advanceN(n int) {
	for end := s.pos + n; s.pos < end && !s.eof(); {
		s.advance()
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) position() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.col,
	}
}

// fragment returns a bounded excerpt of the input starting at offset.
func (s *scanner) fragment(offset int) string {
	rest := s.input[offset:]
	if len(rest) <= fragmentLength {
		return rest
	}

	cut := fragmentLength
	for cut > 0 && !utf8.RuneStart(rest[cut]) {
		cut--
	}

	return rest[:cut] + "..."
}

// errorf returns an [ErrParse] describing a failure at pos.
func (s *scanner) errorf(reason string, pos Position) *Error {
	return ErrParse.With(
		slog.String("reason", reason),
		slog.String("fragment", s.fragment(pos.Offset)),
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)
}

// stripComments removes every line whose first non-blank character is '#'.
func stripComments(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}

	lines := strings.Split(s, "\n")
	kept := lines[:0]

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.Join(kept, "\n")
}

// blankComments empties every line whose first non-blank character is '#',
// keeping its line break.
func blankComments(s string) string {
	if !strings.Contains(s, "#") {
		return s
	}

	lines := strings.Split(s, "\n")

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			lines[i] = ""
		}
	}

	return strings.Join(lines, "\n")
}

// stripLineSeparators removes CR and LF characters.
func stripLineSeparators(s string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
}
