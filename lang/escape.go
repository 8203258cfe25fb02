package lang

import "strings"

// Control characters of the grammar.
const (
	escapeMark = '\\'
	equalMark  = '='
	delimMark  = ';'
	openMark   = '{'
	closeMark  = '}'
	quoteMark  = '"'
)

// Document prefixes.
const (
	mapPrefix  = "map:{"
	listPrefix = "list:{"
	nullToken  = "null"
)

func isControl(r rune) bool {
	switch r {
	case escapeMark, equalMark, delimMark, openMark, closeMark:
		return true

	default:
		return false
	}
}

// IsQuoted reports whether s begins and ends with a double quote.
// Quoted text is opaque to [Escape] and [Unescape].
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == quoteMark && s[len(s)-1] == quoteMark
}

// Escape prefixes every control character in s with a backslash.
// Only a single escape level is supported.
func Escape(s string) string {
	if IsQuoted(s) || !strings.ContainsFunc(s, isControl) {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s) + 8)

	for _, r := range s {
		if isControl(r) {
			sb.WriteRune(escapeMark)
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Unescape reverses [Escape]. A backslash not followed by a control character
// is kept verbatim.
func Unescape(s string) string {
	if IsQuoted(s) || !strings.ContainsRune(s, escapeMark) {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	escaped := false

	for _, r := range s {
		if escaped {
			if !isControl(r) {
				sb.WriteRune(escapeMark)
			}

			sb.WriteRune(r)

			escaped = false

			continue
		}

		if r == escapeMark {
			escaped = true

			continue
		}

		sb.WriteRune(r)
	}

	if escaped {
		sb.WriteRune(escapeMark)
	}

	return sb.String()
}
