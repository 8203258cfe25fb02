package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/expr-lang/expr/builtin"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dfprop/cli/cmd/exprenv"
)

// ctrlPrefix introduces a control command.
const ctrlPrefix = ":"

// ctrlCommands are the available control commands.
var ctrlCommands = []string{"clear", "help", "keys", "quit", "reload"}

// isWordBoundary reports whether r delimits a completion word. Hyphens are
// not boundaries because document keys may contain them.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t',
		'(', ')', '[', ']',
		'+', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', ',', '?', ':', ';':
		return true
	}

	return false
}

// wordBounds returns the word around cursor and its byte offsets in input.
// The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// parentPath returns the member-access chain leading up to the word that
// starts at wordStart. For "x + db.conn.ho" with word "ho" it is "db.conn".
func parentPath(input string, wordStart int) string {
	prefix := input[:wordStart]
	if !strings.HasSuffix(prefix, ".") {
		return ""
	}

	prefix = strings.TrimRight(prefix, ".")

	pos := len(prefix)
	for pos > 0 {
		r, size := utf8.DecodeLastRuneInString(prefix[:pos])
		if r != '.' && isWordBoundary(r) {
			break
		}

		pos -= size
	}

	return strings.TrimSpace(prefix[pos:])
}

// candidates returns the names that may complete a word under parent.
func candidates(env map[string]any, parent string) []string {
	names := exprenv.Lookup(env, parent)

	if parent == "" {
		for name := range builtin.Index {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}

		slices.Sort(names)
	}

	return names
}

// complete ranks the candidates matching word, best first. An empty word
// matches every candidate in order; a word that already equals its only
// match yields nothing.
func complete(word string, names []string) fuzzy.Matches {
	if word == "" {
		matches := make(fuzzy.Matches, len(names))
		for i, c := range names {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches
	}

	matches := fuzzy.Find(word, names)
	if len(matches) == 1 && matches[0].Str == word {
		return nil
	}

	return matches
}
