// Package lang implements the dfprop document format: a nested, escaped text
// notation for ordered maps, lists and strings.
//
// # Grammar
//
// Informal EBNF:
//
//	Document → Map | List
//	Map      → 'map:{' (';'* Entry)* ';'* '}'
//	List     → 'list:{' (';'* Element)* ';'* '}'
//	Entry    → Key '=' Element
//	Element  → Map | List | 'null' | Plain | ε
//	Plain    → <text up to an unescaped ';' or '}'>
//
// Whitespace between tokens is insignificant and trimmed from keys and plain
// values. A nested scope opens only where an element begins with "map:{" or
// "list:{"; any other brace is literal text. Lines whose first non-blank
// character is '#' are comments.
//
// # Escapes
//
// The control characters '\', '=', ';', '{' and '}' are written with a
// backslash prefix. Text enclosed in double quotes is passed through
// unchanged.
//
// # Example
//
//	map:{
//	    ; name = orders
//	    ; owner = null
//	    ; columns = list:{ id ; total ; note }
//	    ; options = map:{
//	        ; delimiter = \;
//	    }
//	}
//
// # Values
//
// Parsed documents are [Value] trees. Maps are [Ordered] and keep insertion
// order through parse, merge and serialization. By default a repeated key
// replaces the earlier value in place; [WithCheckDuplicateEntry] makes
// repetition within one map an [ErrDuplicateEntry].
//
// The projection functions ([AsStringMap], [AsListMap], [AsMapMap],
// [AsString], [AsList]) convert trees into typed containers and report
// mismatches as [ErrCast].
package lang
