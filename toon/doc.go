// Package toon implements TOON, a compact, whitespace-meaningful text
// encoding for JSON-like value trees, designed to minimize token count
// when the output is consumed by language models.
//
// TOON is designed to be:
//   - Token-cheap (no braces/brackets around objects, bare strings,
//     tabular rendering of uniform arrays)
//   - Unambiguously re-parseable (the grammar below is the contract
//     any companion decoder must target)
//   - Deterministic (object insertion order drives output order)
//
// # Data Model
//
// Scalars: null, bool, int, float, str
// Containers: list, map (ordered key-value entries)
//
// # Grammar
//
// A document is one of: object block | array block | primitive token.
// Lines are joined by a single newline; no trailing newline.
//
// Object block (one entry per line, indented by level):
//
//	key: scalar
//	key:
//	  nested: 1
//	tags[3]: alpha,beta,gamma
//	users[2]{id,name,role}:
//	  1,Alice,admin
//	  2,Bob,user
//	items[3]:
//	  - 1
//	  - a: 2
//	  - 3
//
// Array rendering depends on shape:
//   - uniform-primitive: key[N]: cell,cell,... (one line)
//   - uniform-object ("tabular"): key[N]{f1,f2}: header, then one
//     delimiter-joined row per element at one extra indent level
//   - mixed/nested: key[N]: header, then one dash item per element;
//     primitives render inline after the dash, containers recurse two
//     indent levels below the header with their first line spliced
//     onto the dash line
//
// An empty array is never tabular; it renders as key[0]: with no
// cells.
//
// # Strings
//
// Strings are bare when they are non-empty, have no leading/trailing
// space, and contain none of: the delimiter, ':', newline, carriage
// return, '"', '\'. Otherwise they are escaped and double-quoted.
// Keys quote more aggressively than values: a key is bare only when it
// looks like an identifier (dots allowed for folded keys) and is
// quoted otherwise, even when it contains no special characters.
//
// # Key Folding
//
// With Options.KeyFolding, chains of single-key objects collapse into
// one dotted key: {"a":{"b":{"c":1}}} renders as "a.b.c: 1". Folding
// applies at every nesting level and is idempotent.
//
// # Failure and Fallback
//
// Values that cannot be rendered (NaN and infinite floats, malformed
// nodes) abort the encode. Options.Fallback selects the recovery:
// FallbackJSON re-renders the tree as plain JSON, FallbackCompact
// produces a single-line k:v flattening that never fails, and
// FallbackNone (default) returns the error.
//
// Package toon does not decode its own output.
package toon
