package toon

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ============================================================
// Scalar Formatting
// ============================================================

// formatScalar returns the canonical text of a scalar value.
// Containers and malformed nodes produce an EncodeError.
func formatScalar(v *Value, delim string) (string, error) {
	if v == nil {
		return "null", nil
	}

	switch v.kind {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil
	case KindInt:
		return strconv.FormatInt(v.intVal, 10), nil
	case KindFloat:
		return formatFloat(v.floatVal)
	case KindStr:
		return quoteScalar(v.strVal, delim), nil
	default:
		return "", &EncodeError{Kind: v.kind, Detail: "not a primitive"}
	}
}

// formatFloat returns the shortest round-trippable decimal form, using
// exponent notation when it is shorter: 3.0 → 3, 3.5 → 3.5, 1e21 →
// 1e+21. NaN and infinities have no representation in the grammar.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) {
		return "", &EncodeError{Kind: KindFloat, Detail: "NaN is not representable"}
	}
	if math.IsInf(f, 0) {
		return "", &EncodeError{Kind: KindFloat, Detail: "infinity is not representable"}
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.TrimSuffix(s, ".0")
	if s == "-0" {
		return "0", nil
	}
	return s, nil
}

// ============================================================
// String Escaping and Quoting
// ============================================================

// isSpecial reports whether r belongs to the special character set for
// the configured delimiter: {delimiter, ':', '\n', '\r', '"', '\\'}.
func isSpecial(r rune, delim string) bool {
	switch r {
	case ':', '\n', '\r', '"', '\\':
		return true
	}
	return strings.ContainsRune(delim, r)
}

func containsSpecial(s, delim string) bool {
	for _, r := range s {
		if isSpecial(r, delim) {
			return true
		}
	}
	return false
}

// escapeScalar escapes the special character set. Backslash first,
// then delimiter and colon, then newline/CR as two-character escapes.
func escapeScalar(s, delim string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == ':' || strings.ContainsRune(delim, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// quoteScalar returns the wire form of a string: escaped and, when the
// original is empty, space-padded, or contains any special character,
// wrapped in double quotes with inner quotes escaped. Plain strings
// pass through unchanged.
func quoteScalar(s, delim string) string {
	esc := escapeScalar(s, delim)

	needsQuotes := s == "" ||
		strings.HasPrefix(s, " ") ||
		strings.HasSuffix(s, " ") ||
		containsSpecial(s, delim)

	if !needsQuotes {
		return esc
	}
	return `"` + strings.ReplaceAll(esc, `"`, `\"`) + `"`
}

// quoteKey renders an object key: bare when key-safe, otherwise always
// escaped and quoted so the key never collides with scalar syntax.
func quoteKey(key, delim string) string {
	if isKeySafe(key) {
		return key
	}
	esc := escapeScalar(key, delim)
	return `"` + strings.ReplaceAll(esc, `"`, `\"`) + `"`
}

// isIdent reports whether s is a valid identifier: non-empty, first
// rune a letter or underscore, rest letters/digits/underscores. This
// is the eligibility rule for key folding.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return utf8.ValidString(s)
}

// isKeySafe is isIdent extended with dots in the tail, so folded keys
// like "outer.inner.final" stay bare.
func isKeySafe(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false
		}
	}
	return true
}
