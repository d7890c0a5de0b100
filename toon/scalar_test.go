package toon

import (
	"math"
	"testing"
)

// ============================================================
// Scalar Formatting Tests
// ============================================================

func TestFormatScalarPrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   *Value
		want string
	}{
		{"null", Null(), "null"},
		{"nil value", nil, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"zero", Int(0), "0"},
		{"integral float", Float(3.0), "3"},
		{"fractional float", Float(3.5), "3.5"},
		{"negative float", Float(-0.25), "-0.25"},
		{"negative zero float", Float(math.Copysign(0, -1)), "0"},
		{"large float", Float(1e21), "1e+21"},
		{"small float", Float(5e-324), "5e-324"},
		{"large fixed float", Float(1e20), "100000000000000000000"},
		{"plain string", Str("alpha"), "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatScalar(tt.in, ",")
			if err != nil {
				t.Fatalf("formatScalar error: %v", err)
			}
			if got != tt.want {
				t.Errorf("formatScalar = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatScalarRejectsSpecialFloats(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := formatScalar(Float(f), ","); err == nil {
			t.Errorf("formatScalar(%v) succeeded, want error", f)
		}
	}
}

func TestFormatScalarRejectsContainers(t *testing.T) {
	if _, err := formatScalar(List(Int(1)), ","); err == nil {
		t.Error("formatScalar(list) succeeded, want error")
	}
	if _, err := formatScalar(Map(Field("a", Int(1))), ","); err == nil {
		t.Error("formatScalar(map) succeeded, want error")
	}
}

func TestQuoteScalarIdentityOnPlainStrings(t *testing.T) {
	// Strings with no special characters and no edge spaces pass
	// through untouched.
	for _, s := range []string{"alpha", "two words", "a-b_c", "Ünïcode", "x1.y2"} {
		if got := quoteScalar(s, ","); got != s {
			t.Errorf("quoteScalar(%q) = %q, want identity", s, got)
		}
	}
}

func TestQuoteScalarQuoting(t *testing.T) {
	tests := []struct {
		in    string
		delim string
		want  string
	}{
		{"", ",", `""`},
		{" padded", ",", `" padded"`},
		{"padded ", ",", `"padded "`},
		{"a,b", ",", `"a\,b"`},
		{"a:b", ",", `"a\:b"`},
		{"a\nb", ",", `"a\nb"`},
		{"a\rb", ",", `"a\rb"`},
		{`a\b`, ",", `"a\\b"`},
		{`say "hi"`, ",", `"say \"hi\""`},
		{"a|b", "|", `"a\|b"`},
		// With a pipe delimiter a comma is no longer special.
		{"a,b", "|", "a,b"},
	}

	for _, tt := range tests {
		if got := quoteScalar(tt.in, tt.delim); got != tt.want {
			t.Errorf("quoteScalar(%q, %q) = %q, want %q", tt.in, tt.delim, got, tt.want)
		}
	}
}

func TestQuoteKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"_private", "_private"},
		{"outer.inner.final", "outer.inner.final"},
		{"2fast", `"2fast"`},
		{"has space", `"has space"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := quoteKey(tt.in, ","); got != tt.want {
			t.Errorf("quoteKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsIdent(t *testing.T) {
	valid := []string{"a", "_x", "abc123", "snake_case"}
	invalid := []string{"", "1a", "a.b", "a-b", "a b"}

	for _, s := range valid {
		if !isIdent(s) {
			t.Errorf("isIdent(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if isIdent(s) {
			t.Errorf("isIdent(%q) = true, want false", s)
		}
	}
}
