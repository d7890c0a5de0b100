package toon

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// ============================================================
// Encoding Engine Tests
// ============================================================

func TestEncodePrimitiveArrayLine(t *testing.T) {
	v := Map(Field("tags", List(Str("alpha"), Str("beta"), Str("gamma"))))

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if got != "tags[3]: alpha,beta,gamma" {
		t.Errorf("got %q, want %q", got, "tags[3]: alpha,beta,gamma")
	}
}

func TestEncodeTabular(t *testing.T) {
	v := Map(Field("users", List(
		Map(Field("id", Int(1)), Field("name", Str("Alice")), Field("role", Str("admin"))),
		Map(Field("id", Int(2)), Field("name", Str("Bob")), Field("role", Str("user"))),
	)))

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	want := "users[2]{id,name,role}:\n  1,Alice,admin\n  2,Bob,user"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}

	// Header plus exactly length rows, each with len(fields) cells.
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	for _, row := range lines[1:] {
		if cells := strings.Split(strings.TrimSpace(row), ","); len(cells) != 3 {
			t.Errorf("row %q has %d cells, want 3", row, len(cells))
		}
	}
}

func TestEncodeMixedArray(t *testing.T) {
	v := Map(Field("items", List(Int(1), Map(Field("a", Int(2))), Int(3))))

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	want := "items[3]:\n  - 1\n  - a: 2\n  - 3"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "{a}") {
		t.Errorf("mixed array emitted a tabular header: %s", got)
	}
}

func TestEncodeNestedObjects(t *testing.T) {
	v := Map(Field("outer", Map(Field("inner", Map(Field("final", Int(123)))))))

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "outer:\n  inner:\n    final: 123"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeKeyFoldingScenario(t *testing.T) {
	opts := DefaultOptions()
	opts.KeyFolding = true

	v := Map(Field("outer", Map(Field("inner", Map(Field("final", Int(123)))))))
	got, err := EncodeWithOptions(v, opts)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if got != "outer.inner.final: 123" {
		t.Errorf("got %q, want %q", got, "outer.inner.final: 123")
	}
}

func TestEncodeEmptyArray(t *testing.T) {
	got, err := Encode(Map(Field("x", List())))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if got != "x[0]: " {
		t.Errorf("got %q, want %q", got, "x[0]: ")
	}
}

func TestEncodeTopLevelShapes(t *testing.T) {
	tests := []struct {
		name string
		in   *Value
		want string
	}{
		{"primitive", Str("hello"), "hello"},
		{"primitive array", List(Int(1), Int(2), Int(3)), "[3]: 1,2,3"},
		{"empty map", Map(), ""},
		{"empty array", List(), "[0]: "},
		{"tabular", List(
			Map(Field("a", Int(1))),
			Map(Field("a", Int(2))),
		), "[2]{a}:\n  1\n  2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeNestedListInMixedArray(t *testing.T) {
	v := Map(Field("m", List(List(Int(1), Int(2)), Str("x"))))

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "m[2]:\n  - [2]: 1,2\n  - x"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeObjectValueThenSibling(t *testing.T) {
	v := Map(
		Field("cfg", Map(Field("depth", Int(2)))),
		Field("name", Str("run")),
	)

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "cfg:\n  depth: 2\nname: run"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeCustomDelimiter(t *testing.T) {
	opts := DefaultOptions()
	opts.Delimiter = "|"

	v := Map(Field("tags", List(Str("a"), Str("b,c"))))
	got, err := EncodeWithOptions(v, opts)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	// With a pipe delimiter the comma is an ordinary character.
	if got != "tags[2]: a|b,c" {
		t.Errorf("got %q, want %q", got, "tags[2]: a|b,c")
	}
}

func TestEncodeCustomIndent(t *testing.T) {
	opts := DefaultOptions()
	opts.Indent = 4

	v := Map(Field("a", Map(Field("b", Int(1)))))
	got, err := EncodeWithOptions(v, opts)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if got != "a:\n    b: 1" {
		t.Errorf("got %q", got)
	}
}

func TestEncodeQuotedKeysAndCells(t *testing.T) {
	v := Map(
		Field("has space", Str("v:1")),
		Field("list", List(Str("a,b"))),
	)

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := "\"has space\": \"v\\:1\"\nlist[1]: \"a\\,b\""
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeNoTrailingNewline(t *testing.T) {
	got, err := Encode(Map(Field("a", Int(1)), Field("b", Int(2))))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("output ends with newline: %q", got)
	}
}

func TestEncodeInvalidOptions(t *testing.T) {
	v := Map(Field("a", Int(1)))

	opts := DefaultOptions()
	opts.Delimiter = ":"
	if _, err := EncodeWithOptions(v, opts); err == nil {
		t.Error("colon delimiter accepted")
	}

	opts = DefaultOptions()
	opts.Indent = -1
	if _, err := EncodeWithOptions(v, opts); err == nil {
		t.Error("negative indent accepted")
	}
}

// ============================================================
// Failure and Fallback Tests
// ============================================================

func TestEncodeStrictErrorPropagates(t *testing.T) {
	v := Map(Field("bad", Float(math.NaN())))

	_, err := Encode(v)
	if err == nil {
		t.Fatal("Encode succeeded on NaN")
	}
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Errorf("error type = %T, want *EncodeError", err)
	}
	if ee.Kind != KindFloat {
		t.Errorf("error kind = %v, want float", ee.Kind)
	}
}

func TestFallbackJSONNeverRaises(t *testing.T) {
	trees := []*Value{
		Map(Field("bad", Float(math.NaN()))),
		Map(Field("inf", Float(math.Inf(1)))),
		List(Float(math.Inf(-1)), Map(Field("k", Str("v")))),
		Map(Field("fine", Int(1))),
	}

	opts := DefaultOptions()
	opts.Fallback = FallbackJSON
	for _, v := range trees {
		if _, err := EncodeWithOptions(v, opts); err != nil {
			t.Errorf("FallbackJSON raised: %v", err)
		}
	}
}

func TestFallbackJSONOutput(t *testing.T) {
	v := Map(
		Field("bad", Float(math.NaN())),
		Field("name", Str("x")),
	)

	opts := DefaultOptions()
	opts.Fallback = FallbackJSON
	got, err := EncodeWithOptions(v, opts)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if got != `{"bad":null,"name":"x"}` {
		t.Errorf("got %q", got)
	}
}

func TestFallbackCompact(t *testing.T) {
	v := Map(
		Field("bad", Float(math.NaN())),
		Field("tags", List(Str("a"), Str("b"))),
		Field("n", Int(3)),
	)

	opts := DefaultOptions()
	opts.Fallback = FallbackCompact
	got, err := EncodeWithOptions(v, opts)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	// Compact form is single-line k:v with bracketed arrays; the NaN
	// leaf is best-effort and not asserted byte-for-byte.
	if strings.Contains(got, "\n") {
		t.Errorf("compact output is multi-line: %q", got)
	}
	if !strings.Contains(got, "tags:[a,b]") {
		t.Errorf("compact output missing array form: %q", got)
	}
	if !strings.Contains(got, "n:3") {
		t.Errorf("compact output missing scalar pair: %q", got)
	}
}
