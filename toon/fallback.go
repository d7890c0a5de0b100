package toon

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Fallback Renderers
// ============================================================
//
// Both renderers walk the original tree and must always succeed; they
// are the recovery path after the strict encoder has raised.

// ToJSON renders the tree as minified standard JSON text, preserving
// object entry order. NaN and infinities become null (JSON has no
// spelling for them). This is also the FallbackJSON renderer.
func ToJSON(v *Value) string {
	var b strings.Builder
	writeJSON(&b, v)
	return b.String()
}

func encodeJSON(v *Value) string {
	return ToJSON(v)
}

func writeJSON(b *strings.Builder, v *Value) {
	switch v.Kind() {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolVal))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.intVal, 10))
	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			b.WriteString("null")
			return
		}
		b.WriteString(strconv.FormatFloat(v.floatVal, 'g', -1, 64))
	case KindStr:
		writeJSONString(b, v.strVal)
	case KindList:
		b.WriteByte('[')
		for i, elem := range v.listVal {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, elem)
		}
		b.WriteByte(']')
	case KindMap:
		b.WriteByte('{')
		for i, e := range v.mapVal {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, e.Key)
			b.WriteByte(':')
			writeJSON(b, e.Value)
		}
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
}

func writeJSONString(b *strings.Builder, s string) {
	enc, err := json.Marshal(s)
	if err != nil {
		// Marshal of a string cannot fail; keep the walk total anyway.
		b.WriteString(strconv.Quote(s))
		return
	}
	b.Write(enc)
}

// encodeCompact renders the tree as a single-line flattening: object
// entries as key:value joined by the delimiter, arrays bracketed.
// Leaves it cannot classify are stringified best-effort; the exact
// bytes for such leaves are implementation-defined.
func encodeCompact(v *Value, delim string) string {
	var b strings.Builder
	writeCompact(&b, v, delim)
	return b.String()
}

func writeCompact(b *strings.Builder, v *Value, delim string) {
	switch v.Kind() {
	case KindMap:
		for i, e := range v.mapVal {
			if i > 0 {
				b.WriteString(delim)
			}
			b.WriteString(e.Key)
			b.WriteByte(':')
			writeCompact(b, e.Value, delim)
		}
	case KindList:
		b.WriteByte('[')
		for i, elem := range v.listVal {
			if i > 0 {
				b.WriteString(delim)
			}
			writeCompact(b, elem, delim)
		}
		b.WriteByte(']')
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.boolVal))
	case KindInt:
		b.WriteString(strconv.FormatInt(v.intVal, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.floatVal, 'g', -1, 64))
	case KindStr:
		b.WriteString(v.strVal)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
