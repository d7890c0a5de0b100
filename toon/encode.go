package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// FallbackMode selects the recovery strategy when encoding fails.
type FallbackMode uint8

const (
	// FallbackNone propagates the encode error to the caller.
	FallbackNone FallbackMode = iota

	// FallbackJSON re-renders the whole input tree as plain JSON text.
	FallbackJSON

	// FallbackCompact re-renders the input as a single-line k:v
	// flattening that never fails.
	FallbackCompact
)

// Options configures the encoder. The zero value is not usable
// directly; start from DefaultOptions.
type Options struct {
	// Delimiter separates tabular cells and primitive-array cells.
	// Must not contain characters the grammar already claims
	// (colon, quote, backslash, newline, carriage return).
	Delimiter string

	// Indent is the number of spaces per nesting level.
	Indent int

	// KeyFolding collapses chains of single-key objects into one
	// dotted key.
	KeyFolding bool

	// Fallback selects the recovery strategy on encode failure.
	Fallback FallbackMode

	// TranslateTo is an optional target language code. It is consumed
	// by Formatter, not by Encode.
	TranslateTo string
}

// DefaultOptions returns the standard encoder configuration.
func DefaultOptions() Options {
	return Options{
		Delimiter: ",",
		Indent:    2,
	}
}

// normalized validates the configuration once at the boundary.
// Configuration errors are not subject to fallback.
func (o Options) normalized() (Options, error) {
	if o.Delimiter == "" {
		o.Delimiter = ","
	}
	for _, r := range o.Delimiter {
		switch r {
		case ':', '"', '\\', '\n', '\r':
			return o, fmt.Errorf("toon: delimiter %q collides with the grammar", o.Delimiter)
		}
	}
	if o.Indent < 0 {
		return o, fmt.Errorf("toon: negative indent %d", o.Indent)
	}
	return o, nil
}

// Encode renders a value tree with DefaultOptions.
func Encode(v *Value) (string, error) {
	return EncodeWithOptions(v, DefaultOptions())
}

// EncodeWithOptions renders a value tree to TOON text. On encode
// failure the configured fallback re-renders the original tree; with
// FallbackNone the error is returned.
func EncodeWithOptions(v *Value, opts Options) (string, error) {
	opts, err := opts.normalized()
	if err != nil {
		return "", err
	}

	text, err := encodeTree(v, opts)
	if err == nil {
		return text, nil
	}

	switch opts.Fallback {
	case FallbackJSON:
		return encodeJSON(v), nil
	case FallbackCompact:
		return encodeCompact(v, opts.Delimiter), nil
	default:
		return "", err
	}
}

// encodeTree is the strict encode path: a pure function of the input
// tree and options, no state across calls.
func encodeTree(v *Value, opts Options) (string, error) {
	e := &encoder{opts: opts}

	switch v.Kind() {
	case KindMap:
		lines, err := e.encodeMap(v, 0)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	case KindList:
		lines, err := e.encodeArray("", v.listVal, 0)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	default:
		return formatScalar(v, opts.Delimiter)
	}
}

type encoder struct {
	opts        Options
	indentCache []string
}

func (e *encoder) indent(level int) string {
	for len(e.indentCache) <= level {
		next := strings.Repeat(" ", len(e.indentCache)*e.opts.Indent)
		e.indentCache = append(e.indentCache, next)
	}
	return e.indentCache[level]
}

// encodeMap renders an object block, one entry per line, in insertion
// order. Key folding, when enabled, rewrites single-key chains before
// dispatch and re-applies at every nested object.
func (e *encoder) encodeMap(v *Value, level int) ([]string, error) {
	entries := v.mapVal
	if e.opts.KeyFolding {
		if key, terminal, ok := foldChain(v); ok {
			entries = []MapEntry{{Key: key, Value: terminal}}
		}
	}

	ind := e.indent(level)
	lines := make([]string, 0, len(entries))

	for _, entry := range entries {
		key := quoteKey(entry.Key, e.opts.Delimiter)

		switch entry.Value.Kind() {
		case KindMap:
			lines = append(lines, ind+key+":")
			if entry.Value.Len() > 0 {
				nested, err := e.encodeMap(entry.Value, level+1)
				if err != nil {
					return nil, err
				}
				lines = append(lines, nested...)
			}

		case KindList:
			block, err := e.encodeArray(key, entry.Value.listVal, level)
			if err != nil {
				return nil, err
			}
			lines = append(lines, block...)

		default:
			s, err := formatScalar(entry.Value, e.opts.Delimiter)
			if err != nil {
				return nil, err
			}
			lines = append(lines, ind+key+": "+s)
		}
	}

	return lines, nil
}

// encodeArray renders an array block per its classification. key is
// the already-rendered key text, empty for a top-level array.
func (e *encoder) encodeArray(key string, elems []*Value, level int) ([]string, error) {
	shape, fields := classifyArray(elems)
	head := e.indent(level) + key + "[" + strconv.Itoa(len(elems)) + "]"

	switch shape {
	case shapePrimitive:
		cells := make([]string, len(elems))
		for i, elem := range elems {
			s, err := formatScalar(elem, e.opts.Delimiter)
			if err != nil {
				return nil, err
			}
			cells[i] = s
		}
		return []string{head + ": " + strings.Join(cells, e.opts.Delimiter)}, nil

	case shapeTabular:
		cols := make([]string, len(fields))
		for i, f := range fields {
			cols[i] = quoteKey(f, e.opts.Delimiter)
		}
		lines := make([]string, 0, len(elems)+1)
		lines = append(lines, head+"{"+strings.Join(cols, e.opts.Delimiter)+"}:")

		rowInd := e.indent(level + 1)
		cells := make([]string, len(fields))
		for _, elem := range elems {
			for i, f := range fields {
				s, err := formatScalar(elem.Get(f), e.opts.Delimiter)
				if err != nil {
					return nil, err
				}
				cells[i] = s
			}
			lines = append(lines, rowInd+strings.Join(cells, e.opts.Delimiter))
		}
		return lines, nil

	default:
		lines := []string{head + ":"}
		dashInd := e.indent(level + 1)

		for _, elem := range elems {
			if elem.IsScalar() {
				s, err := formatScalar(elem, e.opts.Delimiter)
				if err != nil {
					return nil, err
				}
				lines = append(lines, dashInd+"- "+s)
				continue
			}

			// Containers recurse two levels below the header; the
			// first produced line is spliced onto the dash line.
			var block []string
			var err error
			if elem.Kind() == KindMap {
				block, err = e.encodeMap(elem, level+2)
			} else {
				block, err = e.encodeArray("", elem.listVal, level+2)
			}
			if err != nil {
				return nil, err
			}

			if len(block) == 0 {
				lines = append(lines, dashInd+"-")
				continue
			}
			lines = append(lines, dashInd+"- "+strings.TrimLeft(block[0], " "))
			lines = append(lines, block[1:]...)
		}
		return lines, nil
	}
}
