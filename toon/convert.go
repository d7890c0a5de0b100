package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// ============================================================
// JSON Converter
// ============================================================
//
// Walks the decoder token stream instead of unmarshalling into
// map[string]any, because Go maps drop the key order that TOON output
// depends on.

// FromJSON converts JSON bytes to a value tree, preserving object key
// order. Whole-number JSON numbers become ints, the rest floats.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	// Reject trailing content after the first document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("toon: trailing data after JSON document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("toon: JSON parse error: %w", err)
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case json.Number:
		return numberValue(t)

	case json.Delim:
		switch t {
		case '{':
			var entries []MapEntry
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("toon: JSON parse error: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("toon: object key is not a string: %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("toon: object[%q]: %w", key, err)
				}
				entries = append(entries, MapEntry{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, fmt.Errorf("toon: JSON parse error: %w", err)
			}
			return Map(entries...), nil

		case '[':
			var elems []*Value
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("toon: array[%d]: %w", len(elems), err)
				}
				elems = append(elems, elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, fmt.Errorf("toon: JSON parse error: %w", err)
			}
			return List(elems...), nil
		}
	}
	return nil, fmt.Errorf("toon: unexpected JSON token: %v", tok)
}

// numberValue splits a JSON number into int or float.
func numberValue(n json.Number) (*Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return nil, fmt.Errorf("toon: bad number %q: %w", n.String(), err)
	}
	return Float(f), nil
}
