package toon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML converts YAML bytes to a value tree. Decoding goes through
// yaml.Node rather than map[string]any so mapping key order survives.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("toon: YAML parse error: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Null(), nil
	}
	return fromYAMLNode(doc.Content[0])
}

func fromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)

	case yaml.MappingNode:
		entries := make([]MapEntry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, fmt.Errorf("toon: mapping[%q]: %w", key, err)
			}
			entries = append(entries, MapEntry{Key: key, Value: val})
		}
		return Map(entries...), nil

	case yaml.SequenceNode:
		elems := make([]*Value, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := fromYAMLNode(c)
			if err != nil {
				return nil, fmt.Errorf("toon: sequence[%d]: %w", i, err)
			}
			elems = append(elems, v)
		}
		return List(elems...), nil

	case yaml.ScalarNode:
		return yamlScalar(n)

	default:
		return nil, fmt.Errorf("toon: unsupported YAML node kind %d", n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("toon: bad YAML bool %q: %w", n.Value, err)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("toon: bad YAML int %q: %w", n.Value, err)
		}
		return Int(i), nil
	case "!!float":
		// YAML spells the specials .inf/.nan; they still reach the
		// engine as floats and trip the fallback path there.
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return Float(math.Inf(1)), nil
		case "-.inf":
			return Float(math.Inf(-1)), nil
		case ".nan":
			return Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("toon: bad YAML float %q: %w", n.Value, err)
		}
		return Float(f), nil
	default:
		return Str(n.Value), nil
	}
}
