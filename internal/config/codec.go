package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML accepts a component list or a hex string.
func (c *RGBA) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := parseHexColour(node.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var vals []int
		if err := node.Decode(&vals); err != nil {
			return fmt.Errorf("%w: colour: %v", ErrInvalidConstants, err)
		}
		parsed, err := rgbaFromInts(vals)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("%w: colour at line %d must be a list or a string", ErrInvalidConstants, node.Line)
	}
}

// MarshalYAML writes the colour as a flow-style component list.
func (c RGBA) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range c.components() {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)})
	}
	return node, nil
}

// MarshalJSON writes the colour as a component list, the format used by the
// embedded defaults.
func (c RGBA) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.components())
}

// UnmarshalJSON mirrors UnmarshalYAML for callers using encoding/json.
func (c *RGBA) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("%w: colour: %v", ErrInvalidConstants, err)
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		return c.UnmarshalYAML(node.Content[0])
	}
	return c.UnmarshalYAML(&node)
}

// Encode renders constants in the given format ("json" or "yaml").
func Encode(c Constants, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("config: encode json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("config: encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("config: unknown format %q (want json or yaml)", format)
	}
}
