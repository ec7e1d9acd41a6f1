package parser

import (
	"gopkg.in/yaml.v3"
)

// yamlDocument represents the intermediate structure for parsing Kryon YAML
// sources. Sections whose entry order matters (constants, variables, element
// trees) keep their raw yaml.Node so the builder can preserve declaration
// order and line numbers.
type yamlDocument struct {
	Name       string          `yaml:"name"`
	Constants  *yaml.Node      `yaml:"constants"`
	Variables  *yaml.Node      `yaml:"variables"`
	Components []yamlComponent `yaml:"components"`
	Root       *yaml.Node      `yaml:"root"`
}

// yamlComponent represents an intermediate component definition.
type yamlComponent struct {
	Name      string         `yaml:"name"`
	Params    []yamlParam    `yaml:"params"`
	State     *yaml.Node     `yaml:"state"`
	Functions []yamlFunction `yaml:"functions"`
	Body      *yaml.Node     `yaml:"body"`

	node *yaml.Node // Original YAML node for line numbers
}

// yamlParam represents a declared component parameter.
type yamlParam struct {
	Name    string     `yaml:"name"`
	Default *yaml.Node `yaml:"default"`
}

// yamlFunction represents a script function carried on a component.
type yamlFunction struct {
	Name     string   `yaml:"name"`
	Language string   `yaml:"language"`
	Params   []string `yaml:"params"`
	Source   string   `yaml:"source"`
}

// UnmarshalYAML keeps the component's own node for location reporting.
func (c *yamlComponent) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlComponent
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.node = node
	return nil
}

// parseYAMLBytes parses YAML bytes into the intermediate structure.
func parseYAMLBytes(data []byte) (*yamlDocument, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
