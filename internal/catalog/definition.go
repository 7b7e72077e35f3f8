package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// EdgeSpec is one directed (source, target) pair from a definition file.
// In YAML it is written as a two-element sequence: ["Portico", "DART"].
type EdgeSpec struct {
	Source string
	Target string
}

// UnmarshalYAML decodes a two-element sequence into an EdgeSpec.
func (e *EdgeSpec) UnmarshalYAML(value *yaml.Node) error {
	var pair []string
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: edge must be a [source, target] pair: %w", value.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: edge must have exactly 2 endpoints, got %d", value.Line, len(pair))
	}
	e.Source, e.Target = pair[0], pair[1]
	return nil
}

// MarshalYAML encodes the edge in the same flow-sequence form it is read in.
func (e EdgeSpec) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	n.Content = []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: e.Source, Style: yaml.DoubleQuotedStyle},
		{Kind: yaml.ScalarNode, Value: e.Target, Style: yaml.DoubleQuotedStyle},
	}
	return n, nil
}

// Definition is the build-time description of a catalog and its edge list.
type Definition struct {
	Assets []Asset    `yaml:"assets"`
	Edges  []EdgeSpec `yaml:"edges"`
}

// Builtin returns the embedded reference definition.
func Builtin() (*Definition, error) {
	def, err := Decode(bytes.NewReader(builtinYAML))
	if err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return def, nil
}

// LoadFile reads a definition from a YAML file.
func LoadFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	def, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return def, nil
}

// Decode parses a YAML definition. Unknown fields are rejected so a typo in a
// field name does not silently drop data.
func Decode(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if err == io.EOF {
			return &Definition{}, nil
		}
		return nil, fmt.Errorf("decoding definition: %w", err)
	}
	return &def, nil
}

// Catalog builds the catalog described by the definition.
func (d *Definition) Catalog() (*Catalog, error) {
	return New(d.Assets)
}
