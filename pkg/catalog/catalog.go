// Package catalog loads packet type declarations from configuration files
// and turns them into a packet registry. The per-type field lists are schema
// data, not code: a deployment describes its packet types in YAML or JSON
// and builds the registry from that.
package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"firestige.xyz/aep/pkg/packet"
)

// PacketType declares one packet type: its identifier, the required and
// allowed field name lists, and the types permitted as replies.
type PacketType struct {
	Type            string   `json:"type" yaml:"type" mapstructure:"type"`
	Required        []string `json:"required" yaml:"required" mapstructure:"required"`
	Allowed         []string `json:"allowed" yaml:"allowed" mapstructure:"allowed"`
	ExpectedReplies []string `json:"expected_replies" yaml:"expected_replies" mapstructure:"expected_replies"`
}

// Catalog is the full set of packet type declarations for a deployment.
type Catalog struct {
	PacketTypes []PacketType `json:"packet_types" yaml:"packet_types" mapstructure:"packet_types"`
}

// Validate checks the declarations: at least one type, no duplicate type
// identifiers, well-formed field lists, and reply references that resolve
// within the catalog.
func (c *Catalog) Validate() error {
	if len(c.PacketTypes) == 0 {
		return fmt.Errorf("catalog: no packet types declared")
	}
	declared := make(map[string]bool, len(c.PacketTypes))
	for i, pt := range c.PacketTypes {
		if pt.Type == "" {
			return fmt.Errorf("catalog: packet_types[%d]: type is required", i)
		}
		if declared[pt.Type] {
			return fmt.Errorf("catalog: packet type %q declared twice", pt.Type)
		}
		declared[pt.Type] = true
		if err := pt.schema().Check(); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	for _, pt := range c.PacketTypes {
		for _, reply := range pt.ExpectedReplies {
			if !declared[reply] {
				return fmt.Errorf("catalog: packet type %q expects undeclared reply type %q",
					pt.Type, reply)
			}
		}
	}
	return nil
}

// Registry builds a packet registry from the catalog. The catalog is
// validated first, so the registry satisfies its own completeness check.
func (c *Catalog) Registry() (*packet.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	schemas := make([]*packet.Schema, 0, len(c.PacketTypes))
	for _, pt := range c.PacketTypes {
		schemas = append(schemas, pt.schema())
	}
	return packet.NewRegistry(schemas...)
}

func (pt *PacketType) schema() *packet.Schema {
	return &packet.Schema{
		Type:            pt.Type,
		Required:        pt.Required,
		Allowed:         pt.Allowed,
		ExpectedReplies: pt.ExpectedReplies,
	}
}

// Parse decodes a JSON catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse json: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseYAML decodes a YAML catalog and validates it.
func ParseYAML(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseAuto picks the decoder from the file extension (.json, .yaml, .yml).
func ParseAuto(data []byte, filename string) (*Catalog, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return Parse(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("catalog: unsupported file extension %q (must be .json, .yaml or .yml)",
			filepath.Ext(filename))
	}
}
