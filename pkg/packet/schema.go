// Package packet implements the allocation-exchange packet model: schema-driven
// field stores, the packet type registry, envelope serialization, reply
// resolution and required-field validation.
package packet

import (
	"fmt"
	"time"
)

// FieldClass identifies which store of a packet a field name belongs to.
type FieldClass int

const (
	FieldExtension FieldClass = iota // not declared by the schema
	FieldRequired
	FieldAllowed
)

// Schema is the static declaration of one packet type: its identifier, the
// ordered required and allowed field name lists (disjoint), and the type
// identifiers permitted as replies.
//
// A Schema is built once, registered, and never mutated afterward.
type Schema struct {
	Type            string
	Required        []string
	Allowed         []string
	ExpectedReplies []string

	// ExtraValidate runs after the base required-field check for types that
	// layer additional rules on top. Nil for most types.
	ExtraValidate func(*Packet) error
}

// FieldClass classifies name against the schema's declared lists.
func (s *Schema) FieldClass(name string) FieldClass {
	for _, n := range s.Required {
		if n == name {
			return FieldRequired
		}
	}
	for _, n := range s.Allowed {
		if n == name {
			return FieldAllowed
		}
	}
	return FieldExtension
}

// Check verifies the declaration itself: a non-empty type identifier, no
// duplicate names, and disjoint required/allowed lists. Registries run this
// on every schema they accept.
func (s *Schema) Check() error {
	if s.Type == "" {
		return fmt.Errorf("schema: type identifier is required")
	}
	seen := make(map[string]FieldClass, len(s.Required)+len(s.Allowed))
	for _, n := range s.Required {
		if n == "" {
			return fmt.Errorf("schema %q: empty required field name", s.Type)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("schema %q: duplicate field name %q", s.Type, n)
		}
		seen[n] = FieldRequired
	}
	for _, n := range s.Allowed {
		if n == "" {
			return fmt.Errorf("schema %q: empty allowed field name", s.Type)
		}
		if class, dup := seen[n]; dup {
			if class == FieldRequired {
				return fmt.Errorf("schema %q: field %q is both required and allowed", s.Type, n)
			}
			return fmt.Errorf("schema %q: duplicate field name %q", s.Type, n)
		}
		seen[n] = FieldAllowed
	}
	return nil
}

// Config carries the construction parameters for a new packet.
type Config struct {
	// PacketID may be empty; ids are often assigned after construction.
	PacketID string

	// Timestamp defaults to the clock's current time when zero.
	Timestamp time.Time

	// Clock supplies the default timestamp. Nil means time.Now. Tests
	// inject a fixed clock here for reproducible output.
	Clock func() time.Time

	// InReplyTo links this packet to the one it answers.
	InReplyTo ReplyRef

	// Fields are routed by the schema: declared names land in the required
	// or allowed store (date-named values parsed to timestamps first),
	// anything else is kept verbatim as an extension field.
	Fields map[string]any

	// Extensions seeds the extension store. The packet always copies the
	// entries into its own fresh map; the seed is never aliased.
	Extensions map[string]any
}

// New constructs a packet of this type. The required store is initialized
// with every required name keyed to a nil value, so validation can tell a
// missing value apart from an undeclared name.
func (s *Schema) New(cfg Config) (*Packet, error) {
	replyID, err := cfg.InReplyTo.id()
	if err != nil {
		return nil, err
	}

	ts := cfg.Timestamp
	if ts.IsZero() {
		clock := cfg.Clock
		if clock == nil {
			clock = time.Now
		}
		ts = clock()
	}

	p := &Packet{
		schema:     s,
		packetID:   cfg.PacketID,
		timestamp:  ts,
		inReplyTo:  replyID,
		required:   make(map[string]any, len(s.Required)),
		allowed:    make(map[string]any, len(s.Allowed)),
		extensions: make(map[string]any, len(cfg.Extensions)),
	}
	for _, name := range s.Required {
		p.required[name] = nil
	}
	for name, value := range cfg.Extensions {
		// Seed entries that name a declared field are routed like any
		// other field so the extension store stays disjoint.
		if s.FieldClass(name) == FieldExtension {
			p.extensions[name] = value
			continue
		}
		if err := p.SetField(name, value); err != nil {
			return nil, err
		}
	}
	for name, value := range cfg.Fields {
		if err := p.SetField(name, value); err != nil {
			return nil, err
		}
	}
	return p, nil
}
