package packet

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Packet is one protocol message instance: identity and reply linkage plus
// three field stores scoped by its schema. A packet is a single-owner mutable
// value; concurrent mutation must be serialized by the caller.
type Packet struct {
	schema    *Schema
	packetID  string
	timestamp time.Time
	inReplyTo string

	// required always holds exactly the schema's required names as keys;
	// an unset value is nil, never a missing key.
	required   map[string]any
	allowed    map[string]any
	extensions map[string]any
}

// Schema returns the static declaration this packet was built from.
func (p *Packet) Schema() *Schema { return p.schema }

// Type returns the registered type identifier.
func (p *Packet) Type() string { return p.schema.Type }

// PacketID returns the packet id, empty if not yet assigned.
func (p *Packet) PacketID() string { return p.packetID }

// SetPacketID assigns the packet id.
func (p *Packet) SetPacketID(id string) { p.packetID = id }

// EnsurePacketID assigns a fresh uuid when no id has been set yet and
// returns the id in effect.
func (p *Packet) EnsurePacketID() string {
	if p.packetID == "" {
		p.packetID = uuid.NewString()
	}
	return p.packetID
}

// Timestamp returns the packet timestamp.
func (p *Packet) Timestamp() time.Time { return p.timestamp }

// SetTimestamp overrides the packet timestamp.
func (p *Packet) SetTimestamp(t time.Time) { p.timestamp = t }

// InReplyToID returns the id of the packet this one answers, empty if this
// packet is not a reply.
func (p *Packet) InReplyToID() string { return p.inReplyTo }

// SetInReplyTo updates the reply linkage.
func (p *Packet) SetInReplyTo(ref ReplyRef) error {
	id, err := ref.id()
	if err != nil {
		return err
	}
	p.inReplyTo = id
	return nil
}

// Field looks up a field value by name across the required, allowed and
// extension stores. ok is false when the name is declared but unset, or not
// present at all.
func (p *Packet) Field(name string) (value any, ok bool) {
	switch p.schema.FieldClass(name) {
	case FieldRequired:
		value = p.required[name]
	case FieldAllowed:
		value = p.allowed[name]
	default:
		value = p.extensions[name]
	}
	return value, value != nil
}

// SetField stores a field value, routed by the schema. Values for date-named
// declared fields are parsed to timestamps first; a value that cannot be
// parsed fails with InvalidDataError. Undeclared names go to the extension
// store verbatim.
func (p *Packet) SetField(name string, value any) error {
	class := p.schema.FieldClass(name)
	if class == FieldExtension {
		p.extensions[name] = value
		return nil
	}
	if value != nil && isDateField(name) {
		ts, err := parseTimestamp(value)
		if err != nil {
			return &InvalidDataError{Field: name, Reason: err.Error()}
		}
		value = ts
	}
	if class == FieldRequired {
		p.required[name] = value
	} else {
		p.allowed[name] = value
	}
	return nil
}

// ResetField clears a field. A required field keeps its key with a nil value
// so validation still sees it missing; allowed and extension entries are
// removed outright.
func (p *Packet) ResetField(name string) {
	switch p.schema.FieldClass(name) {
	case FieldRequired:
		p.required[name] = nil
	case FieldAllowed:
		delete(p.allowed, name)
	default:
		delete(p.extensions, name)
	}
}

// RequiredFields returns a copy of the required store, including unset (nil)
// entries.
func (p *Packet) RequiredFields() map[string]any { return copyFields(p.required) }

// AllowedFields returns a copy of the allowed store.
func (p *Packet) AllowedFields() map[string]any { return copyFields(p.allowed) }

// ExtensionFields returns a copy of the extension store.
func (p *Packet) ExtensionFields() map[string]any { return copyFields(p.extensions) }

// FieldNames returns the names of every field currently carrying a value:
// set declared fields in schema order, then extensions sorted by name.
func (p *Packet) FieldNames() []string {
	names := make([]string, 0, len(p.required)+len(p.allowed)+len(p.extensions))
	for _, name := range p.schema.Required {
		if p.required[name] != nil {
			names = append(names, name)
		}
	}
	for _, name := range p.schema.Allowed {
		if p.allowed[name] != nil {
			names = append(names, name)
		}
	}
	ext := make([]string, 0, len(p.extensions))
	for name := range p.extensions {
		ext = append(ext, name)
	}
	sort.Strings(ext)
	return append(names, ext...)
}

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
