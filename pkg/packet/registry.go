package packet

import (
	"fmt"

	"firestige.xyz/aep/internal/log"
)

// Registry maps type identifiers to their schemas. It is built once during
// startup and is read-only afterward, so lookups need no locking.
type Registry struct {
	schemas map[string]*Schema
	order   []string
}

// NewRegistry builds a registry from the given schemas. Every schema is
// checked and duplicate type identifiers are rejected.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := s.Check(); err != nil {
			return nil, err
		}
		if _, exists := r.schemas[s.Type]; exists {
			return nil, fmt.Errorf("registry: type %q already registered", s.Type)
		}
		r.schemas[s.Type] = s
		r.order = append(r.order, s.Type)
	}
	log.Get().WithField("types", len(r.order)).Debug("packet registry built")
	return r, nil
}

// Get resolves a type identifier to its schema. Unknown identifiers fail
// with InvalidTypeError carrying the identifier.
func (r *Registry) Get(typeID string) (*Schema, error) {
	s, ok := r.schemas[typeID]
	if !ok {
		return nil, &InvalidTypeError{Type: typeID, Reason: "no registered packet type matches"}
	}
	return s, nil
}

// Resolve accepts either a type identifier string or an existing packet,
// whose own schema is used directly.
func (r *Registry) Resolve(v any) (*Schema, error) {
	switch ref := v.(type) {
	case string:
		return r.Get(ref)
	case *Packet:
		return r.Get(ref.Type())
	default:
		return nil, &InvalidTypeError{
			Type:   fmt.Sprintf("%T", v),
			Reason: "no registered packet type matches",
		}
	}
}

// Has reports whether a type identifier is registered.
func (r *Registry) Has(typeID string) bool {
	_, ok := r.schemas[typeID]
	return ok
}

// Types returns the registered type identifiers in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.schemas) }

// CheckComplete verifies that every schema's expected reply types resolve
// within this registry. Run at startup or from tests to catch catalogs that
// declare replies they never define.
func (r *Registry) CheckComplete() error {
	for _, typeID := range r.order {
		for _, reply := range r.schemas[typeID].ExpectedReplies {
			if !r.Has(reply) {
				return &InvalidTypeError{
					Type:   reply,
					Reason: fmt.Sprintf("expected reply of %q is not registered", typeID),
				}
			}
		}
	}
	return nil
}

var defaultRegistry *Registry

// SetDefault installs the process-wide registry. Call once during startup,
// before any concurrent reads.
func SetDefault(r *Registry) { defaultRegistry = r }

// Default returns the process-wide registry, nil until SetDefault runs.
func Default() *Registry { return defaultRegistry }
